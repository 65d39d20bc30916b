package models

import "time"

// CashkickStatus represents the lifecycle state of a cashkick
type CashkickStatus string

const (
	CashkickStatusPending  CashkickStatus = "PENDING"
	CashkickStatusApproved CashkickStatus = "APPROVED"
)

// Cashkick represents a cash advance against future receivables,
// owned by exactly one user
type Cashkick struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        CashkickStatus `json:"status"`
	Maturity      time.Time      `json:"maturity"`
	TotalReceived float64        `json:"totalReceived"`
	UserID        string         `json:"userId"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// CashkickWithContracts is a cashkick loaded together with the contracts
// linked to it through the association table
type CashkickWithContracts struct {
	Cashkick
	Contracts []Contract `json:"contracts"`
}
