package models

import "time"

// ContractStatus represents the lifecycle state of a contract
type ContractStatus string

const (
	ContractStatusSigned    ContractStatus = "SIGNED"
	ContractStatusAvailable ContractStatus = "AVAILABLE"
)

// ContractType represents the payment cadence of a contract
type ContractType string

const (
	ContractTypeMonthly   ContractType = "MONTHLY"
	ContractTypeQuarterly ContractType = "QUARTERLY"
	ContractTypeYearly    ContractType = "YEARLY"
)

// Contract represents the terms of a financing agreement.
// Contracts are immutable once created.
type Contract struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        ContractStatus `json:"status"`
	Type          ContractType   `json:"type"`
	PerPayment    float64        `json:"perPayment"`
	TermLength    int            `json:"termLength"`
	PaymentAmount float64        `json:"paymentAmount"`
	CreatedAt     time.Time      `json:"createdAt"`
}
