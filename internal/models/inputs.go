package models

import "time"

// SignupInput carries the fields a new user provides at registration.
// Rate, credit balance and term cap are assigned by the platform.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries login credentials
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateInput carries the mutable user fields. Nil means "leave as is".
type UserUpdateInput struct {
	Password      *string  `json:"password,omitempty"`
	CreditBalance *float64 `json:"creditBalance,omitempty"`
}

// CashkickInput is the creation request for a cashkick. ContractIDs lists
// the contracts financing the advance; it may be empty.
type CashkickInput struct {
	Name          string         `json:"name"`
	Status        CashkickStatus `json:"status"`
	Maturity      time.Time      `json:"maturity"`
	TotalReceived float64        `json:"totalReceived"`
	UserID        string         `json:"-"`
	ContractIDs   []string       `json:"contracts"`
}

// ContractInput is the creation request for a single contract
type ContractInput struct {
	Name          string         `json:"name"`
	Status        ContractStatus `json:"status"`
	Type          ContractType   `json:"type"`
	PerPayment    float64        `json:"perPayment"`
	TermLength    int            `json:"termLength"`
	PaymentAmount float64        `json:"paymentAmount"`
}
