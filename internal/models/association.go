package models

// CashkickContract is the join record between a cashkick and a contract.
// TotalFinanced is the portion of the financing markup attributed to this
// specific pairing; it is stored nowhere else.
type CashkickContract struct {
	ID            string  `json:"id"`
	CashkickID    string  `json:"cashkickId"`
	ContractID    string  `json:"contractId"`
	TotalFinanced float64 `json:"totalFinanced"`
}
