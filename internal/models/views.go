package models

// UserCashkick is the read view of a cashkick enriched with the total
// financed figure computed from the owner's rate
type UserCashkick struct {
	Cashkick
	TotalFinanced float64 `json:"totalFinanced"`
}

// ContractView is the read view of a contract enriched with the financed
// amount carried by one association. TotalFinanced is nil in browse-all
// mode, where no financing is attached.
type ContractView struct {
	Contract
	TotalFinanced *float64 `json:"totalFinanced,omitempty"`
}
