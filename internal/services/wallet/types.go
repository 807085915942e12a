package wallet

// Balance is a point-in-time view of a wallet's three balance fields.
type Balance struct {
	Currency         string  `json:"currency"`
	TotalBalance     float64 `json:"total_balance"`
	AvailableBalance float64 `json:"available_balance"`
	PendingBalance   float64 `json:"pending_balance"`
}
