package domain

// AccountSnapshot carries the server-side view of the account funds.
// It is a singleton in the mirror and is only ever replaced as a whole;
// all values are currency-denominated by the remote system.
type AccountSnapshot struct {
	Balance    float64 `json:"balance"`
	Equity     float64 `json:"equity"`
	Margin     float64 `json:"margin"`
	Available  float64 `json:"available"`
	ProfitLoss float64 `json:"profitLoss"`
}
