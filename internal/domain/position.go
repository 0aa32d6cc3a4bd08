package domain

import "time"

type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Position mirrors an open position on the remote venue.
// Identity is DealID; positions are upserted by id and only leave the
// mirror through a whole-collection snapshot replace (a close shows up
// as an update or a snapshot, never as a local delete).
type Position struct {
	DealID       string    `json:"dealId"`
	Epic         string    `json:"epic"`
	Direction    Direction `json:"direction"`
	Contracts    float64   `json:"contracts"`
	OpenPrice    float64   `json:"openPrice"`
	CurrentPrice float64   `json:"currentPrice"`
	// ProfitLoss is computed server-side (currency conversion, margin
	// scaling) and is never derived locally from prices.
	ProfitLoss float64   `json:"profitLoss"`
	TakeProfit *float64  `json:"takeProfit,omitempty"`
	Phase      string    `json:"phase,omitempty"`
	OpenedAt   time.Time `json:"openedAt"`
}
