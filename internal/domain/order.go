package domain

import "time"

type OrderKind string

const (
	OrderKindMarket OrderKind = "MARKET"
	OrderKindLimit  OrderKind = "LIMIT"
	OrderKindStop   OrderKind = "STOP"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order mirrors a pending working order. Orders exist in the mirror only
// while PENDING: a FILLED or CANCELLED update removes the entry instead
// of retaining a terminal record.
type Order struct {
	DealID     string      `json:"dealId"`
	Epic       string      `json:"epic"`
	Direction  Direction   `json:"direction"`
	Kind       OrderKind   `json:"kind"`
	Contracts  float64     `json:"contracts"`
	EntryPrice float64     `json:"entryPrice"`
	TakeProfit *float64    `json:"takeProfit,omitempty"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Terminal reports whether the status ends the order's life in the mirror.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusFilled || s == OrderStatusCancelled
}
