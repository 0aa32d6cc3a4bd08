package domain

import "encoding/json"

// FrameType tags an envelope arriving on the push channel. The set is
// closed: the dispatcher switches exhaustively over these values and
// drops anything else.
type FrameType string

const (
	FrameConnected         FrameType = "CONNECTED"
	FrameSystemStatus      FrameType = "SYSTEM_STATUS"
	FrameAccountUpdate     FrameType = "ACCOUNT_UPDATE"
	FramePositionUpdate    FrameType = "POSITION_UPDATE"
	FrameOrderUpdate       FrameType = "ORDER_UPDATE"
	FrameTradeConfirm      FrameType = "TRADE_CONFIRM"
	FrameConsoleLog        FrameType = "CONSOLE_LOG"
	FrameNotification      FrameType = "NOTIFICATION"
	FrameMarketPriceUpdate FrameType = "MARKET_PRICE_UPDATE"
)

// Envelope is the raw shape of every push-channel frame. Data stays
// undecoded until the type is known.
type Envelope struct {
	Type FrameType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarketPriceUpdate carries both quote sides for one instrument. The
// reducer picks the exit-relevant side per position direction: a LONG
// closes by selling at the bid, a SHORT closes by buying at the offer.
type MarketPriceUpdate struct {
	Epic  string  `json:"epic"`
	Bid   float64 `json:"bid"`
	Offer float64 `json:"offer"`
}

// TradeConfirm reports the outcome of a trade request. It carries no
// mirror state of its own; the store turns it into a log line.
type TradeConfirm struct {
	DealID    string    `json:"dealId"`
	Epic      string    `json:"epic"`
	Direction Direction `json:"direction"`
	Contracts float64   `json:"contracts"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
}
