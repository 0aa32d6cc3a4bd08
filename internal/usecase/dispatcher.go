package usecase

import (
	"encoding/json"

	"github.com/vitos/ig_account_mirror/internal/domain"
	"go.uber.org/zap"
)

// Dispatcher decodes raw push-channel frames and routes each to the
// matching store reducer. A frame that does not parse, or declares a
// type outside the closed set, is logged and dropped; one bad frame
// never tears the channel down or touches the mirror.
type Dispatcher struct {
	store  *MirrorStore
	logger *zap.Logger
}

func NewDispatcher(store *MirrorStore, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{store: store, logger: logger}
}

// Dispatch consumes one raw frame.
func (d *Dispatcher) Dispatch(raw []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		d.logger.Warn("dropping unparseable frame", zap.Error(err))
		return
	}

	switch env.Type {
	case domain.FrameConnected:
		// Handshake ack, carries no state. Connectivity is tracked by
		// the stream client, not by frame content.
		d.logger.Debug("channel acknowledged connection")

	case domain.FrameSystemStatus:
		var upd domain.StatusUpdate
		if !d.decode(env, &upd) {
			return
		}
		d.store.ApplyStatus(upd)

	case domain.FrameAccountUpdate:
		var acc domain.AccountSnapshot
		if !d.decode(env, &acc) {
			return
		}
		d.store.ApplyAccount(acc)

	case domain.FramePositionUpdate:
		var pos domain.Position
		if !d.decode(env, &pos) {
			return
		}
		d.store.ApplyPosition(pos)

	case domain.FrameOrderUpdate:
		var ord domain.Order
		if !d.decode(env, &ord) {
			return
		}
		d.store.ApplyOrder(ord)

	case domain.FrameTradeConfirm:
		var tc domain.TradeConfirm
		if !d.decode(env, &tc) {
			return
		}
		d.store.ApplyTradeConfirm(tc)

	case domain.FrameConsoleLog:
		var line domain.LogLine
		if !d.decode(env, &line) {
			return
		}
		d.store.ApplyLogLine(line)

	case domain.FrameNotification:
		var n domain.Notification
		if !d.decode(env, &n) {
			return
		}
		d.store.ApplyNotification(n)

	case domain.FrameMarketPriceUpdate:
		var upd domain.MarketPriceUpdate
		if !d.decode(env, &upd) {
			return
		}
		d.store.ApplyMarketPrice(upd)

	default:
		d.logger.Warn("dropping frame with unknown type", zap.String("type", string(env.Type)))
	}
}

func (d *Dispatcher) decode(env domain.Envelope, out any) bool {
	if err := json.Unmarshal(env.Data, out); err != nil {
		d.logger.Warn("dropping frame with malformed payload",
			zap.String("type", string(env.Type)), zap.Error(err))
		return false
	}
	return true
}
