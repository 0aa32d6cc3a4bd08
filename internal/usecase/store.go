package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vitos/ig_account_mirror/internal/domain"
)

// MirrorStore holds the local mirror of the remote account: the account
// singleton, open positions, pending orders, system status, notifications
// and the console log. There are two write paths into it and they stay
// separate on purpose: reducers merge incremental channel updates, the
// Replace* methods do a destructive whole-collection overwrite for
// snapshot recovery. Every reducer tolerates at-least-once, out-of-order
// delivery.
//
// All access goes through one mutex, so each mutation runs to completion
// before the next one starts. No cross-collection transaction exists: a
// reader may see a new position before the matching account update lands.
type MirrorStore struct {
	mu sync.RWMutex

	account       domain.AccountSnapshot
	positions     []domain.Position
	orders        []domain.Order
	status        domain.SystemStatus
	notifications []domain.Notification
	logLines      []domain.LogLine
}

func NewMirrorStore() *MirrorStore {
	return &MirrorStore{}
}

// --- Incremental merge path (channel reducers) ---

// ApplyAccount replaces the account singleton as a whole.
func (s *MirrorStore) ApplyAccount(acc domain.AccountSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = acc
}

// ApplyStatus merges a partial status patch: only fields carried by the
// update overwrite the singleton.
func (s *MirrorStore) ApplyStatus(upd domain.StatusUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if upd.Status != nil {
		s.status.Status = *upd.Status
	}
	if upd.IGConnected != nil {
		s.status.IGConnected = *upd.IGConnected
	}
	if upd.StreamConnected != nil {
		s.status.StreamConnected = *upd.StreamConnected
	}
	if upd.SessionAgeSec != nil {
		s.status.SessionAgeSec = *upd.SessionAgeSec
	}
	if upd.SecondsSinceUpdate != nil {
		s.status.SecondsSinceUpdate = *upd.SecondsSinceUpdate
	}
}

// ApplyPosition upserts by deal id. The collection is bounded by account
// size, so a linear scan is fine.
func (s *MirrorStore) ApplyPosition(pos domain.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.positions {
		if s.positions[i].DealID == pos.DealID {
			s.positions[i] = pos
			return
		}
	}
	s.positions = append(s.positions, pos)
}

// ApplyOrder upserts a pending order by deal id. A terminal status
// (FILLED or CANCELLED) removes the entry instead; removing an unknown
// id is a no-op.
func (s *MirrorStore) ApplyOrder(ord domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ord.Status.Terminal() {
		for i := range s.orders {
			if s.orders[i].DealID == ord.DealID {
				s.orders = append(s.orders[:i], s.orders[i+1:]...)
				return
			}
		}
		return
	}
	for i := range s.orders {
		if s.orders[i].DealID == ord.DealID {
			s.orders[i] = ord
			return
		}
	}
	s.orders = append(s.orders, ord)
}

// ApplyMarketPrice updates the displayed current price of every position
// on the given epic, choosing the side a closing trade would execute
// against (LONG sells at bid, SHORT buys at offer). Profit/loss is
// server-calculated and must stay untouched here: it cannot be derived
// locally for cross-currency, margin-scaled positions.
func (s *MirrorStore) ApplyMarketPrice(upd domain.MarketPriceUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.positions {
		if s.positions[i].Epic != upd.Epic {
			continue
		}
		if s.positions[i].Direction == domain.DirectionLong {
			s.positions[i].CurrentPrice = upd.Bid
		} else {
			s.positions[i].CurrentPrice = upd.Offer
		}
	}
}

// ApplyNotification front-inserts and evicts beyond capacity.
func (s *MirrorStore) ApplyNotification(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append([]domain.Notification{n}, s.notifications...)
	if len(s.notifications) > domain.NotificationCapacity {
		s.notifications = s.notifications[:domain.NotificationCapacity]
	}
}

// ApplyLogLine front-inserts and evicts beyond capacity.
func (s *MirrorStore) ApplyLogLine(l domain.LogLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logLines = append([]domain.LogLine{l}, s.logLines...)
	if len(s.logLines) > domain.LogLineCapacity {
		s.logLines = s.logLines[:domain.LogLineCapacity]
	}
}

// ApplyTradeConfirm synthesizes one console line out of a confirmation.
// It mutates nothing else; the position/order effects of the trade come
// in as their own updates.
func (s *MirrorStore) ApplyTradeConfirm(tc domain.TradeConfirm) {
	level := domain.SeverityInfo
	msg := fmt.Sprintf("trade %s: %s %.1f %s", tc.Status, tc.Direction, tc.Contracts, tc.Epic)
	if tc.Reason != "" {
		level = domain.SeverityWarning
		msg += " (" + tc.Reason + ")"
	}
	s.ApplyLogLine(domain.LogLine{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Epic:      tc.Epic,
	})
}

// MarkNotificationRead flips the read flag; unknown ids are ignored.
func (s *MirrorStore) MarkNotificationRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return
		}
	}
}

// --- Destructive replace path (snapshot recovery) ---

func (s *MirrorStore) ReplaceAccount(acc domain.AccountSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = acc
}

func (s *MirrorStore) ReplacePositions(positions []domain.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = append([]domain.Position(nil), positions...)
}

func (s *MirrorStore) ReplaceOrders(orders []domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]domain.Order(nil), orders...)
}

// --- Read accessors (copies, safe to hand out) ---

func (s *MirrorStore) Account() domain.AccountSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

func (s *MirrorStore) Status() domain.SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *MirrorStore) Positions() []domain.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Position(nil), s.positions...)
}

func (s *MirrorStore) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Order(nil), s.orders...)
}

func (s *MirrorStore) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Notification(nil), s.notifications...)
}

func (s *MirrorStore) LogLines() []domain.LogLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.LogLine(nil), s.logLines...)
}
