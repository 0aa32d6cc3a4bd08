package usecase_test

import (
	"testing"

	"github.com/vitos/ig_account_mirror/internal/domain"
	"github.com/vitos/ig_account_mirror/internal/usecase"
	"go.uber.org/zap"
)

func newDispatcher() (*usecase.Dispatcher, *usecase.MirrorStore) {
	store := usecase.NewMirrorStore()
	return usecase.NewDispatcher(store, zap.NewNop()), store
}

func TestDispatcher_RoutesFrames(t *testing.T) {
	d, store := newDispatcher()

	d.Dispatch([]byte(`{"type":"ACCOUNT_UPDATE","data":{"balance":1000,"equity":1010,"profitLoss":10}}`))
	if store.Account().Balance != 1000 {
		t.Errorf("Expected balance 1000, got %f", store.Account().Balance)
	}

	d.Dispatch([]byte(`{"type":"POSITION_UPDATE","data":{"dealId":"P1","epic":"X","direction":"LONG","contracts":1.5}}`))
	positions := store.Positions()
	if len(positions) != 1 || positions[0].Contracts != 1.5 {
		t.Errorf("Expected position from frame, got %+v", positions)
	}

	d.Dispatch([]byte(`{"type":"ORDER_UPDATE","data":{"dealId":"O1","epic":"X","status":"PENDING","contracts":1}}`))
	if len(store.Orders()) != 1 {
		t.Error("Expected pending order from frame")
	}
	d.Dispatch([]byte(`{"type":"ORDER_UPDATE","data":{"dealId":"O1","status":"FILLED"}}`))
	if len(store.Orders()) != 0 {
		t.Error("Expected fill frame to remove the order")
	}

	d.Dispatch([]byte(`{"type":"SYSTEM_STATUS","data":{"status":"ACTIVE"}}`))
	if store.Status().Status != domain.SystemActive {
		t.Errorf("Expected ACTIVE status, got %s", store.Status().Status)
	}

	d.Dispatch([]byte(`{"type":"MARKET_PRICE_UPDATE","data":{"epic":"X","bid":99,"offer":100}}`))
	if store.Positions()[0].CurrentPrice != 99 {
		t.Errorf("Expected long position at bid 99, got %f", store.Positions()[0].CurrentPrice)
	}

	d.Dispatch([]byte(`{"type":"NOTIFICATION","data":{"id":"N1","title":"hi"}}`))
	if len(store.Notifications()) != 1 {
		t.Error("Expected notification from frame")
	}

	d.Dispatch([]byte(`{"type":"CONSOLE_LOG","data":{"id":"L1","message":"hello"}}`))
	d.Dispatch([]byte(`{"type":"TRADE_CONFIRM","data":{"dealId":"D1","epic":"X","direction":"LONG","contracts":1,"status":"ACCEPTED"}}`))
	if len(store.LogLines()) != 2 {
		t.Errorf("Expected console line plus synthesized confirmation line, got %d", len(store.LogLines()))
	}
}

func TestDispatcher_DropsBadFrames(t *testing.T) {
	d, store := newDispatcher()

	// Seed some state to prove drops have no side effects.
	d.Dispatch([]byte(`{"type":"POSITION_UPDATE","data":{"dealId":"P1","epic":"X","direction":"LONG","contracts":1}}`))

	d.Dispatch([]byte(`not json at all`))
	d.Dispatch([]byte(`{"type":"SOMETHING_NEW","data":{}}`))
	d.Dispatch([]byte(`{"type":"POSITION_UPDATE","data":"not an object"}`))
	d.Dispatch([]byte(``))

	positions := store.Positions()
	if len(positions) != 1 || positions[0].Contracts != 1 {
		t.Errorf("Bad frames must leave state untouched, got %+v", positions)
	}
}

func TestDispatcher_ConnectedFrameIsStateless(t *testing.T) {
	d, store := newDispatcher()

	d.Dispatch([]byte(`{"type":"CONNECTED","data":{}}`))

	if len(store.Positions()) != 0 || len(store.LogLines()) != 0 {
		t.Error("CONNECTED ack must not mutate the mirror")
	}
}
