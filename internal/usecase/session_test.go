package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/vitos/ig_account_mirror/internal/domain"
	"github.com/vitos/ig_account_mirror/internal/usecase"
	"go.uber.org/zap"
)

// FakeStream drives session tests without a network.
type FakeStream struct {
	onFrame   func([]byte)
	onState   func(bool)
	connected bool
	closed    bool
}

func (f *FakeStream) OnFrame(fn func([]byte))     { f.onFrame = fn }
func (f *FakeStream) OnStateChange(fn func(bool)) { f.onState = fn }
func (f *FakeStream) Connected() bool             { return f.connected }
func (f *FakeStream) Close()                      { f.closed = true; f.connected = false }

func (f *FakeStream) Connect() error {
	f.connected = true
	f.onState(true)
	return nil
}

func (f *FakeStream) drop() {
	f.connected = false
	f.onState(false)
}

func newSession(backend *MockBackend) (*usecase.Session, *FakeStream, *usecase.MirrorStore) {
	store := usecase.NewMirrorStore()
	stream := &FakeStream{}
	dispatcher := usecase.NewDispatcher(store, zap.NewNop())
	snapshots := usecase.NewSnapshotService(backend, store, zap.NewNop())
	return usecase.NewSession(stream, dispatcher, snapshots, store, zap.NewNop()), stream, store
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSession_StartLoadsSnapshotAndConnects(t *testing.T) {
	backend := &MockBackend{
		Account:   &domain.AccountSnapshot{Balance: 1234},
		Positions: []*domain.Position{{DealID: "P1"}},
	}
	session, stream, store := newSession(backend)

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer session.Stop()

	if store.Account().Balance != 1234 {
		t.Error("Expected initial snapshot in the mirror")
	}
	if !stream.connected {
		t.Error("Expected stream to be connected")
	}
	if !store.Status().StreamConnected {
		t.Error("Expected stream connectivity flag in status")
	}

	// Frames flow through to the store.
	stream.onFrame([]byte(`{"type":"ACCOUNT_UPDATE","data":{"balance":2000}}`))
	if store.Account().Balance != 2000 {
		t.Error("Expected frame to reach the store")
	}
}

func TestSession_ReconnectTriggersSnapshotReload(t *testing.T) {
	backend := &MockBackend{Account: &domain.AccountSnapshot{Balance: 1}}
	session, stream, store := newSession(backend)

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer session.Stop()

	stream.drop()
	if store.Status().StreamConnected {
		t.Error("Expected connectivity flag cleared on loss")
	}

	// The channel has no replay: a reconnect must heal the gap by
	// pulling fresh snapshots.
	backend.Account = &domain.AccountSnapshot{Balance: 999}
	stream.Connect()

	waitFor(t, func() bool { return store.Account().Balance == 999 })
}

func TestSession_StopClosesStream(t *testing.T) {
	backend := &MockBackend{Account: &domain.AccountSnapshot{}}
	session, stream, store := newSession(backend)

	if err := session.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	session.Stop()

	if !stream.closed {
		t.Error("Expected stream teardown on Stop")
	}
	if store.Status().StreamConnected {
		t.Error("Expected connectivity flag cleared on Stop")
	}
}
