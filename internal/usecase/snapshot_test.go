package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vitos/ig_account_mirror/internal/domain"
	"github.com/vitos/ig_account_mirror/internal/usecase"
	"go.uber.org/zap"
)

// MockBackend implements domain.Backend for snapshot tests.
type MockBackend struct {
	Account   *domain.AccountSnapshot
	Positions []*domain.Position
	Orders    []*domain.Order

	AccountErr   error
	PositionsErr error
	OrdersErr    error
	RefreshErr   error

	RefreshCalled bool
}

func (m *MockBackend) GetAccount(ctx context.Context) (*domain.AccountSnapshot, error) {
	if m.AccountErr != nil {
		return nil, m.AccountErr
	}
	return m.Account, nil
}

func (m *MockBackend) GetPositions(ctx context.Context) ([]*domain.Position, error) {
	if m.PositionsErr != nil {
		return nil, m.PositionsErr
	}
	return m.Positions, nil
}

func (m *MockBackend) GetOrders(ctx context.Context) ([]*domain.Order, error) {
	if m.OrdersErr != nil {
		return nil, m.OrdersErr
	}
	return m.Orders, nil
}

func (m *MockBackend) RefreshPositions(ctx context.Context) error {
	m.RefreshCalled = true
	return m.RefreshErr
}

func (m *MockBackend) ClosePosition(ctx context.Context, dealID string) error { return nil }
func (m *MockBackend) CancelOrder(ctx context.Context, dealID string) error   { return nil }
func (m *MockBackend) ForceReconnect(ctx context.Context) error               { return nil }
func (m *MockBackend) GetDiagnostics(ctx context.Context) (*domain.Diagnostics, error) {
	return &domain.Diagnostics{}, nil
}

func TestSnapshot_WholesaleReplace(t *testing.T) {
	store := usecase.NewMirrorStore()
	backend := &MockBackend{
		Account:   &domain.AccountSnapshot{Balance: 5000},
		Positions: []*domain.Position{{DealID: "P1", Epic: "X"}},
		Orders:    []*domain.Order{{DealID: "O1", Status: domain.OrderStatusPending}},
	}
	svc := usecase.NewSnapshotService(backend, store, zap.NewNop())

	// Pre-existing channel state that the snapshot does not know about.
	store.ApplyPosition(domain.Position{DealID: "GONE", Epic: "Y"})
	store.ApplyOrder(domain.Order{DealID: "OGONE", Status: domain.OrderStatusPending})

	if err := svc.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if store.Account().Balance != 5000 {
		t.Errorf("Expected account from snapshot, got %+v", store.Account())
	}
	positions := store.Positions()
	if len(positions) != 1 || positions[0].DealID != "P1" {
		t.Errorf("Snapshot must replace positions wholesale, got %+v", positions)
	}
	orders := store.Orders()
	if len(orders) != 1 || orders[0].DealID != "O1" {
		t.Errorf("Snapshot must replace orders wholesale, got %+v", orders)
	}
}

func TestSnapshot_FailureLeavesStateUntouched(t *testing.T) {
	store := usecase.NewMirrorStore()
	backend := &MockBackend{
		Account:      &domain.AccountSnapshot{Balance: 5000},
		PositionsErr: errors.New("backend down"),
	}
	svc := usecase.NewSnapshotService(backend, store, zap.NewNop())

	store.ApplyPosition(domain.Position{DealID: "KEEP", Epic: "X"})

	err := svc.LoadAll(context.Background())
	if err == nil {
		t.Fatal("Expected error from failed positions pull")
	}

	// Known state survives a failed pull.
	positions := store.Positions()
	if len(positions) != 1 || positions[0].DealID != "KEEP" {
		t.Errorf("Failed snapshot must leave positions untouched, got %+v", positions)
	}
}

func TestSnapshot_RefreshContinuesAfterRemoteFailure(t *testing.T) {
	store := usecase.NewMirrorStore()
	backend := &MockBackend{
		Account:    &domain.AccountSnapshot{Balance: 100},
		RefreshErr: errors.New("venue busy"),
	}
	svc := usecase.NewSnapshotService(backend, store, zap.NewNop())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh should fall back to cached state, got %v", err)
	}
	if !backend.RefreshCalled {
		t.Error("Expected remote refresh to be attempted")
	}
	if store.Account().Balance != 100 {
		t.Error("Expected reload despite remote refresh failure")
	}
}
