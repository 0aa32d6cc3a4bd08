package usecase

import (
	"context"
	"fmt"

	"github.com/vitos/ig_account_mirror/internal/domain"
	"go.uber.org/zap"
)

// SnapshotService is the pull-side recovery path. The push channel has no
// replay, so any gap (including the initial connect) is healed by pulling
// full collections and replacing the mirror wholesale. A failed pull
// leaves the existing collection untouched and reports the error; stale
// known state beats no state.
type SnapshotService struct {
	backend domain.Backend
	store   *MirrorStore
	logger  *zap.Logger
}

func NewSnapshotService(backend domain.Backend, store *MirrorStore, logger *zap.Logger) *SnapshotService {
	return &SnapshotService{backend: backend, store: store, logger: logger}
}

// LoadAll pulls account, positions and orders. Each collection is
// replaced independently on its own success; the first failure is
// returned but does not undo replacements that already happened.
func (s *SnapshotService) LoadAll(ctx context.Context) error {
	if err := s.LoadAccount(ctx); err != nil {
		return err
	}
	if err := s.LoadPositions(ctx); err != nil {
		return err
	}
	return s.LoadOrders(ctx)
}

func (s *SnapshotService) LoadAccount(ctx context.Context) error {
	acc, err := s.backend.GetAccount(ctx)
	if err != nil {
		return fmt.Errorf("snapshot account: %w", err)
	}
	s.store.ReplaceAccount(*acc)
	return nil
}

func (s *SnapshotService) LoadPositions(ctx context.Context) error {
	positions, err := s.backend.GetPositions(ctx)
	if err != nil {
		return fmt.Errorf("snapshot positions: %w", err)
	}
	out := make([]domain.Position, 0, len(positions))
	for _, p := range positions {
		out = append(out, *p)
	}
	s.store.ReplacePositions(out)
	return nil
}

func (s *SnapshotService) LoadOrders(ctx context.Context) error {
	orders, err := s.backend.GetOrders(ctx)
	if err != nil {
		return fmt.Errorf("snapshot orders: %w", err)
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, *o)
	}
	s.store.ReplaceOrders(out)
	return nil
}

// Refresh asks the remote system to re-pull from the venue first, then
// reloads everything. The remote refresh failing is logged but does not
// stop the local reload: the backend's cached state is still newer than
// a gap.
func (s *SnapshotService) Refresh(ctx context.Context) error {
	if err := s.backend.RefreshPositions(ctx); err != nil {
		s.logger.Warn("remote refresh failed, reloading cached state", zap.Error(err))
	}
	return s.LoadAll(ctx)
}
