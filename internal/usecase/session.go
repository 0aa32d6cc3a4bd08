package usecase

import (
	"context"

	"github.com/vitos/ig_account_mirror/internal/domain"
	"go.uber.org/zap"
)

// Stream is the push-channel lifecycle as the session sees it: connect,
// a connectivity signal, raw frames, teardown. Payload interpretation
// happens elsewhere.
type Stream interface {
	OnFrame(fn func([]byte))
	OnStateChange(fn func(bool))
	Connect() error
	Connected() bool
	Close()
}

// Session binds the mirror to an authenticated session's lifetime. It is
// built on login and torn down on logout; teardown cancels the stream's
// pending reconnect so no stale dial outlives the session. Between those
// two points it wires the two write paths together: channel frames go
// through the dispatcher, and every connectivity gap (the initial
// connect included) is healed with a full snapshot reload because the
// channel has no replay.
type Session struct {
	stream    Stream
	dispatch  *Dispatcher
	snapshots *SnapshotService
	store     *MirrorStore
	logger    *zap.Logger

	cancel context.CancelFunc
}

func NewSession(stream Stream, dispatch *Dispatcher, snapshots *SnapshotService, store *MirrorStore, logger *zap.Logger) *Session {
	return &Session{
		stream:    stream,
		dispatch:  dispatch,
		snapshots: snapshots,
		store:     store,
		logger:    logger,
	}
}

// Start loads an initial snapshot and opens the push channel. A failed
// initial dial is not fatal: the stream keeps retrying on its own and
// the snapshot already populated the mirror.
func (s *Session) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	if err := s.snapshots.LoadAll(ctx); err != nil {
		return err
	}

	s.stream.OnFrame(s.dispatch.Dispatch)
	s.stream.OnStateChange(func(connected bool) {
		s.setStreamConnected(connected)
		if !connected {
			return
		}
		// Reconnects leave a gap; replace wholesale to recover.
		go func() {
			if err := s.snapshots.LoadAll(ctx); err != nil {
				s.logger.Error("snapshot reload after reconnect failed", zap.Error(err))
			}
		}()
	})

	if err := s.stream.Connect(); err != nil {
		s.logger.Warn("initial channel connect failed, retrying in background", zap.Error(err))
	}
	return nil
}

// Stop tears the session down, cancelling any in-flight snapshot reload
// and the stream's pending reconnect.
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.stream.Close()
	s.setStreamConnected(false)
}

func (s *Session) setStreamConnected(connected bool) {
	s.store.ApplyStatus(domain.StatusUpdate{StreamConnected: &connected})
}
