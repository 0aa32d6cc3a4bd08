package domain

import (
	"context"
	"time"
)

// Backend is the REST surface of the remote trading backend. Snapshot
// reads return whole collections; command calls act remotely and report
// success or failure, never partial results. A `success:false` envelope
// and a transport failure look the same to callers: an error.
type Backend interface {
	GetAccount(ctx context.Context) (*AccountSnapshot, error)
	GetPositions(ctx context.Context) ([]*Position, error)
	GetOrders(ctx context.Context) ([]*Order, error)

	RefreshPositions(ctx context.Context) error
	ClosePosition(ctx context.Context, dealID string) error
	CancelOrder(ctx context.Context, dealID string) error
	ForceReconnect(ctx context.Context) error
	GetDiagnostics(ctx context.Context) (*Diagnostics, error)
}

// Diagnostics describes the remote system's own connection to the venue.
type Diagnostics struct {
	IGConnected     bool      `json:"igConnected"`
	StreamConnected bool      `json:"streamConnected"`
	SessionStarted  time.Time `json:"sessionStarted"`
	Detail          string    `json:"detail,omitempty"`
}

// SequenceRepository stores committed harvest sequences used as the
// baseline for drift checks.
type SequenceRepository interface {
	SaveSequence(ctx context.Context, seq *HarvestSequence) error
	GetSequence(ctx context.Context, strategyID string) (*HarvestSequence, error)
	DeleteSequence(ctx context.Context, strategyID string) error
}
