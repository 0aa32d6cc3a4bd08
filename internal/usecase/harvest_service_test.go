package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/ig_account_mirror/internal/domain"
	"github.com/vitos/ig_account_mirror/internal/usecase"
)

// MemSequenceRepo keeps baselines in a map.
type MemSequenceRepo struct {
	seqs map[string]*domain.HarvestSequence
}

func NewMemSequenceRepo() *MemSequenceRepo {
	return &MemSequenceRepo{seqs: make(map[string]*domain.HarvestSequence)}
}

func (m *MemSequenceRepo) SaveSequence(ctx context.Context, seq *domain.HarvestSequence) error {
	m.seqs[seq.StrategyID] = seq
	return nil
}

func (m *MemSequenceRepo) GetSequence(ctx context.Context, strategyID string) (*domain.HarvestSequence, error) {
	seq, ok := m.seqs[strategyID]
	if !ok {
		return nil, errors.New("sequence not found")
	}
	return seq, nil
}

func (m *MemSequenceRepo) DeleteSequence(ctx context.Context, strategyID string) error {
	delete(m.seqs, strategyID)
	return nil
}

func TestHarvestService_CommitAndNoDrift(t *testing.T) {
	repo := NewMemSequenceRepo()
	svc := usecase.NewHarvestService(repo)
	ctx := context.Background()

	params := domain.HarvestParams{TotalContracts: 1, TargetPoints: 10, BandDivisor: 2, HarvestFraction: 0.5}
	seq, err := svc.CommitBaseline(ctx, "s1", params)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}, seq.Steps)

	report, err := svc.CheckDrift(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, report.Drifted)
	assert.Empty(t, report.Mismatches)
}

func TestHarvestService_DetectsDrift(t *testing.T) {
	repo := NewMemSequenceRepo()
	svc := usecase.NewHarvestService(repo)
	ctx := context.Background()

	// A baseline whose steps do not match what the planner produces from
	// its own params, as if the configuration had been edited by hand.
	repo.seqs["tampered"] = &domain.HarvestSequence{
		StrategyID: "tampered",
		Params:     domain.HarvestParams{TotalContracts: 1, TargetPoints: 10, BandDivisor: 2, HarvestFraction: 0.5},
		Steps:      []float64{0.5, 0.5},
	}

	report, err := svc.CheckDrift(ctx, "tampered")
	require.NoError(t, err)
	assert.True(t, report.Drifted)
	require.NotEmpty(t, report.Mismatches)
	assert.Equal(t, 0, report.Mismatches[0].Index)
	assert.Equal(t, 0.3, report.Mismatches[0].Planned)
	assert.Equal(t, 0.5, report.Mismatches[0].Baseline)
}

func TestHarvestService_DegenerateParamsRejectedOnCommit(t *testing.T) {
	svc := usecase.NewHarvestService(NewMemSequenceRepo())

	_, err := svc.CommitBaseline(context.Background(), "bad", domain.HarvestParams{})
	require.Error(t, err)
}

func TestHarvestService_DriftUnknownStrategy(t *testing.T) {
	svc := usecase.NewHarvestService(NewMemSequenceRepo())

	_, err := svc.CheckDrift(context.Background(), "missing")
	require.Error(t, err)
}
