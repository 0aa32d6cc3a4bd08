package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/vitos/ig_account_mirror/internal/domain"
)

// StepMismatch describes one position where a freshly planned sequence
// disagrees with the committed baseline. A Planned or Baseline of -1
// marks a step present on only one side.
type StepMismatch struct {
	Index    int     `json:"index"`
	Planned  float64 `json:"planned"`
	Baseline float64 `json:"baseline"`
}

// DriftReport is the outcome of a drift check.
type DriftReport struct {
	StrategyID string         `json:"strategyId"`
	Drifted    bool           `json:"drifted"`
	Mismatches []StepMismatch `json:"mismatches,omitempty"`
	Baseline   []float64      `json:"baseline"`
	Planned    []float64      `json:"planned"`
}

// HarvestService wraps the pure planner with baseline persistence so a
// committed strategy configuration can be validated against what the
// planner produces today.
type HarvestService struct {
	sequences domain.SequenceRepository
}

func NewHarvestService(sequences domain.SequenceRepository) *HarvestService {
	return &HarvestService{sequences: sequences}
}

// Preview plans a sequence without persisting anything.
func (h *HarvestService) Preview(params domain.HarvestParams) []float64 {
	return PlanHarvest(params.TotalContracts, params.TargetPoints, params.BandDivisor, params.HarvestFraction)
}

// CommitBaseline plans and persists the sequence for a strategy. An
// empty plan means the params are degenerate and nothing is saved.
func (h *HarvestService) CommitBaseline(ctx context.Context, strategyID string, params domain.HarvestParams) (*domain.HarvestSequence, error) {
	steps := h.Preview(params)
	if len(steps) == 0 {
		return nil, fmt.Errorf("harvest params produce no sequence")
	}
	seq := &domain.HarvestSequence{
		StrategyID: strategyID,
		Params:     params,
		Steps:      steps,
		CreatedAt:  time.Now(),
	}
	if err := h.sequences.SaveSequence(ctx, seq); err != nil {
		return nil, fmt.Errorf("save harvest baseline: %w", err)
	}
	return seq, nil
}

// CheckDrift re-plans from the baseline's own params and compares step
// by step. The planner is deterministic, so any mismatch means the
// stored configuration and the running code disagree.
func (h *HarvestService) CheckDrift(ctx context.Context, strategyID string) (*DriftReport, error) {
	baseline, err := h.sequences.GetSequence(ctx, strategyID)
	if err != nil {
		return nil, fmt.Errorf("load harvest baseline: %w", err)
	}

	planned := h.Preview(baseline.Params)
	report := &DriftReport{
		StrategyID: strategyID,
		Baseline:   baseline.Steps,
		Planned:    planned,
	}

	n := len(planned)
	if len(baseline.Steps) > n {
		n = len(baseline.Steps)
	}
	for i := 0; i < n; i++ {
		p, b := -1.0, -1.0
		if i < len(planned) {
			p = planned[i]
		}
		if i < len(baseline.Steps) {
			b = baseline.Steps[i]
		}
		if p != b {
			report.Mismatches = append(report.Mismatches, StepMismatch{Index: i, Planned: p, Baseline: b})
		}
	}
	report.Drifted = len(report.Mismatches) > 0
	return report, nil
}
