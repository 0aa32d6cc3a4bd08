package domain

import "time"

// HarvestParams are the inputs of the harvest sequence planner.
type HarvestParams struct {
	TotalContracts  float64 `json:"totalContracts"`
	TargetPoints    float64 `json:"targetPoints"`
	BandDivisor     float64 `json:"bandDivisor"`
	HarvestFraction float64 `json:"harvestFraction"`
}

// HarvestSequence is a planned sequence of partial-close sizes persisted
// when a strategy configuration is committed. Re-planning from the same
// params must reproduce Steps exactly; any difference means the planner
// or the stored configuration drifted.
type HarvestSequence struct {
	StrategyID string        `json:"strategyId"`
	Params     HarvestParams `json:"params"`
	Steps      []float64     `json:"steps"`
	CreatedAt  time.Time     `json:"createdAt"`
}
