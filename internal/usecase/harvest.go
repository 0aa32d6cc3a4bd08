package usecase

import "math"

// Harvest planner constants. 20 steps bounds the loop for degenerate
// parameter combinations; 0.1 is the minimum close size the venue
// accepts; below 0.05 contracts the remainder is treated as dust.
// Whether 20 steps can truncate a mathematically longer valid sequence
// for extreme inputs is an open question (see DESIGN.md); the constants
// are kept as explicit, testable values rather than re-derived.
const (
	harvestMaxSteps     = 20
	harvestMinStep      = 0.1
	harvestMinRemainder = 0.05
)

// PlanHarvest computes, ahead of time, the contract size each step of a
// multi-step partial profit-taking strategy will close. At step n the
// "loss band" (target*n + target/divisor, scaled by remaining contracts)
// is compared against a fixed reinvestable profit (total * target *
// fraction). While the band exceeds the profit, a floor-rounded
// percentage of the remaining contracts is closed, never less than 0.1;
// once the profit covers the band, everything left closes in one step.
//
// The function is pure and deterministic: the output is compared against
// a previously persisted sequence to detect configuration drift, so
// identical inputs must produce an identical sequence. Non-positive or
// degenerate inputs yield nil so preview consumers degrade instead of
// crashing.
func PlanHarvest(totalContracts, targetPoints, bandDivisor, harvestFraction float64) []float64 {
	if totalContracts <= 0 || targetPoints <= 0 || bandDivisor <= 0 || harvestFraction <= 0 {
		return nil
	}

	reinvestable := totalContracts * targetPoints * harvestFraction
	remaining := totalContracts

	var steps []float64
	for n := 1; n <= harvestMaxSteps && remaining > harvestMinRemainder; n++ {
		lossBand := (targetPoints*float64(n) + targetPoints/bandDivisor) * remaining
		if reinvestable >= lossBand {
			steps = append(steps, round1(remaining))
			return steps
		}

		pct := math.Floor(reinvestable * 100 / lossBand)
		step := math.Floor(remaining*pct/100*10) / 10
		if step <= 0 {
			// Forced minimum so degenerate percentages still progress.
			step = harvestMinStep
		}
		if step > remaining {
			step = round1(remaining)
		}
		steps = append(steps, step)
		remaining -= step
	}

	// Cap reached with contracts left: flush the remainder as one step.
	if remaining > harvestMinRemainder {
		steps = append(steps, round1(remaining))
	}
	return steps
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
