// Package physics implements the closed-form water-level bounds the rest of
// the decision engine is built on: given a water level, a steam rate, and a
// set of active pumps, what water level can the plant reach one cycle period
// from now. Every sensor estimate and every planner decision is expressed
// through these two functions — there are no other physics primitives.
package physics

import "math"

// High returns the highest water level reachable after one period, assuming
// steam stays at the observed rate s for the whole period.
func High(w float64, s float64, periodSeconds float64, openThroughput float64) float64 {
	return w + periodSeconds*openThroughput - periodSeconds*s
}

// Low returns the lowest water level reachable after one period, assuming
// steam rises to maxSteam (the worst case) for the whole period. The lower
// bound substitutes the maximum steam rate because steam might rise to
// maxSteam between readings.
func Low(w float64, periodSeconds float64, openThroughput float64, maxSteam float64) float64 {
	return w + periodSeconds*openThroughput - periodSeconds*maxSteam
}

// EstimateWater synthesizes a water-level reading when the level sensor has
// failed. It returns the upper bound (High), which is the conservative
// choice against over-fill.
func EstimateWater(lastWater float64, steam float64, periodSeconds float64, openThroughput float64) float64 {
	return High(lastWater, steam, periodSeconds, openThroughput)
}

// EstimateSteam synthesizes a steam-rate reading when the steam sensor has
// failed, from the change in water level implied by the pumps that were
// open, clamped to the sensor's physical range.
func EstimateSteam(lastWater float64, currentWater float64, periodSeconds float64, openThroughput float64, maxSteam float64) float64 {
	if periodSeconds <= 0 {
		return 0
	}
	s := (lastWater + periodSeconds*openThroughput - currentWater) / periodSeconds
	return math.Max(0, math.Min(maxSteam, s))
}

// WithinBand reports whether w falls within [lo, hi] expanded by the given
// slack factors on either side — the 0.8/1.2 margin the fault oracle uses to
// absorb model error across a five-second tick.
func WithinBand(w, lo, hi, loSlack, hiSlack float64) bool {
	return w >= lo*loSlack && w <= hi*hiSlack
}
