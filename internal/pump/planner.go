// Package pump implements the activation planner: how many feed pumps the
// controller should have open this cycle, and which physical pump indices to
// toggle to get there without touching a pump already flagged as failed.
package pump

import (
	"math"

	"github.com/holla2040/boilerctl/internal/physics"
)

// Plan is the planner's cardinality decision plus the predicted band for
// that choice — the "sticky state" the fault oracle reads on the next tick.
type Plan struct {
	Count   int
	MinBand float64
	MaxBand float64
}

// ChooseCount picks k*, the number of pumps that should be open this cycle,
// given the current (or estimated) water level w and steam rate s.
//
// availableThroughput lists the per-pump throughput of every pump not
// currently flagged as failed, in ascending index order. Because Select
// below opens pumps lowest-index-first, using the first k entries of that
// same list as the representative sum for cardinality k keeps the planned
// band consistent with the pumps Select will actually choose.
func ChooseCount(w, s, minNormal, maxNormal, maxSteam, periodSeconds float64, availableThroughput []float64) Plan {
	n := len(availableThroughput)

	if w >= maxNormal {
		return Plan{
			Count:   0,
			MinBand: physics.Low(w, periodSeconds, 0, maxSteam),
			MaxBand: physics.High(w, s, periodSeconds, 0),
		}
	}

	if w < minNormal {
		sum := sumAll(availableThroughput)
		return Plan{
			Count:   n,
			MinBand: physics.Low(w, periodSeconds, sum, maxSteam),
			MaxBand: physics.High(w, s, periodSeconds, sum),
		}
	}

	target := (minNormal + maxNormal) / 2
	bestK := -1
	bestDist := math.Inf(1)
	var bestLo, bestHi float64

	for k := 0; k <= n; k++ {
		sum := sumFirst(availableThroughput, k)
		hi := physics.High(w, s, periodSeconds, sum)
		lo := physics.Low(w, periodSeconds, sum, maxSteam)
		if hi >= maxNormal || lo <= minNormal {
			continue
		}
		dist := math.Abs((hi+lo)/2 - target)
		if dist < bestDist {
			bestDist = dist
			bestK = k
			bestLo, bestHi = lo, hi
		}
	}

	if bestK < 0 {
		// No k keeps the predicted band inside the normal band: close all,
		// per design note (a) — the "no feasible k" case resolves to 0
		// rather than a sentinel.
		return Plan{
			Count:   0,
			MinBand: physics.Low(w, periodSeconds, 0, maxSteam),
			MaxBand: physics.High(w, s, periodSeconds, 0),
		}
	}

	return Plan{Count: bestK, MinBand: bestLo, MaxBand: bestHi}
}

// Select decides which physical pump indices to open or close to move from
// the current open/closed arrangement to k open pumps among those not
// flagged as failed, skipping (and not counting) any failed pump, the same
// cardinality ChooseCount plans over. Closing prefers the highest index
// first; opening prefers the lowest index first.
func Select(openNow []bool, failed []bool, k int) (toOpen, toClose []int) {
	n := len(openNow)
	current := 0
	for i, open := range openNow {
		if open && !failed[i] {
			current++
		}
	}

	if current > k {
		need := current - k
		for i := n - 1; i >= 0 && need > 0; i-- {
			if openNow[i] && !failed[i] {
				toClose = append(toClose, i)
				need--
			}
		}
		return toOpen, toClose
	}

	if current < k {
		need := k - current
		for i := 0; i < n && need > 0; i++ {
			if !openNow[i] && !failed[i] {
				toOpen = append(toOpen, i)
				need--
			}
		}
	}
	return toOpen, toClose
}

func sumAll(v []float64) float64 {
	return sumFirst(v, len(v))
}

func sumFirst(v []float64, k int) float64 {
	total := 0.0
	for i := 0; i < k && i < len(v); i++ {
		total += v[i]
	}
	return total
}
