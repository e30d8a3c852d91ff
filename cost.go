package shallowshadow

import "math"

// Strictness margin for the single-qubit pass: a candidate must beat
// the incumbent by more than floating-point noise to displace it.
const costTieEpsilon = 1e-15

// confidenceCost evaluates the exponential confidence bound for one
// candidate circuit. For each observable still below its hit target it
// multiplies a decay term for hits already accumulated, a term for the
// candidate circuit itself, and a term for the remaining measurements
// assumed fully random. Observables at or above target contribute
// zero. Lower is better.
func confidenceCost(eta float64, total, m int, weights []float64, targets []int, hits, wpart, wrand []float64) float64 {
	nu := 1 - math.Exp(-eta/2)

	var c float64
	for l := range hits {
		if hits[l] >= float64(targets[l]) {
			continue
		}

		decay := math.Exp(-eta / 2 * hits[l])
		current := 1 - nu*wpart[l]
		future := math.Pow(1-nu*wrand[l], float64(total-m-1))

		c += weights[l] * decay * current * future
	}

	return c
}
