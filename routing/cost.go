package routing

import (
	"fmt"
	"math"
)

// Weights parameterise the incremental cost of an edge. Costs are in
// meter-equivalents.
type Weights struct {
	WalkFactor          float64
	BusFactor           float64
	TransferPenalty     float64
	BacktrackMultiplier float64
	CurveBase           float64
}

func DefaultWeights() Weights {
	return Weights{
		WalkFactor:          1.15,
		BusFactor:           1.00,
		TransferPenalty:     240,
		BacktrackMultiplier: 1.10,
		CurveBase:           1.00004,
	}
}

// Validate rejects weights that could make an incremental cost negative.
func (w Weights) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"walk factor", w.WalkFactor},
		{"bus factor", w.BusFactor},
		{"transfer penalty", w.TransferPenalty},
		{"backtrack multiplier", w.BacktrackMultiplier},
	} {
		if !finiteNonNegative(f.value) {
			return fmt.Errorf("%s must be finite and >= 0, got %v", f.name, f.value)
		}
	}
	if !(w.CurveBase >= 1) || math.IsInf(w.CurveBase, 0) {
		return fmt.Errorf("curve base must be finite and >= 1, got %v", w.CurveBase)
	}
	return nil
}

// finiteNonNegative is false for NaN and infinities.
func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// IncrementalCost is the cost of traversing e given the search state that
// reaches its source.
//
// previousLine is the last line ridden ("" before any bus ride; walking
// does not reset it), progression is +1/-1/0 for forward/backward/unknown
// travel along the edge's line, and cumulativeBusDistance is the raw bus
// distance ridden so far. The curve multiplies the base cost only; the
// transfer penalty is added flat.
func (w Weights) IncrementalCost(e Edge, previousLine string, progression int, cumulativeBusDistance float64) float64 {
	var base, transfer float64
	switch edge := e.(type) {
	case WalkEdge:
		base = edge.Meters * w.WalkFactor
	case BusEdge:
		base = edge.Meters * w.BusFactor
		if progression < 0 {
			base *= w.BacktrackMultiplier
		}
		if previousLine != "" && edge.Line != previousLine {
			transfer = w.TransferPenalty
		}
	}

	curve := math.Pow(w.CurveBase, cumulativeBusDistance/10)
	return base*curve + transfer
}
