// Package gradient estimates Shepard generalization gradients: for each
// point on an evaluation grid, the fraction of surviving hypotheses whose
// span on that axis contains the point.
package gradient

import (
	"fmt"

	"github.com/banshee-data/consequential-regions/internal/regions"
	"gonum.org/v1/gonum/floats"
)

// DefaultGridPoints is the number of evaluation points per axis.
const DefaultGridPoints = 1000

// NewGrid returns n evenly spaced points covering [-bound, bound], both
// endpoints included.
func NewGrid(bound float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid needs at least 2 points, got %d", n)
	}
	if !(bound > 0) {
		return nil, fmt.Errorf("grid bound must be positive, got %v", bound)
	}
	grid := floats.Span(make([]float64, n), -bound, bound)
	// Span accumulates step*i, which can land an ulp off the upper bound.
	grid[n-1] = bound
	return grid, nil
}

// Curve is a generalization gradient sampled along one axis.
// P[i] is the probability at Grid[i].
type Curve struct {
	Axis regions.Axis
	Grid []float64
	P    []float64
}

// Peak returns the largest probability on the curve, or 0 if it is empty.
func (c Curve) Peak() float64 {
	if len(c.P) == 0 {
		return 0
	}
	return floats.Max(c.P)
}

// Probability is the fraction of hyps whose span on axis strictly contains
// v. An empty hypothesis set yields 0.
func Probability(hyps []regions.Region, axis regions.Axis, v float64) float64 {
	if len(hyps) == 0 {
		return 0
	}
	n := 0
	for _, h := range hyps {
		if h.Covers(axis, v) {
			n++
		}
	}
	return float64(n) / float64(len(hyps))
}

// EstimateAxis evaluates Probability at every grid point on one axis.
func EstimateAxis(hyps []regions.Region, axis regions.Axis, grid []float64) Curve {
	c := Curve{
		Axis: axis,
		Grid: append([]float64(nil), grid...),
		P:    make([]float64, len(grid)),
	}
	for i, v := range grid {
		c.P[i] = Probability(hyps, axis, v)
	}
	return c
}

// Estimate evaluates both axes on the same grid.
func Estimate(hyps []regions.Region, grid []float64) (px, py Curve) {
	return EstimateAxis(hyps, regions.AxisX, grid), EstimateAxis(hyps, regions.AxisY, grid)
}
