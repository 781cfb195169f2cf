// Package regions models the candidate consequential regions of Shepard's
// generalization theory: axis-aligned rectangles drawn from a prior and
// filtered against an observed stimulus.
package regions

import "fmt"

// Axis selects one of the two stimulus dimensions.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Point is a location in the 2-D stimulus space.
type Point struct {
	X, Y float64
}

// Origin is the observed stimulus used by the simulation.
var Origin = Point{}

// Region is a candidate consequential region. Centre and extent are kept
// alongside the derived edges so downstream code never recomputes them.
type Region struct {
	MidX, MidY float64
	LenX, LenY float64

	XMin, XMax float64
	YMin, YMax float64
}

// NewRegion builds a Region from its centre and extents.
func NewRegion(midX, midY, lenX, lenY float64) Region {
	return Region{
		MidX: midX,
		MidY: midY,
		LenX: lenX,
		LenY: lenY,
		XMin: midX - lenX/2,
		XMax: midX + lenX/2,
		YMin: midY - lenY/2,
		YMax: midY + lenY/2,
	}
}

// Span returns the open interval covered by the region on the given axis.
func (r Region) Span(a Axis) (lo, hi float64) {
	if a == AxisY {
		return r.YMin, r.YMax
	}
	return r.XMin, r.XMax
}

// Covers reports whether v lies strictly inside the region's span on axis a.
func (r Region) Covers(a Axis, v float64) bool {
	lo, hi := r.Span(a)
	return lo < v && v < hi
}

// Contains reports whether p lies strictly inside the region on both axes.
func (r Region) Contains(p Point) bool {
	return r.Covers(AxisX, p.X) && r.Covers(AxisY, p.Y)
}

// Within reports whether all four edges lie strictly inside (-bound, bound).
func (r Region) Within(bound float64) bool {
	return -bound < r.XMin && r.XMax < bound &&
		-bound < r.YMin && r.YMax < bound
}
