package pad

import (
	"math"

	"SignaturePad/internal/state"
)

// Segment is one straight piece of a rendered stroke.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Width          float64
}

// widthFilter derives line widths from pointer velocity: fast movement
// draws thin lines, slow movement thick ones.
type widthFilter struct {
	weight, minWidth, maxWidth float64
	velocity                   float64
}

func newWidthFilter(g state.PointGroup) *widthFilter {
	return &widthFilter{weight: g.VelocityFilterWeight, minWidth: g.MinWidth, maxWidth: g.MaxWidth}
}

func (f *widthFilter) next(a, b state.Point) float64 {
	f.velocity = f.weight*velocityBetween(a, b) + (1-f.weight)*f.velocity
	return math.Max(f.maxWidth/(f.velocity+1), f.minWidth)
}

// velocityBetween is in pixels per millisecond.
func velocityBetween(a, b state.Point) float64 {
	if b.Time == a.Time {
		return 0
	}
	return distance(a, b) / math.Abs(float64(b.Time-a.Time))
}

func distance(a, b state.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Segments returns the straight segments a point group renders as. A group
// with a single point renders as a dot and yields no segments.
func Segments(g state.PointGroup) []Segment {
	if len(g.Points) < 2 {
		return nil
	}
	f := newWidthFilter(g)
	segs := make([]Segment, 0, len(g.Points)-1)
	for i := 1; i < len(g.Points); i++ {
		a, b := g.Points[i-1], g.Points[i]
		segs = append(segs, Segment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Width: f.next(a, b)})
	}
	return segs
}

// IsDot reports whether g renders as a single dot.
func IsDot(g state.PointGroup) bool {
	return len(g.Points) == 1
}
