package state

import "math"

// Rect is an axis aligned area in display pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Bounds returns the box covering every point of the drawing strokes in
// groups, grown by padding on each side. Erase strokes do not extend it.
func Bounds(groups []PointGroup, padding float64) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, g := range groups {
		if g.CompositeOp == CompositeDestinationOut {
			continue
		}
		for _, p := range g.Points {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return Rect{}
	}

	return Rect{
		X:      minX - padding,
		Y:      minY - padding,
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}
}
