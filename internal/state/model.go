package state

// Point is one sampled pointer position in display pixels.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Time     int64   `json:"time"` // unix milliseconds
	Pressure float64 `json:"pressure"`
}

// CompositeOp mirrors the canvas globalCompositeOperation values a stroke can be drawn with.
type CompositeOp string

const (
	CompositeSourceOver     CompositeOp = "source-over"
	CompositeDestinationOut CompositeOp = "destination-out"
)

// Known reports whether op is one of the operations strokes are drawn with.
func (op CompositeOp) Known() bool {
	return op == CompositeSourceOver || op == CompositeDestinationOut
}

// PointGroup is one continuous pointer-down to pointer-up stroke together with
// the pen settings it was recorded with.
type PointGroup struct {
	ID                   string      `json:"id"`
	PenColor             string      `json:"penColor"`
	DotSize              float64     `json:"dotSize"`
	MinWidth             float64     `json:"minWidth"`
	MaxWidth             float64     `json:"maxWidth"`
	VelocityFilterWeight float64     `json:"velocityFilterWeight"`
	CompositeOp          CompositeOp `json:"compositeOperation"`
	Points               []Point     `json:"points"`
}

// Clone returns a deep copy of g.
func (g PointGroup) Clone() PointGroup {
	c := g
	c.Points = make([]Point, len(g.Points))
	copy(c.Points, g.Points)
	return c
}

// CloneGroups deep-copies a stroke sequence.
func CloneGroups(groups []PointGroup) []PointGroup {
	if groups == nil {
		return nil
	}
	out := make([]PointGroup, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}
