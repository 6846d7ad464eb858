package pad

import (
	"SignaturePad/internal/state"
	"SignaturePad/internal/surface"
)

// StrokeBegin starts a new point group at (x, y).
func (p *Pad) StrokeBegin(x, y, pressure float64) {
	g := state.PointGroup{
		ID:                   state.NewGroupID(),
		PenColor:             p.opts.PenColor,
		DotSize:              p.opts.EffectiveDotSize(),
		MinWidth:             p.opts.MinWidth,
		MaxWidth:             p.opts.MaxWidth,
		VelocityFilterWeight: p.opts.VelocityFilterWeight,
		CompositeOp:          p.op,
	}
	p.data = append(p.data, g)
	p.drawing = true
	p.filter = newWidthFilter(g)
	p.lastUpdate = state.Now()
	p.addPoint(state.Point{X: x, Y: y, Time: p.lastUpdate, Pressure: pressure})
}

// StrokeUpdate adds a point to the stroke in progress. Updates arriving
// within the throttle interval of the last accepted one are dropped, as are
// points closer than MinDistance to the previous point.
func (p *Pad) StrokeUpdate(x, y, pressure float64) {
	if !p.drawing {
		return
	}
	now := state.Now()
	if throttle := p.opts.Throttle.Millis(); throttle > 0 && now-p.lastUpdate < throttle {
		return
	}
	p.lastUpdate = now
	p.addPoint(state.Point{X: x, Y: y, Time: now, Pressure: pressure})
}

// StrokeEnd finishes the stroke in progress.
func (p *Pad) StrokeEnd() {
	p.drawing = false
	p.filter = nil
}

// Drawing reports whether a stroke is in progress.
func (p *Pad) Drawing() bool {
	return p.drawing
}

func (p *Pad) addPoint(pt state.Point) {
	g := &p.data[len(p.data)-1]
	n := len(g.Points)
	if n > 0 && distance(g.Points[n-1], pt) <= p.opts.MinDistance {
		return
	}
	g.Points = append(g.Points, pt)

	col := p.color(g.PenColor)
	p.withOp(g.CompositeOp, func(ctx *surface.Context) {
		if n == 0 {
			ctx.FillCircle(pt.X, pt.Y, g.DotSize, col)
			return
		}
		prev := g.Points[n-1]
		ctx.StrokeLine(prev.X, prev.Y, pt.X, pt.Y, p.filter.next(prev, pt), col)
	})
}
