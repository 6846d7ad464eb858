// Package pad implements the drawing session behind a signature canvas: it
// records pointer strokes as point groups, renders them onto a surface and
// serialises the result as PNG, JPEG or SVG data URLs.
package pad

import (
	"fmt"
	"image/color"
	"log"

	"SignaturePad/internal/state"
	"SignaturePad/internal/surface"
)

// Pad is a drawing session bound to one canvas. It is not safe for
// concurrent use; callers drive it from a single event loop.
type Pad struct {
	canvas     *surface.Canvas
	opts       state.Options
	penColor   color.NRGBA
	background color.NRGBA
	op         state.CompositeOp

	data    []state.PointGroup
	drawing bool
	filter  *widthFilter
	// lastUpdate is when the last throttled move was accepted.
	lastUpdate int64

	colors map[string]color.NRGBA
}

// New validates opts and returns a session that has cleared canvas to the
// background colour. Unset colours, width bounds and velocity weight take
// their defaults.
func New(canvas *surface.Canvas, opts state.Options) (*Pad, error) {
	opts = opts.WithDefaults()
	pen, err := state.ParseColor(opts.PenColor)
	if err != nil {
		return nil, fmt.Errorf("pad: parse pen color: %w", err)
	}
	bg, err := state.ParseColor(opts.BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("pad: parse background color: %w", err)
	}
	if opts.MinWidth < 0 || opts.MaxWidth < opts.MinWidth {
		return nil, fmt.Errorf("pad: invalid stroke width bounds [%g, %g]", opts.MinWidth, opts.MaxWidth)
	}

	p := &Pad{
		canvas:     canvas,
		opts:       opts,
		penColor:   pen,
		background: bg,
		op:         state.CompositeSourceOver,
		colors:     map[string]color.NRGBA{opts.PenColor: pen},
	}
	p.Clear()
	return p, nil
}

// Options returns the configuration the session was built with.
func (p *Pad) Options() state.Options {
	return p.opts
}

// Clear erases all strokes and repaints the background.
func (p *Pad) Clear() {
	p.data = nil
	p.drawing = false
	p.filter = nil
	p.paintBackground()
}

func (p *Pad) paintBackground() {
	ctx := p.canvas.Context()
	ctx.Clear()
	if p.background.A == 0 {
		return
	}
	w, h := p.canvas.Size()
	prev := ctx.CompositeOperation()
	ctx.SetCompositeOperation(state.CompositeSourceOver)
	ctx.FillRect(0, 0, float64(w), float64(h), p.background)
	ctx.SetCompositeOperation(prev)
}

// IsEmpty reports whether no stroke has been recorded.
func (p *Pad) IsEmpty() bool {
	return len(p.data) == 0
}

// ToData returns a copy of the recorded stroke sequence.
func (p *Pad) ToData() []state.PointGroup {
	return state.CloneGroups(p.data)
}

// FromData replaces the recorded strokes with groups and renders them.
// Missing pen settings fall back to the session options and unknown
// composite operations draw as source-over.
func (p *Pad) FromData(groups []state.PointGroup) {
	p.Clear()
	for _, g := range groups {
		p.data = append(p.data, p.normalize(g.Clone()))
	}
	p.drawGroups()
}

// Redraw repaints the background and every recorded stroke, e.g. after the
// canvas bitmap was reallocated.
func (p *Pad) Redraw() {
	p.paintBackground()
	p.drawGroups()
}

func (p *Pad) drawGroups() {
	for _, g := range p.data {
		p.drawGroup(g)
	}
}

// SetCompositeOperation sets how subsequently recorded strokes combine with
// the canvas; destination-out turns the pen into an eraser.
func (p *Pad) SetCompositeOperation(op state.CompositeOp) {
	if op == "" {
		op = state.CompositeSourceOver
	}
	p.op = op
	p.canvas.Context().SetCompositeOperation(op)
}

// CompositeOperation returns the operation new strokes are recorded with.
func (p *Pad) CompositeOperation() state.CompositeOp {
	return p.op
}

func (p *Pad) normalize(g state.PointGroup) state.PointGroup {
	if g.ID == "" {
		g.ID = state.NewGroupID()
	}
	if g.PenColor == "" {
		g.PenColor = p.opts.PenColor
	}
	if g.MinWidth == 0 && g.MaxWidth == 0 {
		g.MinWidth, g.MaxWidth = p.opts.MinWidth, p.opts.MaxWidth
	}
	if g.DotSize == 0 {
		g.DotSize = p.opts.EffectiveDotSize()
	}
	if g.VelocityFilterWeight == 0 {
		g.VelocityFilterWeight = p.opts.VelocityFilterWeight
	}
	if !g.CompositeOp.Known() {
		g.CompositeOp = state.CompositeSourceOver
	}
	return g
}

func (p *Pad) color(s string) color.NRGBA {
	if c, ok := p.colors[s]; ok {
		return c
	}
	c, err := state.ParseColor(s)
	if err != nil {
		log.Printf("[PAD] %v, drawing with pen color", err)
		c = p.penColor
	}
	p.colors[s] = c
	return c
}

// withOp runs draw with the context switched to op.
func (p *Pad) withOp(op state.CompositeOp, draw func(ctx *surface.Context)) {
	ctx := p.canvas.Context()
	prev := ctx.CompositeOperation()
	ctx.SetCompositeOperation(op)
	draw(ctx)
	ctx.SetCompositeOperation(prev)
}

func (p *Pad) drawGroup(g state.PointGroup) {
	col := p.color(g.PenColor)
	p.withOp(g.CompositeOp, func(ctx *surface.Context) {
		if IsDot(g) {
			ctx.FillCircle(g.Points[0].X, g.Points[0].Y, g.DotSize, col)
			return
		}
		for _, s := range Segments(g) {
			ctx.StrokeLine(s.X1, s.Y1, s.X2, s.Y2, s.Width, col)
		}
	})
}
