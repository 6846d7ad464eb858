// Package controller binds a signature canvas to its drawing session: it
// keeps the canvas bitmap matched to the device pixel ratio and exposes the
// clear, undo, erase and export operations a page wires to its buttons.
package controller

import (
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"SignaturePad/internal/pad"
	"SignaturePad/internal/state"
	"SignaturePad/internal/surface"
)

// Session is the part of the drawing session the controller hands out to
// callers that need more than its own operations: pointer input and raw
// stroke data.
type Session interface {
	StrokeBegin(x, y, pressure float64)
	StrokeUpdate(x, y, pressure float64)
	StrokeEnd()
	ToData() []state.PointGroup
	FromData(groups []state.PointGroup)
	Options() state.Options
}

var _ Session = (*pad.Pad)(nil)

// Controller owns one canvas and one drawing session. Methods must be
// called from a single goroutine, the page's event loop.
type Controller struct {
	canvas   *surface.Canvas
	viewport surface.Viewport
	session  *pad.Pad
	erase    bool

	stopResize func()
}

// New builds a session on canvas from opts (nil means the defaults), sizes
// the canvas for the viewport and follows the viewport's resize events
// until Dispose.
func New(canvas *surface.Canvas, viewport surface.Viewport, opts *state.Options) (*Controller, error) {
	o := state.DefaultOptions()
	if opts != nil {
		o = *opts
	}
	session, err := pad.New(canvas, o)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}

	c := &Controller{canvas: canvas, viewport: viewport, session: session}
	c.ResizeSurface()
	if viewport != nil {
		c.stopResize = viewport.OnResize(c.ResizeSurface)
	}
	return c, nil
}

// ResizeSurface sizes the backing bitmap to the displayed size times the
// device pixel ratio (at least 1) and scales the context so drawing stays in
// display pixels. Recorded strokes are painted again on the new bitmap.
func (c *Controller) ResizeSurface() {
	ratio := surface.EffectiveRatio(c.viewport)
	w, h := c.canvas.DisplaySize()
	c.canvas.SetSize(int(w*ratio), int(h*ratio))
	c.canvas.Context().Scale(ratio, ratio)

	if c.session == nil {
		return
	}
	if c.erase {
		c.session.SetCompositeOperation(state.CompositeDestinationOut)
	}
	c.session.Redraw()
}

// ExportAsFormat returns the canvas as a data URL of the given raster type,
// image/png or image/jpeg; other types produce PNG. ok is false once the
// controller has no session.
func (c *Controller) ExportAsFormat(format string) (string, bool) {
	if c.session == nil {
		return "", false
	}
	if format == pad.MimeSVG {
		format = pad.MimePNG
	}
	url, err := c.session.ToDataURL(format)
	if err != nil {
		log.Printf("[PAD] export %s: %v", format, err)
		return "", false
	}
	return url, true
}

// SaveAsPNG is ExportAsFormat("image/png").
func (c *Controller) SaveAsPNG() (string, bool) {
	return c.ExportAsFormat(pad.MimePNG)
}

// SaveAsJPEG is ExportAsFormat("image/jpeg").
func (c *Controller) SaveAsJPEG() (string, bool) {
	return c.ExportAsFormat(pad.MimeJPEG)
}

// ExportAsVector returns the signature as decoded SVG markup.
func (c *Controller) ExportAsVector() (string, bool) {
	if c.session == nil {
		return "", false
	}
	url, err := c.session.ToDataURL(pad.MimeSVG)
	if err != nil || url == "" {
		return "", false
	}
	_, encoded, found := strings.Cut(url, ",")
	if !found {
		return "", false
	}
	markup, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Printf("[PAD] decode svg data url: %v", err)
		return "", false
	}
	return string(markup), true
}

// ClearSurface erases every stroke; the background colour stays.
func (c *Controller) ClearSurface() {
	if c.session == nil {
		return
	}
	c.session.Clear()
}

// IsEmpty reports whether no stroke is recorded. ok is false once the
// controller has no session.
func (c *Controller) IsEmpty() (empty, ok bool) {
	if c.session == nil {
		return false, false
	}
	return c.session.IsEmpty(), true
}

// UndoLastStroke removes the most recent stroke. It does nothing when no
// stroke is recorded. There is one level of history and no redo.
func (c *Controller) UndoLastStroke() {
	if c.session == nil {
		return
	}
	data := c.session.ToData()
	if len(data) == 0 {
		return
	}
	c.session.FromData(data[:len(data)-1])
}

// SetEraseMode switches the pen between drawing and erasing. Erase strokes
// are recorded like any other stroke, so undo and clear cover them.
func (c *Controller) SetEraseMode(on bool) {
	if c.session == nil {
		return
	}
	c.erase = on
	if on {
		c.session.SetCompositeOperation(state.CompositeDestinationOut)
		return
	}
	c.session.SetCompositeOperation(state.CompositeSourceOver)
}

// EraseMode reports whether the pen erases.
func (c *Controller) EraseMode() bool {
	return c.erase
}

// Session returns the drawing session for pointer input and stroke data.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return nil, false
	}
	return c.session, true
}

// Canvas returns the canvas the controller draws on.
func (c *Controller) Canvas() *surface.Canvas {
	return c.canvas
}

// Dispose stops following viewport resizes and releases the session. Later
// calls report an absent session.
func (c *Controller) Dispose() {
	if c.stopResize != nil {
		c.stopResize()
		c.stopResize = nil
	}
	c.session = nil
}
