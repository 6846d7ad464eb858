// Package surface models the raster canvas a signature is drawn on: a
// displayed size in layout pixels, a backing bitmap in device pixels and a
// 2D context with a transform and a composite operation.
package surface

import "image"

// Canvas is a bitmap surface with a separately tracked displayed size, like
// an HTML canvas element whose CSS box and width/height attributes differ.
type Canvas struct {
	displayW, displayH float64
	ctx                *Context
}

// NewCanvas returns a canvas displayed at w x h layout pixels with a backing
// bitmap of the same size.
func NewCanvas(w, h float64) *Canvas {
	c := &Canvas{displayW: w, displayH: h}
	c.ctx = newContext(int(w), int(h))
	return c
}

// SetDisplaySize records the size the canvas is laid out at.
func (c *Canvas) SetDisplaySize(w, h float64) {
	c.displayW, c.displayH = w, h
}

// DisplaySize returns the laid out size in layout pixels.
func (c *Canvas) DisplaySize() (w, h float64) {
	return c.displayW, c.displayH
}

// SetSize reallocates the backing bitmap. As with a canvas element, this
// wipes the pixels and resets the context transform and composite operation.
func (c *Canvas) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.ctx.reset(w, h)
}

// Size returns the backing bitmap size in device pixels.
func (c *Canvas) Size() (w, h int) {
	b := c.ctx.img.Bounds()
	return b.Dx(), b.Dy()
}

// Context returns the canvas' 2D drawing context.
func (c *Canvas) Context() *Context {
	return c.ctx
}

// Image returns the live backing bitmap.
func (c *Canvas) Image() *image.RGBA {
	return c.ctx.img
}
