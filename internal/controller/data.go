package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"SignaturePad/internal/export"
	"SignaturePad/internal/state"
)

var ErrNoSession = errors.New("controller: no drawing session")

// WriteData writes the recorded strokes as indented JSON.
func (c *Controller) WriteData(w io.Writer) error {
	if c.session == nil {
		return ErrNoSession
	}
	groups := c.session.ToData()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(groups); err != nil {
		return fmt.Errorf("controller: encode strokes: %w", err)
	}
	log.Printf("[PAD] saved %d strokes", len(groups))
	return nil
}

// ReadData replaces the recorded strokes with the JSON stroke data in r.
func (c *Controller) ReadData(r io.Reader) error {
	if c.session == nil {
		return ErrNoSession
	}
	var groups []state.PointGroup
	if err := json.NewDecoder(r).Decode(&groups); err != nil {
		return fmt.Errorf("controller: decode strokes: %w", err)
	}
	c.session.FromData(groups)
	log.Printf("[PAD] loaded %d strokes", len(groups))
	return nil
}

// WritePDF writes the signature as a vector PDF page.
func (c *Controller) WritePDF(w io.Writer) error {
	if c.session == nil {
		return ErrNoSession
	}
	width, height := c.canvas.DisplaySize()
	return export.WritePDF(w, export.Drawing{
		Groups:     c.session.ToData(),
		Width:      width,
		Height:     height,
		Background: c.session.Options().BackgroundColor,
	})
}
