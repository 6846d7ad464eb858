package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"SignaturePad/internal/pad"
	"SignaturePad/internal/state"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin = 20.0  // mm
	boxWidth   = 170.0 // mm, A4 width minus margins
	boxHeight  = 100.0 // mm
	// boundsPadding keeps stroke caps inside the cropped area, in display pixels.
	boundsPadding = 10.0
)

// Drawing is what a PDF export renders: the recorded strokes and the canvas
// they were drawn on.
type Drawing struct {
	Groups     []state.PointGroup
	Width      float64 // canvas display size
	Height     float64
	Background string
}

// WritePDF writes an A4 page with the signature cropped to its strokes and
// scaled into a box at the top of the page. Strokes stay vectors.
// Erase strokes are painted with an opaque background colour and skipped
// on a transparent one.
func WritePDF(w io.Writer, d Drawing) error {
	bg, err := state.ParseColor(d.Background)
	if err != nil {
		return fmt.Errorf("export: background: %w", err)
	}

	area := state.Bounds(d.Groups, boundsPadding)
	if area.Empty() {
		area = state.Rect{Width: d.Width, Height: d.Height}
	}
	scale := 1.0
	if !area.Empty() {
		scale = math.Min(boxWidth/area.Width, boxHeight/area.Height)
	}
	toPage := func(x, y float64) (float64, float64) {
		return pageMargin + (x-area.X)*scale, pageMargin + (y-area.Y)*scale
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	if bg.A > 0 {
		setFill(p, bg)
		p.Rect(pageMargin, pageMargin, area.Width*scale, area.Height*scale, "F")
	}

	for _, g := range d.Groups {
		col, err := state.ParseColor(g.PenColor)
		if err != nil {
			return fmt.Errorf("export: stroke %s: %w", g.ID, err)
		}
		if g.CompositeOp == state.CompositeDestinationOut {
			if bg.A == 0 {
				continue
			}
			col = bg
		}

		if pad.IsDot(g) {
			setFill(p, col)
			x, y := toPage(g.Points[0].X, g.Points[0].Y)
			p.Circle(x, y, g.DotSize*scale, "F")
			continue
		}
		p.SetDrawColor(int(col.R), int(col.G), int(col.B))
		p.SetAlpha(float64(col.A)/255, "Normal")
		for _, s := range pad.Segments(g) {
			x1, y1 := toPage(s.X1, s.Y1)
			x2, y2 := toPage(s.X2, s.Y2)
			p.SetLineWidth(s.Width * scale)
			p.Line(x1, y1, x2, y2)
		}
	}
	p.SetAlpha(1, "Normal")

	return p.Output(w)
}

func setFill(p *gofpdf.Fpdf, c color.NRGBA) {
	p.SetFillColor(int(c.R), int(c.G), int(c.B))
	p.SetAlpha(float64(c.A)/255, "Normal")
}
