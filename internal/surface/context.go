package surface

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"SignaturePad/internal/state"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Context draws onto a canvas bitmap through a transform matrix, honouring
// the current composite operation.
type Context struct {
	img    *image.RGBA
	matrix rasterx.Matrix2D
	op     state.CompositeOp
}

func newContext(w, h int) *Context {
	c := &Context{}
	c.reset(w, h)
	return c
}

func (c *Context) reset(w, h int) {
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.matrix = rasterx.Identity
	c.op = state.CompositeSourceOver
}

// Scale multiplies the current transform by a scaling.
func (c *Context) Scale(x, y float64) {
	c.matrix = c.matrix.Scale(x, y)
}

// ResetTransform restores the identity transform.
func (c *Context) ResetTransform() {
	c.matrix = rasterx.Identity
}

// Transform returns the current transform.
func (c *Context) Transform() rasterx.Matrix2D {
	return c.matrix
}

// SetCompositeOperation selects how subsequent drawing combines with the
// existing pixels. Unknown operations are ignored, as a canvas does.
func (c *Context) SetCompositeOperation(op state.CompositeOp) {
	switch op {
	case state.CompositeSourceOver, state.CompositeDestinationOut:
		c.op = op
	}
}

// CompositeOperation returns the current composite operation.
func (c *Context) CompositeOperation() state.CompositeOp {
	return c.op
}

// Clear makes every pixel transparent, ignoring transform and composite mode.
func (c *Context) Clear() {
	clear(c.img.Pix)
}

// FillRect fills a rectangle given in user space.
func (c *Context) FillRect(x, y, w, h float64, col color.Color) {
	c.paint(col, func(sc rasterx.Scanner, bw, bh int) {
		f := rasterx.NewFiller(bw, bh, sc)
		rasterx.AddRect(x, y, x+w, y+h, 0, &rasterx.MatrixAdder{Adder: f, M: c.matrix})
		f.Draw()
	})
}

// FillCircle fills a circle given in user space.
func (c *Context) FillCircle(cx, cy, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	c.paint(col, func(sc rasterx.Scanner, bw, bh int) {
		f := rasterx.NewFiller(bw, bh, sc)
		rasterx.AddCircle(cx, cy, r, &rasterx.MatrixAdder{Adder: f, M: c.matrix})
		f.Draw()
	})
}

// StrokeLine strokes a round capped segment of the given user space width.
func (c *Context) StrokeLine(x1, y1, x2, y2, width float64, col color.Color) {
	if width <= 0 {
		return
	}
	if x1 == x2 && y1 == y2 {
		c.FillCircle(x1, y1, width/2, col)
		return
	}
	devWidth := width * math.Sqrt(math.Abs(c.matrix.A*c.matrix.D-c.matrix.B*c.matrix.C))
	c.paint(col, func(sc rasterx.Scanner, bw, bh int) {
		s := rasterx.NewStroker(bw, bh, sc)
		s.SetStroke(fixed.Int26_6(devWidth*64), fixed.Int26_6(4*64), rasterx.RoundCap, nil, rasterx.RoundGap, rasterx.Round)
		a := &rasterx.MatrixAdder{Adder: s, M: c.matrix}
		a.Start(rasterx.ToFixedP(x1, y1))
		a.Line(rasterx.ToFixedP(x2, y2))
		a.Stop(false)
		s.Draw()
	})
}

// paint rasterises a shape with col. For destination-out the shape is
// rendered to a coverage mask which is then subtracted from the bitmap.
func (c *Context) paint(col color.Color, shape func(sc rasterx.Scanner, w, h int)) {
	b := c.img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	if c.op != state.CompositeDestinationOut {
		sc := rasterx.NewScannerGV(w, h, c.img, b)
		sc.SetColor(col)
		shape(sc, w, h)
		return
	}

	mask := image.NewAlpha(b)
	sc := rasterx.NewScannerGV(w, h, mask, b)
	sc.SetColor(color.Opaque)
	shape(sc, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint32(mask.AlphaAt(x, y).A)
			if a == 0 {
				continue
			}
			i := c.img.PixOffset(x, y)
			keep := 255 - a
			for k := 0; k < 4; k++ {
				c.img.Pix[i+k] = uint8(uint32(c.img.Pix[i+k]) * keep / 255)
			}
		}
	}
}

// EncodePNG writes the bitmap as PNG.
func (c *Context) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// EncodeJPEG writes the bitmap as JPEG with the given quality (1-100).
// JPEG has no alpha, so transparent pixels come out black.
func (c *Context) EncodeJPEG(w io.Writer, quality int) error {
	return jpeg.Encode(w, c.img, &jpeg.Options{Quality: quality})
}
