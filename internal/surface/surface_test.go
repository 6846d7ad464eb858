package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"SignaturePad/internal/state"

	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var black = color.NRGBA{A: 255}

func TestCanvas_SetSizeResetsContext(t *testing.T) {
	c := NewCanvas(300, 150)
	w, h := c.Size()
	assert.Equal(t, 300, w)
	assert.Equal(t, 150, h)

	ctx := c.Context()
	ctx.Scale(2, 2)
	ctx.SetCompositeOperation(state.CompositeDestinationOut)
	ctx.FillRect(0, 0, 10, 10, black)

	c.SetSize(600, 300)
	w, h = c.Size()
	assert.Equal(t, 600, w)
	assert.Equal(t, 300, h)
	assert.Equal(t, rasterx.Identity, ctx.Transform())
	assert.Equal(t, state.CompositeSourceOver, ctx.CompositeOperation())
	assert.Equal(t, uint8(0), c.Image().RGBAAt(1, 1).A)

	dw, dh := c.DisplaySize()
	assert.Equal(t, 300.0, dw)
	assert.Equal(t, 150.0, dh)
}

func TestCanvas_NegativeSizeClamps(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetSize(-1, 5)
	w, h := c.Size()
	assert.Equal(t, 0, w)
	assert.Equal(t, 5, h)

	// drawing on an empty bitmap is a no-op
	c.Context().FillRect(0, 0, 5, 5, black)
}

func TestContext_Scale(t *testing.T) {
	c := NewCanvas(10, 10)
	ctx := c.Context()
	ctx.Scale(2, 3)
	m := ctx.Transform()
	assert.Equal(t, 2.0, m.A)
	assert.Equal(t, 3.0, m.D)

	ctx.ResetTransform()
	assert.Equal(t, rasterx.Identity, ctx.Transform())
}

func TestContext_UnknownCompositeIgnored(t *testing.T) {
	ctx := NewCanvas(1, 1).Context()
	ctx.SetCompositeOperation("lighter")
	assert.Equal(t, state.CompositeSourceOver, ctx.CompositeOperation())
}

func TestContext_FillRectUsesTransform(t *testing.T) {
	c := NewCanvas(20, 20)
	ctx := c.Context()
	ctx.Scale(2, 2)
	ctx.FillRect(0, 0, 5, 5, black)

	assert.Equal(t, uint8(255), c.Image().RGBAAt(8, 8).A, "inside the scaled rect")
	assert.Equal(t, uint8(0), c.Image().RGBAAt(15, 15).A, "outside the scaled rect")
}

func TestContext_StrokeAndErase(t *testing.T) {
	c := NewCanvas(40, 20)
	ctx := c.Context()
	ctx.FillRect(0, 0, 40, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	ctx.StrokeLine(5, 10, 35, 10, 4, black)

	px := c.Image().RGBAAt(20, 10)
	assert.Equal(t, uint8(255), px.A)
	assert.Less(t, px.R, uint8(8), "pen pixel is black")

	ctx.SetCompositeOperation(state.CompositeDestinationOut)
	ctx.StrokeLine(5, 10, 35, 10, 8, black)

	assert.LessOrEqual(t, c.Image().RGBAAt(20, 10).A, uint8(1), "erased pixel is transparent")
	assert.Equal(t, uint8(255), c.Image().RGBAAt(20, 2).A, "pixels outside the eraser survive")
}

func TestContext_ZeroLengthStrokeDrawsDot(t *testing.T) {
	c := NewCanvas(20, 20)
	c.Context().StrokeLine(10, 10, 10, 10, 6, black)
	assert.Equal(t, uint8(255), c.Image().RGBAAt(10, 10).A)
}

func TestContext_Clear(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Context().FillRect(0, 0, 4, 4, black)
	c.Context().Clear()
	for _, v := range c.Image().Pix {
		require.Zero(t, v)
	}
}

func TestContext_EncodePNG(t *testing.T) {
	c := NewCanvas(8, 6)
	var buf bytes.Buffer
	require.NoError(t, c.Context().EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestEffectiveRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  float64
	}{
		{"Unavailable", 0, 1},
		{"NaN", math.NaN(), 1},
		{"BelowOne", 0.5, 1},
		{"One", 1, 1},
		{"Retina", 2, 2},
		{"Fractional", 1.25, 1.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveRatio(NewWindow(tt.ratio)))
		})
	}
	assert.Equal(t, 1.0, EffectiveRatio(nil))
}

func TestWindow_ResizeListeners(t *testing.T) {
	w := NewWindow(1)
	var calls []string
	cancelA := w.OnResize(func() { calls = append(calls, "a") })
	w.OnResize(func() { calls = append(calls, "b") })
	assert.Equal(t, 2, w.Listeners())

	w.Resize()
	assert.Equal(t, []string{"a", "b"}, calls)

	cancelA()
	cancelA()
	assert.Equal(t, 1, w.Listeners())

	w.Resize()
	assert.Equal(t, []string{"a", "b", "b"}, calls)

	w.SetDevicePixelRatio(3)
	assert.Equal(t, 3.0, w.DevicePixelRatio())
}
