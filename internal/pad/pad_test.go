package pad

import (
	"bytes"
	"encoding/base64"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"SignaturePad/internal/state"
	"SignaturePad/internal/surface"

	"github.com/srwiley/oksvg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock pins state.Now to a controllable value for the test.
func fakeClock(t *testing.T) *int64 {
	t.Helper()
	var now int64 = 1_000
	prev := state.Now
	state.Now = func() int64 { return now }
	t.Cleanup(func() { state.Now = prev })
	return &now
}

func newTestPad(t *testing.T, opts state.Options) (*Pad, *surface.Canvas) {
	t.Helper()
	c := surface.NewCanvas(100, 50)
	p, err := New(c, opts)
	require.NoError(t, err)
	return p, c
}

// stroke records a stroke through pts, advancing the clock by step ms per point.
func stroke(p *Pad, now *int64, step int64, pts ...state.Point) {
	p.StrokeBegin(pts[0].X, pts[0].Y, 0.5)
	for _, pt := range pts[1:] {
		*now += step
		p.StrokeUpdate(pt.X, pt.Y, 0.5)
	}
	p.StrokeEnd()
}

func payload(t *testing.T, url, mime string) []byte {
	t.Helper()
	prefix := "data:" + mime + ";base64,"
	require.True(t, strings.HasPrefix(url, prefix), "got %.40q", url)
	b, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	require.NoError(t, err)
	return b
}

func TestNew_RejectsBadOptions(t *testing.T) {
	c := surface.NewCanvas(10, 10)

	o := state.DefaultOptions()
	o.PenColor = "sparkly"
	_, err := New(c, o)
	assert.ErrorIs(t, err, state.ErrUnknownColor)

	o = state.DefaultOptions()
	o.BackgroundColor = "rgb(1)"
	_, err = New(c, o)
	assert.ErrorIs(t, err, state.ErrUnknownColor)

	o = state.DefaultOptions()
	o.MinWidth, o.MaxWidth = 3, 1
	_, err = New(c, o)
	assert.Error(t, err)
}

func TestNew_PaintsBackground(t *testing.T) {
	o := state.DefaultOptions()
	o.BackgroundColor = "rgb(255,255,255)"
	_, c := newTestPad(t, o)
	px := c.Image().RGBAAt(50, 25)
	assert.Equal(t, uint8(255), px.A)
	assert.Equal(t, uint8(255), px.R)

	_, c = newTestPad(t, state.DefaultOptions())
	assert.Equal(t, uint8(0), c.Image().RGBAAt(50, 25).A)
}

func TestStroke_RecordsAndDraws(t *testing.T) {
	now := fakeClock(t)
	p, c := newTestPad(t, state.DefaultOptions())
	assert.True(t, p.IsEmpty())

	stroke(p, now, 20, state.Point{X: 10, Y: 25}, state.Point{X: 50, Y: 25}, state.Point{X: 90, Y: 25})
	assert.False(t, p.IsEmpty())
	assert.False(t, p.Drawing())

	data := p.ToData()
	require.Len(t, data, 1)
	g := data[0]
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "black", g.PenColor)
	assert.Equal(t, state.CompositeSourceOver, g.CompositeOp)
	assert.Equal(t, []state.Point{
		{X: 10, Y: 25, Time: 1_000, Pressure: 0.5},
		{X: 50, Y: 25, Time: 1_020, Pressure: 0.5},
		{X: 90, Y: 25, Time: 1_040, Pressure: 0.5},
	}, g.Points)

	assert.Greater(t, c.Image().RGBAAt(30, 25).A, uint8(0))
}

func TestStrokeUpdate_Throttle(t *testing.T) {
	now := fakeClock(t)
	p, _ := newTestPad(t, state.DefaultOptions())

	p.StrokeBegin(0, 0, 0)
	*now += 5
	p.StrokeUpdate(20, 0, 0) // inside the 16ms window
	*now += 15
	p.StrokeUpdate(40, 0, 0)
	p.StrokeEnd()

	pts := p.ToData()[0].Points
	require.Len(t, pts, 2)
	assert.Equal(t, 40.0, pts[1].X)
}

func TestStrokeUpdate_NoThrottle(t *testing.T) {
	fakeClock(t)
	o := state.DefaultOptions()
	o.Throttle = 0
	p, _ := newTestPad(t, o)

	p.StrokeBegin(0, 0, 0)
	p.StrokeUpdate(10, 0, 0)
	p.StrokeUpdate(20, 0, 0)
	p.StrokeEnd()
	assert.Len(t, p.ToData()[0].Points, 3)
}

func TestStrokeUpdate_MinDistance(t *testing.T) {
	now := fakeClock(t)
	p, _ := newTestPad(t, state.DefaultOptions())

	stroke(p, now, 20, state.Point{X: 0, Y: 0}, state.Point{X: 3, Y: 4}, state.Point{X: 6, Y: 8})
	pts := p.ToData()[0].Points
	require.Len(t, pts, 2, "a point exactly MinDistance away is dropped")
	assert.Equal(t, state.Point{X: 6, Y: 8, Time: 1_040, Pressure: 0.5}, pts[1])
}

func TestStrokeUpdate_WithoutBeginIgnored(t *testing.T) {
	p, _ := newTestPad(t, state.DefaultOptions())
	p.StrokeUpdate(10, 10, 0)
	p.StrokeEnd()
	assert.True(t, p.IsEmpty())
}

func TestClear(t *testing.T) {
	now := fakeClock(t)
	o := state.DefaultOptions()
	o.BackgroundColor = "rgb(255,255,255)"
	p, c := newTestPad(t, o)
	stroke(p, now, 20, state.Point{X: 10, Y: 25}, state.Point{X: 90, Y: 25})

	p.Clear()
	assert.True(t, p.IsEmpty())
	assert.Empty(t, p.ToData())
	px := c.Image().RGBAAt(50, 25)
	assert.Equal(t, uint8(255), px.R, "stroke pixels replaced by background")
	assert.Equal(t, uint8(255), px.A)
}

func TestClear_InEraseModeKeepsBackground(t *testing.T) {
	o := state.DefaultOptions()
	o.BackgroundColor = "white"
	p, c := newTestPad(t, o)
	p.SetCompositeOperation(state.CompositeDestinationOut)

	p.Clear()
	assert.Equal(t, uint8(255), c.Image().RGBAAt(50, 25).A)
	assert.Equal(t, state.CompositeDestinationOut, c.Context().CompositeOperation())
}

func TestToDataFromData(t *testing.T) {
	now := fakeClock(t)
	p, _ := newTestPad(t, state.DefaultOptions())
	stroke(p, now, 20, state.Point{X: 10, Y: 10}, state.Point{X: 40, Y: 10})
	stroke(p, now, 20, state.Point{X: 10, Y: 30}, state.Point{X: 40, Y: 30})

	data := p.ToData()
	data[0].Points[0].X = 77
	assert.Equal(t, 10.0, p.ToData()[0].Points[0].X, "ToData returns a copy")

	data = p.ToData()
	q, _ := newTestPad(t, state.DefaultOptions())
	q.FromData(data)
	assert.Equal(t, data, q.ToData())

	data[1].PenColor = "red"
	assert.Equal(t, "black", q.ToData()[1].PenColor, "FromData keeps its own copy")
}

func TestFromData_FillsMissingSettings(t *testing.T) {
	p, c := newTestPad(t, state.DefaultOptions())
	p.FromData([]state.PointGroup{{Points: []state.Point{{X: 50, Y: 25}}}})

	g := p.ToData()[0]
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "black", g.PenColor)
	assert.Equal(t, 0.5, g.MinWidth)
	assert.Equal(t, 2.5, g.MaxWidth)
	assert.Equal(t, 1.5, g.DotSize)
	assert.Equal(t, 0.7, g.VelocityFilterWeight)
	assert.Equal(t, state.CompositeSourceOver, g.CompositeOp)
	assert.Equal(t, uint8(255), c.Image().RGBAAt(50, 25).A, "single point renders as a dot")
}

func TestFromData_MissingWeightMatchesLiveStroke(t *testing.T) {
	now := fakeClock(t)
	p, _ := newTestPad(t, state.DefaultOptions())
	stroke(p, now, 20, state.Point{X: 10, Y: 10}, state.Point{X: 60, Y: 10}, state.Point{X: 90, Y: 40})
	live := p.ToData()

	loaded := state.CloneGroups(live)
	loaded[0].VelocityFilterWeight = 0
	p.FromData(loaded)

	assert.Equal(t, live[0].VelocityFilterWeight, p.ToData()[0].VelocityFilterWeight)
	assert.Equal(t, Segments(live[0]), Segments(p.ToData()[0]))
}

func TestFromData_UnknownCompositeOpDrawsInk(t *testing.T) {
	o := state.DefaultOptions()
	o.MinWidth, o.MaxWidth = 6, 6
	p, c := newTestPad(t, o)
	p.SetCompositeOperation(state.CompositeDestinationOut)

	p.FromData([]state.PointGroup{{
		CompositeOp: "xor",
		Points:      []state.Point{{X: 10, Y: 25, Time: 0}, {X: 90, Y: 25, Time: 20}},
	}})

	assert.Equal(t, state.CompositeSourceOver, p.ToData()[0].CompositeOp)
	assert.Equal(t, uint8(255), c.Image().RGBAAt(50, 25).A)
	svg := p.ToSVG()
	assert.Contains(t, svg, "<path")
	assert.NotContains(t, svg, "mask")
}

func TestNew_FillsUnsetOptions(t *testing.T) {
	p, c := newTestPad(t, state.Options{BackgroundColor: "rgb(255,255,255)"})

	o := p.Options()
	assert.Equal(t, "black", o.PenColor)
	assert.Equal(t, 0.5, o.MinWidth)
	assert.Equal(t, 2.5, o.MaxWidth)
	assert.Equal(t, 0.7, o.VelocityFilterWeight)
	assert.Equal(t, state.Duration(0), o.Throttle, "zero throttle stays off")
	assert.Equal(t, uint8(255), c.Image().RGBAAt(50, 25).R)
}

func TestFromData_Empty(t *testing.T) {
	now := fakeClock(t)
	p, _ := newTestPad(t, state.DefaultOptions())
	stroke(p, now, 20, state.Point{X: 10, Y: 10}, state.Point{X: 40, Y: 10})
	p.FromData(nil)
	assert.True(t, p.IsEmpty())
}

func TestEraseStroke(t *testing.T) {
	now := fakeClock(t)
	o := state.DefaultOptions()
	o.MinWidth, o.MaxWidth = 6, 6
	p, c := newTestPad(t, o)

	stroke(p, now, 20, state.Point{X: 10, Y: 25}, state.Point{X: 90, Y: 25})
	require.Equal(t, uint8(255), c.Image().RGBAAt(50, 25).A)

	p.SetCompositeOperation(state.CompositeDestinationOut)
	stroke(p, now, 20, state.Point{X: 10, Y: 25}, state.Point{X: 90, Y: 25})
	assert.LessOrEqual(t, c.Image().RGBAAt(50, 25).A, uint8(1))

	data := p.ToData()
	require.Len(t, data, 2)
	assert.Equal(t, state.CompositeDestinationOut, data[1].CompositeOp)

	// replaying keeps the erase effect
	p.Redraw()
	assert.LessOrEqual(t, c.Image().RGBAAt(50, 25).A, uint8(1))

	p.SetCompositeOperation("")
	assert.Equal(t, state.CompositeSourceOver, p.CompositeOperation())
}

func TestSegments_VelocityWidth(t *testing.T) {
	g := state.PointGroup{
		MinWidth: 0.5, MaxWidth: 2.5, VelocityFilterWeight: 0.7,
		Points: []state.Point{
			{X: 0, Y: 0, Time: 0},
			{X: 10, Y: 0, Time: 10}, // 1 px/ms
			{X: 10, Y: 0, Time: 10}, // same instant, velocity 0
		},
	}
	segs := Segments(g)
	require.Len(t, segs, 2)
	assert.InDelta(t, 2.5/1.7, segs[0].Width, 1e-9)
	assert.InDelta(t, 2.5/(1+0.3*0.7), segs[1].Width, 1e-9)

	fast := state.PointGroup{MinWidth: 0.5, MaxWidth: 2.5, VelocityFilterWeight: 1,
		Points: []state.Point{{X: 0, Time: 0}, {X: 100, Time: 1}}}
	assert.Equal(t, 0.5, Segments(fast)[0].Width, "clamped to MinWidth")

	assert.Nil(t, Segments(state.PointGroup{Points: []state.Point{{X: 1}}}))
}

func TestToDataURL_Raster(t *testing.T) {
	now := fakeClock(t)
	o := state.DefaultOptions()
	o.BackgroundColor = "rgb(255,255,255)"
	p, _ := newTestPad(t, o)
	stroke(p, now, 20, state.Point{X: 10, Y: 25}, state.Point{X: 90, Y: 25})

	url, err := p.ToDataURL(MimePNG)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(payload(t, url, MimePNG)))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	url, err = p.ToDataURL(MimeJPEG)
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(payload(t, url, MimeJPEG)))
	require.NoError(t, err)

	url, err = p.ToDataURL("image/bmp")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"), "unknown types fall back to PNG")
}

func TestToDataURL_ZeroSizedCanvas(t *testing.T) {
	c := surface.NewCanvas(0, 0)
	p, err := New(c, state.DefaultOptions())
	require.NoError(t, err)

	url, err := p.ToDataURL(MimePNG)
	require.NoError(t, err)
	assert.Equal(t, "data:,", url)
}

func TestToSVG(t *testing.T) {
	now := fakeClock(t)
	p, _ := newTestPad(t, state.DefaultOptions())
	stroke(p, now, 20, state.Point{X: 10, Y: 25}, state.Point{X: 50, Y: 25}, state.Point{X: 90, Y: 40})
	p.FromData(append(p.ToData(), state.PointGroup{Points: []state.Point{{X: 5, Y: 5}}}))

	url, err := p.ToDataURL(MimeSVG)
	require.NoError(t, err)
	markup := string(payload(t, url, MimeSVG))

	assert.Contains(t, markup, "<svg")
	assert.Contains(t, markup, "<path")
	assert.Contains(t, markup, "<circle")
	assert.NotContains(t, markup, "mask")

	icon, err := oksvg.ReadIconStream(strings.NewReader(markup))
	require.NoError(t, err)
	assert.Equal(t, 100.0, icon.ViewBox.W)
	assert.Equal(t, 50.0, icon.ViewBox.H)
	assert.NotEmpty(t, icon.SVGPaths)
}

func TestToSVG_EraseUsesMask(t *testing.T) {
	now := fakeClock(t)
	p, _ := newTestPad(t, state.DefaultOptions())
	stroke(p, now, 20, state.Point{X: 10, Y: 25}, state.Point{X: 90, Y: 25})
	p.SetCompositeOperation(state.CompositeDestinationOut)
	stroke(p, now, 20, state.Point{X: 50, Y: 0}, state.Point{X: 50, Y: 50})

	markup := p.ToSVG()
	assert.Contains(t, markup, "<mask")
	assert.Contains(t, markup, "url(#erase1)")
}

func TestToSVG_Background(t *testing.T) {
	o := state.DefaultOptions()
	o.BackgroundColor = "rgb(255,255,255)"
	withBg, _ := newTestPad(t, o)
	plain, _ := newTestPad(t, state.DefaultOptions())
	assert.Greater(t, len(withBg.ToSVG()), len(plain.ToSVG()), "opaque background adds a fill element")
}

func TestToSVG_Empty(t *testing.T) {
	p, _ := newTestPad(t, state.DefaultOptions())
	markup := p.ToSVG()
	assert.Contains(t, markup, "<svg")
	assert.NotContains(t, markup, "<path")
}
