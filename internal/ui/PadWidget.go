package ui

import (
	"image"
	"image/color"

	"SignaturePad/internal/controller"
	"SignaturePad/internal/state"
	"SignaturePad/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// mousePressure is reported for pointer devices without pressure sensing.
const mousePressure = 0.5

var padMinSize = fyne.NewSize(300, 150)

// PadWidget shows one signature canvas and feeds pointer input to its
// controller's session.
type PadWidget struct {
	widget.BaseWidget
	ctrl    *controller.Controller
	surface *surface.Canvas
	window  *surface.Window
	raster  *canvas.Raster
	drawing bool

	// OnStrokeEnd runs after every completed stroke.
	OnStrokeEnd func()
}

var _ fyne.Widget = (*PadWidget)(nil)
var _ fyne.Draggable = (*PadWidget)(nil)
var _ desktop.Mouseable = (*PadWidget)(nil)

// NewPadWidget builds a pad with its own canvas and controller.
func NewPadWidget(opts state.Options) (*PadWidget, error) {
	p := &PadWidget{
		surface: surface.NewCanvas(float64(padMinSize.Width), float64(padMinSize.Height)),
		window:  surface.NewWindow(1),
	}
	ctrl, err := controller.New(p.surface, p.window, &opts)
	if err != nil {
		return nil, err
	}
	p.ctrl = ctrl
	p.raster = canvas.NewRaster(func(w, h int) image.Image {
		return p.surface.Image()
	})
	p.raster.SetMinSize(padMinSize)
	p.ExtendBaseWidget(p)
	return p, nil
}

// Controller exposes the pad's controller to the page buttons.
func (p *PadWidget) Controller() *controller.Controller {
	return p.ctrl
}

// Resize keeps the backing bitmap at the widget size times the output scale.
func (p *PadWidget) Resize(size fyne.Size) {
	p.BaseWidget.Resize(size)
	p.surface.SetDisplaySize(float64(size.Width), float64(size.Height))
	p.window.SetDevicePixelRatio(p.scale())
	p.window.Resize()
	p.raster.Refresh()
}

func (p *PadWidget) scale() float64 {
	app := fyne.CurrentApp()
	if app == nil {
		return 1
	}
	if c := app.Driver().CanvasForObject(p); c != nil {
		return float64(c.Scale())
	}
	return 1
}

// Repaint pushes the canvas bitmap to the screen.
func (p *PadWidget) Repaint() {
	p.raster.Refresh()
}

func (p *PadWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	s, ok := p.ctrl.Session()
	if !ok {
		return
	}
	p.drawing = true
	s.StrokeBegin(float64(e.Position.X), float64(e.Position.Y), mousePressure)
	p.raster.Refresh()
}

func (p *PadWidget) Dragged(e *fyne.DragEvent) {
	if !p.drawing {
		return
	}
	if s, ok := p.ctrl.Session(); ok {
		s.StrokeUpdate(float64(e.Position.X), float64(e.Position.Y), mousePressure)
		p.raster.Refresh()
	}
}

func (p *PadWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		p.endStroke()
	}
}

func (p *PadWidget) DragEnd() {
	p.endStroke()
}

func (p *PadWidget) endStroke() {
	if !p.drawing {
		return
	}
	p.drawing = false
	if s, ok := p.ctrl.Session(); ok {
		s.StrokeEnd()
	}
	p.raster.Refresh()
	if p.OnStrokeEnd != nil {
		p.OnStrokeEnd()
	}
}

func (p *PadWidget) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	return widget.NewSimpleRenderer(container.NewStack(p.raster, border))
}
