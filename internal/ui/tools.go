package ui

import (
	"fmt"

	"SignaturePad/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Page holds the two pads and the buttons wired to them. Pad 1 saves PNG,
// pad 2 saves JPEG and takes undo and erase.
type Page struct {
	Pad1, Pad2 *PadWidget
	sink       ExportSink
	status     *widget.Label
	window     fyne.Window
}

// NewPage builds both pads from cfg. Exports go to sink.
func NewPage(cfg config.Config, sink ExportSink) (*Page, error) {
	pad1, err := NewPadWidget(cfg.Pad1)
	if err != nil {
		return nil, fmt.Errorf("pad1: %w", err)
	}
	pad2, err := NewPadWidget(cfg.Pad2)
	if err != nil {
		pad1.Controller().Dispose()
		return nil, fmt.Errorf("pad2: %w", err)
	}
	if sink == nil {
		sink = LogSink{}
	}
	return &Page{
		Pad1:   pad1,
		Pad2:   pad2,
		sink:   sink,
		status: widget.NewLabel("Ready"),
	}, nil
}

func (p *Page) SetStatus(text string) {
	p.status.SetText(text)
}

// SavePNG1 exports pad 1 as PNG.
func (p *Page) SavePNG1() {
	p.export("save-png1", p.Pad1, "image/png")
}

// SaveJPG2 exports pad 2 as JPEG.
func (p *Page) SaveJPG2() {
	p.export("save-jpg2", p.Pad2, "image/jpeg")
}

func (p *Page) export(name string, pad *PadWidget, format string) {
	url, ok := pad.Controller().ExportAsFormat(format)
	if !ok {
		p.SetStatus(name + ": nothing to export")
		return
	}
	p.sink.Publish(name, url)
	p.SetStatus(name + ": exported")
}

func (p *Page) Clear1() {
	p.Pad1.Controller().ClearSurface()
	p.Pad1.Repaint()
}

func (p *Page) Clear2() {
	p.Pad2.Controller().ClearSurface()
	p.Pad2.Repaint()
}

// Undo takes back the last stroke on pad 2.
func (p *Page) Undo() {
	p.Pad2.Controller().UndoLastStroke()
	p.Pad2.Repaint()
}

// SetErase switches pad 2 between drawing and erasing.
func (p *Page) SetErase(on bool) {
	p.Pad2.Controller().SetEraseMode(on)
	if on {
		p.SetStatus("Eraser")
	} else {
		p.SetStatus("Pen")
	}
}

// Dispose releases both controllers.
func (p *Page) Dispose() {
	p.Pad1.Controller().Dispose()
	p.Pad2.Controller().Dispose()
}

// Toolbar lays out the page buttons.
func (p *Page) Toolbar() fyne.CanvasObject {
	erase := widget.NewCheck("Erase", p.SetErase)

	files := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), p.saveSVG2),
		widget.NewToolbarAction(theme.FileIcon(), p.savePDF2),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DownloadIcon(), p.saveJSON2),
		widget.NewToolbarAction(theme.UploadIcon(), p.loadJSON2),
	)

	return container.NewHBox(
		widget.NewButton("save-png1", p.SavePNG1),
		widget.NewButton("clear1", p.Clear1),
		widget.NewSeparator(),
		widget.NewButton("save-jpg2", p.SaveJPG2),
		widget.NewButton("clear2", p.Clear2),
		widget.NewButtonWithIcon("undo", theme.ContentUndoIcon(), p.Undo),
		erase,
		widget.NewSeparator(),
		files,
		layout.NewSpacer(),
	)
}

// Content is the page body: toolbar on top, pads side by side, status below.
func (p *Page) Content() fyne.CanvasObject {
	pads := container.NewGridWithColumns(2,
		container.NewBorder(widget.NewLabel("Signature 1"), nil, nil, nil, p.Pad1),
		container.NewBorder(widget.NewLabel("Signature 2"), nil, nil, nil, p.Pad2),
	)
	return container.NewBorder(p.Toolbar(), p.status, nil, nil, pads)
}
