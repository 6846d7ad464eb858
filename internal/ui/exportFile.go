package ui

import (
	"errors"
	"fmt"
	"io"
	"log"

	"SignaturePad/internal/controller"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

var errNothingToExport = errors.New("nothing to export")

func (p *Page) saveSVG2() {
	p.saveDialog("signature.svg", ".svg", p.writeSVG2)
}

func (p *Page) savePDF2() {
	p.saveDialog("signature.pdf", ".pdf", p.Pad2.Controller().WritePDF)
}

func (p *Page) saveJSON2() {
	p.saveDialog("signature.json", ".json", p.Pad2.Controller().WriteData)
}

func (p *Page) loadJSON2() {
	if p.window == nil {
		return
	}
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		if reader == nil {
			return
		}
		p.readFrom(reader, p.Pad2.Controller().ReadData)
		p.Pad2.Repaint()
	}, p.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (p *Page) writeSVG2(w io.Writer) error {
	markup, ok := p.Pad2.Controller().ExportAsVector()
	if !ok {
		return errNothingToExport
	}
	_, err := io.WriteString(w, markup)
	return err
}

func (p *Page) saveDialog(name, ext string, write func(io.Writer) error) {
	if p.window == nil {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		if writer == nil {
			return // cancelled
		}
		if err := p.writeTo(writer, write); err != nil {
			dialog.ShowError(err, p.window)
		}
	}, p.window)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

// writeTo runs write against w and always closes it.
func (p *Page) writeTo(w io.WriteCloser, write func(io.Writer) error) error {
	defer func() {
		if err := w.Close(); err != nil {
			log.Printf("[UI] closing writer: %v", err)
		}
	}()
	if err := write(w); err != nil {
		log.Printf("[UI] save failed: %v", err)
		p.SetStatus("Error saving file")
		return fmt.Errorf("save: %w", err)
	}
	p.SetStatus("Saved")
	return nil
}

// readFrom runs read against r and always closes it.
func (p *Page) readFrom(r io.ReadCloser, read func(io.Reader) error) {
	defer func() {
		if err := r.Close(); err != nil {
			log.Printf("[UI] closing reader: %v", err)
		}
	}()
	if err := read(r); err != nil {
		log.Printf("[UI] load failed: %v", err)
		if errors.Is(err, controller.ErrNoSession) {
			p.SetStatus("Pad is closed")
		} else {
			p.SetStatus("Error parsing file - invalid format")
		}
		return
	}
	p.SetStatus("Loaded")
}
