package ui

import (
	"SignaturePad/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// RunApp opens the signature page and blocks until the window closes.
func RunApp(cfg config.Config, sink ExportSink, previewLink string) error {
	myApp := app.New()
	myWindow := myApp.NewWindow("Signature Pad")
	myWindow.Resize(fyne.NewSize(800, 360))

	page, err := NewPage(cfg, sink)
	if err != nil {
		return err
	}
	page.window = myWindow
	if previewLink != "" {
		page.SetStatus("Preview at " + previewLink)
	}

	myWindow.SetContent(page.Content())
	myWindow.SetOnClosed(page.Dispose)
	myWindow.ShowAndRun()
	return nil
}
