package ui

import "log"

// ExportSink receives the data URL of every export a page button makes.
type ExportSink interface {
	Publish(name, dataURL string)
}

// LogSink prints exports the way the browser page writes them to the console.
type LogSink struct {
	// Max caps how much of the data URL is printed. 0 prints all of it.
	Max int
}

func (s LogSink) Publish(name, dataURL string) {
	out := dataURL
	if s.Max > 0 && len(out) > s.Max {
		out = out[:s.Max] + "..."
	}
	log.Printf("[UI] %s: %s", name, out)
}

// MultiSink fans every export out to all of its sinks.
type MultiSink []ExportSink

func (m MultiSink) Publish(name, dataURL string) {
	for _, s := range m {
		if s != nil {
			s.Publish(name, dataURL)
		}
	}
}
