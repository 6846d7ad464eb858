package main

import (
	"fmt"
	"log"

	"SignaturePad/internal/config"
	padnet "SignaturePad/internal/net"
	"SignaturePad/internal/ui"

	"github.com/tdewolff/argp"
)

type Main struct {
	Config  string `short:"c" desc:"TOML configuration file"`
	Preview bool   `desc:"Push exports to a websocket preview page"`
	Port    int    `short:"p" default:"0" desc:"Preview port, overrides the configuration file"`
}

func main() {
	root := argp.NewCmd(&Main{}, "Signature pad with PNG, JPEG, SVG and PDF export")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Main) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Preview {
		cfg.Preview.Enabled = true
	}
	if cmd.Port != 0 {
		cfg.Preview.Port = cmd.Port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	sink := ui.MultiSink{ui.LogSink{Max: 80}}
	link := ""
	if cfg.Preview.Enabled {
		hub := padnet.NewHub()
		go func() {
			if err := hub.ListenAndServe(cfg.Preview.Port); err != nil {
				log.Printf("[HUB] %v", err)
			}
		}()
		defer hub.Close()
		sink = append(sink, hub)

		if cfg.Preview.Advertise {
			server, err := padnet.Advertise(cfg.Preview.Port)
			if err != nil {
				log.Printf("[HUB] mDNS advertise failed: %v", err)
			} else {
				defer server.Shutdown()
			}
		}

		ip, err := padnet.GetOutgoingIP()
		if err != nil {
			return fmt.Errorf("preview address: %w", err)
		}
		link = padnet.PreviewURL(ip, cfg.Preview.Port)
		log.Printf("[HUB] preview page at %s", link)
	}

	log.Println("Starting signature pad")
	return ui.RunApp(cfg, sink, link)
}
