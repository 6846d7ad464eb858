package config

import (
	"errors"
	"fmt"
	"log"

	"SignaturePad/internal/state"

	"github.com/BurntSushi/toml"
)

// DefaultPort is where the preview hub listens unless configured otherwise.
const DefaultPort = 8888

var ErrBadPort = errors.New("config: preview port out of range")

// Preview configures the websocket export preview.
type Preview struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

// Config is everything the app reads from its TOML file.
type Config struct {
	Pad1    state.Options `toml:"pad1"`
	Pad2    state.Options `toml:"pad2"`
	Preview Preview       `toml:"preview"`
}

// Default mirrors the stock page: pad 2 gets a white background so its JPEG
// export is not black.
func Default() Config {
	pad2 := state.DefaultOptions()
	pad2.BackgroundColor = "rgb(255,255,255)"
	return Config{
		Pad1: state.DefaultOptions(),
		Pad2: pad2,
		Preview: Preview{
			Port:      DefaultPort,
			Advertise: true,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("[CONFIG] unknown key %s in %s", key, path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode is Load for an in-memory document.
func Decode(doc string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(doc, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Preview.Port <= 0 || c.Preview.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrBadPort, c.Preview.Port)
	}
	return nil
}
