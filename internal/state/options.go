package state

import "time"

// Options is the configuration snapshot a drawing session is built from.
// Zero values are meaningful (a Throttle of 0 disables throttling), so start
// from DefaultOptions and override what you need.
type Options struct {
	// DotSize is the radius of a single dot. 0 means (MinWidth+MaxWidth)/2.
	DotSize float64 `toml:"dot_size" json:"dotSize"`
	// MinWidth is the minimum width of a line.
	MinWidth float64 `toml:"min_width" json:"minWidth"`
	// MaxWidth is the maximum width of a line.
	MaxWidth float64 `toml:"max_width" json:"maxWidth"`
	// Throttle draws the next point at most once per interval.
	Throttle Duration `toml:"throttle" json:"throttle"`
	// MinDistance adds the next point only if the previous one is farther away.
	MinDistance float64 `toml:"min_distance" json:"minDistance"`
	// BackgroundColor is used to clear the background. Use an opaque colour
	// for JPEG exports, otherwise the signature ends up on black.
	BackgroundColor string `toml:"background_color" json:"backgroundColor"`
	// PenColor is the colour used to draw the lines.
	PenColor string `toml:"pen_color" json:"penColor"`
	// VelocityFilterWeight weights the new velocity against the previous one.
	VelocityFilterWeight float64 `toml:"velocity_filter_weight" json:"velocityFilterWeight"`
}

// DefaultOptions returns the stock session configuration.
func DefaultOptions() Options {
	return Options{
		MinWidth:             0.5,
		MaxWidth:             2.5,
		Throttle:             Duration(16 * time.Millisecond),
		MinDistance:          5,
		BackgroundColor:      "rgba(0,0,0,0)",
		PenColor:             "black",
		VelocityFilterWeight: 0.7,
	}
}

// WithDefaults fills the settings left at their zero value where zero has no
// meaning of its own: the colours, the width bounds when both are unset and
// the velocity weight. Throttle and MinDistance keep 0 as "off".
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.PenColor == "" {
		o.PenColor = d.PenColor
	}
	if o.BackgroundColor == "" {
		o.BackgroundColor = d.BackgroundColor
	}
	if o.MinWidth == 0 && o.MaxWidth == 0 {
		o.MinWidth, o.MaxWidth = d.MinWidth, d.MaxWidth
	}
	if o.VelocityFilterWeight == 0 {
		o.VelocityFilterWeight = d.VelocityFilterWeight
	}
	return o
}

// EffectiveDotSize resolves the zero DotSize to the mean stroke width.
func (o Options) EffectiveDotSize() float64 {
	if o.DotSize > 0 {
		return o.DotSize
	}
	return (o.MinWidth + o.MaxWidth) / 2
}

// Duration is a time.Duration that reads "16ms" style strings from TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Millis returns the interval in whole milliseconds.
func (d Duration) Millis() int64 {
	return time.Duration(d).Milliseconds()
}
