package state

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var ErrUnknownColor = errors.New("unknown color")

// ParseColor understands the CSS colour forms a canvas fillStyle takes in
// practice: named colours, "transparent", hex with or without alpha
// (#rgb, #rgba, #rrggbb, #rrggbbaa) and rgb()/rgba() with numeric or
// percentage channels.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

func parseHex(s string) (color.NRGBA, error) {
	hex := s
	if len(hex) == 4 || len(hex) == 5 {
		long := []byte{'#'}
		for i := 1; i < len(hex); i++ {
			long = append(long, hex[i], hex[i])
		}
		hex = string(long)
	}
	alpha := uint8(255)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}
	if len(hex) != 7 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseRGBFunc(s string) (color.NRGBA, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	parts := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		pct := strings.HasSuffix(parts[i], "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(parts[i], "%"), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		if pct {
			v = v * 255 / 100
		}
		ch[i] = uint8(clamp(v, 0, 255) + 0.5)
	}
	alpha := 1.0
	if len(parts) == 4 {
		a := parts[3]
		pct := strings.HasSuffix(a, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		if pct {
			v /= 100
		}
		alpha = clamp(v, 0, 1)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(alpha*255 + 0.5)}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
