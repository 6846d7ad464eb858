package pad

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
	MimeSVG  = "image/svg+xml"
)

// jpegQuality matches the default quality browsers use for toDataURL.
const jpegQuality = 92

// ToDataURL serialises the canvas as a base64 data URL. PNG, JPEG and SVG
// are supported; any other type falls back to PNG. A canvas without pixels
// yields "data:,".
func (p *Pad) ToDataURL(mime string) (string, error) {
	if mime == MimeSVG {
		return DataURL(MimeSVG, []byte(p.ToSVG())), nil
	}

	w, h := p.canvas.Size()
	if w == 0 || h == 0 {
		return "data:,", nil
	}

	var buf bytes.Buffer
	ctx := p.canvas.Context()
	switch mime {
	case MimeJPEG:
		if err := ctx.EncodeJPEG(&buf, jpegQuality); err != nil {
			return "", fmt.Errorf("pad: encode jpeg: %w", err)
		}
	default:
		mime = MimePNG
		if err := ctx.EncodePNG(&buf); err != nil {
			return "", fmt.Errorf("pad: encode png: %w", err)
		}
	}
	return DataURL(mime, buf.Bytes()), nil
}

// DataURL encodes payload as a base64 data URL of the given media type.
func DataURL(mime string, payload []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(payload)
}
