package pad

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"SignaturePad/internal/state"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc(MimeSVG, svg.Minify)
	return m
}()

// ToSVG renders the recorded strokes as SVG markup sized to the canvas'
// displayed size. Erase strokes become nested masks so they only cut what
// was drawn before them, as destination-out does on the bitmap.
func (p *Pad) ToSVG() string {
	w, h := p.canvas.DisplaySize()
	w, h = math.Max(w, 0), math.Max(h, 0)

	var content strings.Builder
	if p.background.A > 0 {
		fmt.Fprintf(&content, `<rect width="100%%" height="100%%" fill="%s"/>`, attr(p.opts.BackgroundColor))
	}

	masks := 0
	var defs strings.Builder
	for _, g := range p.data {
		if g.CompositeOp != state.CompositeDestinationOut {
			writeGroup(&content, g, g.PenColor)
			continue
		}
		masks++
		id := "erase" + strconv.Itoa(masks)
		fmt.Fprintf(&defs, `<mask id="%s" maskUnits="userSpaceOnUse" x="0" y="0" width="%s" height="%s">`, id, num(w), num(h))
		defs.WriteString(`<rect width="100%" height="100%" fill="white"/>`)
		writeGroup(&defs, g, "black")
		defs.WriteString(`</mask>`)

		inner := content.String()
		content.Reset()
		fmt.Fprintf(&content, `<g mask="url(#%s)">%s</g>`, id, inner)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`,
		num(w), num(h), num(w), num(h))
	if defs.Len() > 0 {
		b.WriteString("<defs>")
		b.WriteString(defs.String())
		b.WriteString("</defs>")
	}
	b.WriteString(content.String())
	b.WriteString("</svg>")

	out, err := minifier.String(MimeSVG, b.String())
	if err != nil {
		log.Printf("[PAD] minify svg: %v", err)
		return b.String()
	}
	return out
}

func writeGroup(b *strings.Builder, g state.PointGroup, stroke string) {
	if IsDot(g) {
		pt := g.Points[0]
		fmt.Fprintf(b, `<circle r="%s" cx="%s" cy="%s" fill="%s"/>`, num(g.DotSize), num(pt.X), num(pt.Y), attr(stroke))
		return
	}
	for _, s := range Segments(g) {
		fmt.Fprintf(b, `<path d="M %s,%s L %s,%s" stroke-width="%s" stroke="%s" fill="none" stroke-linecap="round"/>`,
			num(s.X1), num(s.Y1), num(s.X2), num(s.Y2), num(s.Width), attr(stroke))
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;")

func attr(s string) string {
	return attrEscaper.Replace(s)
}
