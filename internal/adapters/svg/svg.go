// Package svg encodes composed render frames as standalone SVG documents.
// It is the static export surface: the websocket stream ships instruction
// frames, this adapter flattens the same instructions to markup.
package svg

import (
	"fmt"
	"strings"

	"github.com/michael-fp/fp-chopped/internal/render"
)

const (
	defaultBackground = "#ffffff"
	defaultFontFamily = "Arial, sans-serif"
)

// Encoder renders instruction frames into SVG markup.
type Encoder struct {
	background string
	fontFamily string
}

// NewEncoder creates an Encoder with configuration options.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{
		background: defaultBackground,
		fontFamily: defaultFontFamily,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode flattens a frame into a complete SVG document. Instructions are
// emitted in order, so later primitives paint over earlier ones exactly as
// the composer arranged them.
func (e *Encoder) Encode(f render.Frame) string {
	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
`, num(f.Width), num(f.Height), num(f.Width), num(f.Height)))
	svg.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", e.background))

	for _, in := range f.Instructions {
		switch in.Kind {
		case render.KindPath:
			svg.WriteString(fmt.Sprintf(`<path d="%s" stroke="%s" stroke-width="%s" fill="none" opacity="%s" stroke-linecap="round"/>`+"\n",
				in.D, in.Stroke, num(in.StrokeWidth), opacity(in.Opacity)))
		case render.KindCircle:
			svg.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s" opacity="%s"/>`+"\n",
				num(in.X), num(in.Y), num(in.R), in.Fill, opacity(in.Opacity)))
		case render.KindImage:
			// Clip avatars to the endpoint circle they sit on.
			clipID := fmt.Sprintf("clip-%s", sanitizeID(in.TeamID))
			svg.WriteString(fmt.Sprintf(`<clipPath id="%s"><circle cx="%s" cy="%s" r="%s"/></clipPath>`+"\n",
				clipID, num(in.X+in.W/2), num(in.Y+in.H/2), num(in.W/2)))
			svg.WriteString(fmt.Sprintf(`<image x="%s" y="%s" width="%s" height="%s" xlink:href="%s" clip-path="url(#%s)" opacity="%s"/>`+"\n",
				num(in.X), num(in.Y), num(in.W), num(in.H), escape(in.Href), clipID, opacity(in.Opacity)))
		case render.KindText:
			svg.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%s" fill="%s" opacity="%s">%s</text>`+"\n",
				num(in.X), num(in.Y), e.fontFamily, num(in.FontSize), in.Fill, opacity(in.Opacity), escape(in.Text)))
		}
	}

	svg.WriteString("</svg>")
	return svg.String()
}

// num formats coordinates without trailing float noise.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// opacity defaults omitted (zero) opacity to fully opaque, matching the
// JSON wire encoding where 0 means "not set".
func opacity(v float64) string {
	if v == 0 {
		return "1"
	}
	return num(v)
}

func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// sanitizeID keeps clip-path ids valid for arbitrary team identifiers.
func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
