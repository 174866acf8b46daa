// Package termenv renders listings and market insights for terminals,
// with colour and OSC 8 hyperlinks when the terminal supports them.
package termenv

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorMode selects when colour is used.
type ColorMode string

// ColorMode constants.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Colours used for output.
const (
	LinkColor  = "#87CEEB"
	PriceColor = "#4F46E5"
)

// ParseColorMode converts a flag value to a ColorMode, defaulting to auto.
func ParseColorMode(value string) ColorMode {
	switch ColorMode(strings.ToLower(strings.TrimSpace(value))) {
	case ColorAlways:
		return ColorAlways
	case ColorNever:
		return ColorNever
	default:
		return ColorAuto
	}
}

// Printer writes styled output to a terminal.
type Printer struct {
	w          io.Writer
	out        *termenv.Output
	color      bool
	hyperlinks bool
}

// NewPrinter creates a Printer for w. Colour honours NO_COLOR and mode;
// ColorAlways styles output even when w is not a terminal.
// Hyperlinks are only emitted when colour is enabled.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	out := termenv.NewOutput(w)
	color := colorEnabled(out, mode)
	if color && out.ColorProfile() == termenv.Ascii {
		// Forced colour on a pipe or file.
		out = termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI256))
	}
	return &Printer{
		w:          w,
		out:        out,
		color:      color,
		hyperlinks: color,
	}
}

func colorEnabled(out *termenv.Output, mode ColorMode) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return out.ColorProfile() != termenv.Ascii
	}
}

// ColorEnabled reports whether the printer styles its output.
func (p *Printer) ColorEnabled() bool {
	return p.color
}

func (p *Printer) style(text, color string) string {
	if !p.color {
		return text
	}
	return p.out.String(text).Foreground(p.out.Color(color)).String()
}

func (p *Printer) bold(text string) string {
	if !p.color {
		return text
	}
	return p.out.String(text).Bold().String()
}

func (p *Printer) link(url, text string) string {
	text = p.style(text, LinkColor)
	if !p.hyperlinks {
		return text
	}
	return p.out.Hyperlink(url, text)
}
