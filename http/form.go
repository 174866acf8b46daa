package http

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NormalizeNumber prepares a number typed into a form for parsing: it
// folds full-width digits to ASCII and drops thousands separators and
// surrounding space.
func NormalizeNumber(s string) string {
	s = width.Fold.String(s)
	s = strings.NewReplacer(",", "", " ", "", "_", "").Replace(s)
	return strings.TrimSpace(s)
}

// NormalizeText returns s in NFC with surrounding space removed, so
// decomposed Hangul typed on some platforms compares equal to the
// region table.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
