package mock

import "github.com/fwojciec/sangga"

var _ sangga.TextSanitizer = (*TextSanitizer)(nil)

// TextSanitizer is a mock implementation of sangga.TextSanitizer.
type TextSanitizer struct {
	SanitizeTextFn func(s string) string
}

func (t *TextSanitizer) SanitizeText(s string) string {
	return t.SanitizeTextFn(s)
}
