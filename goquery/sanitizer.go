// Package goquery provides HTML cleanup of model output using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sangga"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Sanitizer implements sangga.TextSanitizer at compile time.
var _ sangga.TextSanitizer = (*Sanitizer)(nil)

// Sanitizer strips markup that the model occasionally embeds in listing
// fields and collapses whitespace.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// SanitizeText returns the visible text of s. Script and style contents
// are dropped, line breaks and block boundaries become spaces and runs of
// whitespace collapse to one space.
func (s *Sanitizer) SanitizeText(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return collapseSpace(text)
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(text), body)
	if err != nil {
		return collapseSpace(text)
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p, div, li, tr, td, th, h1, h2, h3, h4, h5, h6").AppendHtml(" ")

	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
