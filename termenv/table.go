package termenv

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/sangga"
	"github.com/rivo/uniseg"
)

// NewMarker flags listings not seen in earlier searches.
const NewMarker = "NEW"

// WriteTable writes listings as a table aligned by display width, so
// double-width Hangul and colour sequences keep the columns straight.
func (p *Printer) WriteTable(props []*sangga.Property) error {
	if len(props) == 0 {
		_, err := fmt.Fprintln(p.w, sangga.MsgNoResults)
		return err
	}

	header := []string{"", "출처", "매물명", "유형", "가격", "면적", "링크"}
	rows := [][]string{header}
	for _, prop := range props {
		marker := ""
		if !prop.Seen {
			marker = NewMarker
		}
		rows = append(rows, []string{
			marker,
			cell(prop.Source),
			cell(prop.Name),
			cell(prop.Type),
			cell(prop.Price),
			cell(prop.Area),
			linkLabel(prop.Link),
		})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], uniseg.StringWidth(c))
		}
	}

	for r, row := range rows {
		var b strings.Builder
		for i, c := range row {
			text := c
			if r > 0 {
				switch i {
				case priceColumn:
					text = p.style(c, PriceColor)
				case linkColumn:
					text = p.linkCell(props[r-1].Link)
				}
			}
			b.WriteString(text)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-uniseg.StringWidth(c)+columnGap))
			}
		}
		if _, err := fmt.Fprintln(p.w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

const (
	columnGap   = 2
	priceColumn = 4
	linkColumn  = 6
)

// WriteSources writes the web pages a search was grounded on.
func (p *Printer) WriteSources(sources []sangga.Source) error {
	if len(sources) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(p.w, p.bold("검색 출처")); err != nil {
		return err
	}
	for _, s := range sources {
		title := cell(s.Title)
		if title == "-" {
			title = s.URI
		}
		if _, err := fmt.Fprintf(p.w, "  - %s\n", p.link(s.URI, title)); err != nil {
			return err
		}
	}
	return nil
}

// WriteInsight writes a market overview for location.
func (p *Printer) WriteInsight(location string, insight *sangga.MarketInsight) error {
	if insight == nil {
		return nil
	}
	lines := []string{
		p.bold(fmt.Sprintf("%s 시장 분석 (%s)", location, insight.Trend.Label())),
		"  " + insight.Summary,
	}
	for _, pro := range insight.Pros {
		lines = append(lines, "  + "+pro)
	}
	for _, con := range insight.Cons {
		lines = append(lines, "  - "+con)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) linkCell(raw string) string {
	label := linkLabel(raw)
	if label == "-" {
		return label
	}
	return p.link(strings.TrimSpace(raw), label)
}

func linkLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "-"
	}
	return ShortURL(raw)
}

func cell(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return "-"
	}
	return value
}

// ShortURL returns a compact label for a listing link: host and path,
// truncated to 50 runes.
func ShortURL(raw string) string {
	const maxLen = 50
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(label); err == nil && parsed.Host != "" {
		label = strings.TrimPrefix(parsed.Host, "www.") + parsed.Path
	}
	if r := []rune(label); len(r) > maxLen {
		label = string(r[:maxLen-3]) + "..."
	}
	return label
}
