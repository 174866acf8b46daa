// Package csv exports listings as spreadsheet-friendly CSV.
package csv

import (
	"bufio"
	"io"
	"strings"

	"github.com/fwojciec/sangga"
)

// BOM makes spreadsheet applications detect UTF-8.
const BOM = "\ufeff"

// ContentType is the media type of exported files.
const ContentType = "text/csv; charset=utf-8"

var _ sangga.PropertyExporter = (*Exporter)(nil)

// Exporter implements sangga.PropertyExporter.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Header returns the column names of an export.
func Header() []string {
	return []string{"출처", "매물명", "유형", "가격", "면적", "링크"}
}

// ExportProperties writes props as CSV. Nothing is written when props is
// empty. Every field is quoted and rows end in a bare newline.
func (e *Exporter) ExportProperties(w io.Writer, props []*sangga.Property) error {
	if len(props) == 0 {
		return nil
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(BOM)
	writeHeader(bw)
	for _, p := range props {
		bw.WriteByte('\n')
		writeRow(bw, []string{p.Source, p.Name, p.Type, p.Price, p.Area, p.Link})
	}
	return bw.Flush()
}

func writeHeader(w *bufio.Writer) {
	w.WriteString(strings.Join(Header(), ","))
}

func writeRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
}
