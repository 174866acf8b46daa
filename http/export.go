package http

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fwojciec/sangga"
)

// handleExport downloads the current listings as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	props, ok := session.ExportProperties()
	if !ok {
		s.Error(w, r, sangga.Errorf(sangga.ENOTFOUND, "nothing to export"))
		return
	}

	var buf bytes.Buffer
	if err := s.Exporter.ExportProperties(&buf, props); err != nil {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", contentDisposition(session.ExportFilename()))
	buf.WriteTo(w)
}

// contentDisposition names an attachment, using RFC 5987 encoding so
// Hangul file names survive.
func contentDisposition(filename string) string {
	return fmt.Sprintf(`attachment; filename="export.csv"; filename*=UTF-8''%s`, url.PathEscape(filename))
}
