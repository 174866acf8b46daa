package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/sangga"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"today": func() string { return time.Now().Format("2006. 1. 2.") },
	"tel":   telURL,
}).ParseFS(templateFS, "templates/*.html"))

// telURL returns a tel: link for a phone number, keeping only characters
// valid in one.
func telURL(number string) template.URL {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' {
			return r
		}
		return -1
	}, number)
	return template.URL("tel:" + clean)
}

// option is a selectable value in the sidebar.
type option struct {
	Value    string
	Selected bool
}

// page is the data every template renders from.
type page struct {
	sangga.SessionState

	Location   string
	Regions    []option
	Districts  []option
	Categories []option
	DealTypes  []option
	FreeInput  bool

	DepositMax  int
	DepositStep int
	RentMax     int
	RentStep    int
}

func newPage(state sangga.SessionState) *page {
	p := &page{
		SessionState: state,
		Location:     state.Params.Location(),
		FreeInput:    sangga.IsFreeInput(state.Params.Region),
		DepositMax:   sangga.DepositSliderMax,
		DepositStep:  sangga.DepositSliderStep,
		RentMax:      sangga.RentSliderMax,
		RentStep:     sangga.RentSliderStep,
	}
	for _, r := range sangga.Regions() {
		p.Regions = append(p.Regions, option{Value: r, Selected: r == state.Params.Region})
	}
	for _, d := range sangga.Districts(state.Params.Region) {
		selected := d == state.Params.SubRegion || (state.Params.SubRegion == "" && d == sangga.AllDistricts)
		p.Districts = append(p.Districts, option{Value: d, Selected: selected})
	}
	for _, c := range sangga.Categories {
		p.Categories = append(p.Categories, option{Value: c, Selected: state.Params.HasCategory(c)})
	}
	for _, d := range sangga.DealTypes {
		p.DealTypes = append(p.DealTypes, option{Value: string(d), Selected: state.Params.HasDealType(d)})
	}
	return p
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, state sangga.SessionState) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout", newPage(state)); err != nil {
		s.Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	buf.WriteTo(w)
}

// handleIndex renders the current view of the session.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, sessionFromContext(r.Context()).State())
}

// handlePropertyDetail switches the session to the detail view.
func (s *Server) handlePropertyDetail(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if _, err := session.SelectProperty(chi.URLParam(r, "id")); err != nil {
		s.Error(w, r, err)
		return
	}
	s.render(w, r, session.State())
}

// handleBack returns the session to the list view.
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sessionFromContext(r.Context()).Back()
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
