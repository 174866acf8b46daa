package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fwojciec/sangga"
)

var codes = map[string]int{
	sangga.ECONFLICT:    http.StatusConflict,
	sangga.EINVALID:     http.StatusBadRequest,
	sangga.ENOTFOUND:    http.StatusNotFound,
	sangga.EUNAVAILABLE: http.StatusServiceUnavailable,
	sangga.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body of a failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes err to the client. API routes get JSON, pages get plain
// text. Internal errors are logged and their message hidden.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := sangga.ErrorCode(err), sangga.ErrorMessage(err)
	if code == sangga.EINTERNAL {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	status := ErrorStatusCode(code)
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, status, &ErrorResponse{Error: message})
		return
	}
	http.Error(w, message, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
