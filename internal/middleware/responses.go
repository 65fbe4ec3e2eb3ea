package middleware

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError answers htmx swaps with a JSON body and a no-op swap so the
// current fragment stays on screen; full page requests get plain text. The
// request id, when known, is echoed for correlation with the logs.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(code)
		rid, _ := RequestID(r.Context())
		_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, RequestID: rid})
		return
	}
	if rid, ok := RequestID(r.Context()); ok && rid != "" {
		w.Header().Set("X-Request-Id", rid)
	}
	http.Error(w, msg, code)
}
