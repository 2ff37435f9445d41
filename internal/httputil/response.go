package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes data as JSON, or a 500 problem when it cannot be encoded.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// Problem is the RFC 7807 body of every API error. Code carries the stable
// ERR_* value clients switch on; Detail is for humans.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code,omitempty"`
}

// RespondError writes a problem response without an error code
// (transport failures: bad bearer token, unreadable body, panics).
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondProblem(w, status, detail, "")
}

// RespondProblem writes a problem response carrying a domain error code.
func RespondProblem(w http.ResponseWriter, status int, detail, code string) {
	// Marshaling a struct of strings and an int cannot fail
	payload, _ := json.Marshal(Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Code:   code,
	})

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	w.Write(payload)
}
