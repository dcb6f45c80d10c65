package server

import (
	"encoding/json"
	"net/http"
)

// Problem types for RFC 7807 Problem Details responses.
const (
	ProblemTypeNotFound    = "https://newsroom.dev/problems/not-found"
	ProblemTypeBadRequest  = "https://newsroom.dev/problems/bad-request"
	ProblemTypeInternal    = "https://newsroom.dev/problems/internal-error"
	ProblemTypeRateLimited = "https://newsroom.dev/problems/rate-limited"
	ProblemTypeTimeout     = "https://newsroom.dev/problems/timeout"
)

// Problem represents an RFC 7807 Problem Details response. Message is the
// field clients rely on; the remaining members follow the RFC.
type Problem struct {
	Message  string `json:"message"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Instance string `json:"instance,omitempty"`
}

// WriteProblem writes an RFC 7807 Problem Details JSON response.
func WriteProblem(w http.ResponseWriter, p Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// problemFor builds the Problem for an HTTP status.
func problemFor(status int, message, instance string) Problem {
	p := Problem{
		Message:  message,
		Title:    http.StatusText(status),
		Status:   status,
		Instance: instance,
	}
	switch status {
	case http.StatusBadRequest:
		p.Type = ProblemTypeBadRequest
	case http.StatusNotFound:
		p.Type = ProblemTypeNotFound
	case http.StatusTooManyRequests:
		p.Type = ProblemTypeRateLimited
	case http.StatusServiceUnavailable:
		p.Type = ProblemTypeTimeout
	default:
		p.Type = ProblemTypeInternal
	}
	return p
}

// NotFound writes a 404 problem response.
func NotFound(w http.ResponseWriter, message, instance string) {
	WriteProblem(w, problemFor(http.StatusNotFound, message, instance))
}

// BadRequest writes a 400 problem response.
func BadRequest(w http.ResponseWriter, message, instance string) {
	WriteProblem(w, problemFor(http.StatusBadRequest, message, instance))
}

// InternalError writes a 500 problem response.
func InternalError(w http.ResponseWriter, message, instance string) {
	WriteProblem(w, problemFor(http.StatusInternalServerError, message, instance))
}

// RateLimited writes a 429 problem response.
func RateLimited(w http.ResponseWriter, message, instance string) {
	WriteProblem(w, problemFor(http.StatusTooManyRequests, message, instance))
}
