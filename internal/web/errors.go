package web

// errors.go provides unified error response handling for the web layer.
// The technical error is logged server-side with the request ID; the
// client only sees the mapped UserMessage. Form posts render their page
// with an inline message instead of coming through here; this path
// serves the JSON API and storage failures.

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookrate/internal/core"
	"bookrate/internal/logging"
)

// errorResponse is the JSON structure for API error responses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError maps err to a user-facing message, logs the technical
// error, and writes the response in the format the client wants.
func (srv *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	srv.respondUserMessage(w, r, core.MapError(err), err, statusCode)
}

// respondUserMessage writes an already-mapped message. Used directly
// for failed sign-ins, which carry no Go error.
func (srv *Server) respondUserMessage(w http.ResponseWriter, r *http.Request, msg core.UserMessage, err error, statusCode int) {
	logArgs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"code", msg.Code,
	}
	if err != nil {
		logArgs = append(logArgs, "error", err.Error())
	}
	logging.FromContext(r.Context()).Error("request error", logArgs...)

	if wantsJSON(r) {
		respondErrorJSON(w, msg, statusCode)
		return
	}
	http.Error(w, msg.Message+" ("+msg.Code+")", statusCode)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondJSON writes a success payload.
func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// statusForError picks the HTTP status for a core error: duplicate
// conflicts map to 409, other validation declines to 400, storage
// failures to 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrDuplicateUser), errors.Is(err, core.ErrDuplicateRating):
		return http.StatusConflict
	case errors.Is(err, core.ErrWeakPassword), errors.Is(err, core.ErrRatingRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
