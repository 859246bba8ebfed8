package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quran-api-nosql/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps login responses.
type AuthEnvelope struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// BookmarkEnvelope wraps the add-bookmark response.
type BookmarkEnvelope struct {
	Message  string           `json:"message"`
	Bookmark *domain.Bookmark `json:"bookmark"`
}

type AudioURLsEnvelope struct {
	URLs []string `json:"urls"`
}

type VerseAudioEnvelope struct {
	URLs []domain.VerseAudio `json:"urls"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeServiceError maps a service error onto its status code. Upstream
// failures and anything not wrapping a domain sentinel get a fixed message;
// the detail only goes to the log.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, "internal server error")
		return
	}
	if errors.Is(err, domain.ErrUpstream) {
		slog.WarnContext(r.Context(), "upstream request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, upstreamErrorMessage)
		return
	}
	slog.DebugContext(r.Context(), "request rejected",
		"path", r.URL.Path, "status", status, "error", err)
	writeError(w, status, err.Error())
}

const upstreamErrorMessage = "failed to fetch audio from the Quran API"

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrUpstream):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

var errInvalidBody = errors.New("invalid request body")
