package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"sessiondesk/internal/models"
)

// SessionHandler handles the booking and session endpoints
type SessionHandler struct {
	service SessionProvider
	now     func() time.Time
	logger  *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service SessionProvider, now func() time.Time, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{service: service, now: now, logger: logger}
}

// Bookings lists every booking with its derived status
func (h *SessionHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	now, err := h.instant(r.URL.Query().Get("at"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response, err := h.service.Bookings(r.Context(), now)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// Summary returns booking counts per status
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	now, err := h.instant(r.URL.Query().Get("at"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response, err := h.service.Summary(r.Context(), now)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// LiveCount returns the number of sessions in progress
func (h *SessionHandler) LiveCount(w http.ResponseWriter, r *http.Request) {
	now, err := h.instant(r.URL.Query().Get("at"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	count, err := h.service.LiveCount(r.Context(), now)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"liveCount": count,
		"at":        now.UTC().Format(time.RFC3339),
	})
}

// Preview derives the status of a booking supplied in the request body
func (h *SessionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.PreviewRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	at := ""
	if req.Now != nil {
		at = *req.Now
	}
	now, err := h.instant(at)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Preview(req, now))
}

// instant parses an optional RFC 3339 override of the current time.
func (h *SessionHandler) instant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return h.now(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, badRequest("INVALID_TIME", "Time must be RFC 3339")
	}
	return t, nil
}

func (h *SessionHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := mapError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("session request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
	}
	writeError(w, status, code, message)
}
