package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"sessiondesk/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ClientHandler handles the /api/clients endpoints
type ClientHandler struct {
	service ClientProvider
	logger  *zap.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(service ClientProvider, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{service: service, logger: logger}
}

// List returns the reconciled client list
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Clients(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// Export returns the reconciled client list as a spreadsheet
func (h *ClientHandler) Export(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.Clients(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data, err := export.Clients(response.Clients)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=clients.xlsx")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write export", zap.Error(err))
	}
}

func (h *ClientHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := mapError(err)
	h.logger.Error("client request failed",
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)
	writeError(w, status, code, message)
}
