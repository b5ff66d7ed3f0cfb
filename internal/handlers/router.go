package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"sessiondesk/internal/models"
)

// SessionProvider serves derived booking statuses
type SessionProvider interface {
	Bookings(ctx context.Context, now time.Time) (*models.BookingsResponse, error)
	LiveCount(ctx context.Context, now time.Time) (int, error)
	Summary(ctx context.Context, now time.Time) (*models.StatusSummary, error)
	Preview(req models.PreviewRequest, now time.Time) models.PreviewResponse
}

// ClientProvider serves reconciled clients
type ClientProvider interface {
	Clients(ctx context.Context) (*models.ClientsResponse, error)
}

// HealthCheck is a named dependency probed by /health
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// Options wires the router to its services
type Options struct {
	Sessions   SessionProvider
	Clients    ClientProvider
	Checks     []HealthCheck
	CORSOrigin string
	Logger     *zap.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

// NewRouter builds the HTTP handler for the dashboard API
func NewRouter(opts Options) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}

	sessions := NewSessionHandler(opts.Sessions, opts.Now, opts.Logger)
	clients := NewClientHandler(opts.Clients, opts.Logger)
	health := NewHealthHandler(opts.Checks)

	router := mux.NewRouter()
	router.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Routes sit on the root router so a method mismatch reaches MethodNotAllowedHandler.
	router.HandleFunc("/api/bookings", sessions.Bookings).Methods(http.MethodGet)
	router.HandleFunc("/api/bookings/summary", sessions.Summary).Methods(http.MethodGet)
	router.HandleFunc("/api/sessions/live-count", sessions.LiveCount).Methods(http.MethodGet)
	router.HandleFunc("/api/sessions/preview", sessions.Preview).Methods(http.MethodPost)
	router.HandleFunc("/api/clients", clients.List).Methods(http.MethodGet)
	router.HandleFunc("/api/clients/export", clients.Export).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	return withMiddleware(router, opts.CORSOrigin, opts.Logger)
}
