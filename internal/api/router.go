// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"daily-broadcast/internal/api/handler"
	"daily-broadcast/internal/metrics"
)

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// NewRouter sets up and returns a new HTTP router. A nil m disables /metrics.
func NewRouter(
	broadcastHandler *handler.BroadcastHandler,
	walletHandler *handler.WalletHandler,
	m *metrics.Metrics,
	timeout time.Duration,
	logger *slog.Logger,
) http.Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)        // Add a request ID to the context
	r.Use(middleware.RealIP)           // Use the real IP address
	r.Use(middleware.Logger)           // Log HTTP requests
	r.Use(middleware.Recoverer)        // Recover from panics and return 500
	r.Use(middleware.Timeout(timeout)) // Bound every request
	r.Use(m.Middleware)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/broadcast", func(r chi.Router) {
			r.Get("/today", broadcastHandler.GetToday)
			r.Get("/today/revenue", broadcastHandler.GetTodayRevenue)
			r.Get("/{date}", broadcastHandler.GetByDate)
			r.Get("/{broadcastID}/views", walletHandler.GetBroadcastViews)
			r.Post("/", broadcastHandler.SetToday)
		})

		r.Post("/wallet/connect", walletHandler.Connect)
		r.Get("/wallet/{address}", walletHandler.GetWallet)

		r.Post("/ad/view", walletHandler.RecordView)
		r.Post("/ad/claim", walletHandler.ClaimView)

		r.Get("/user/{walletAddress}/views", walletHandler.GetUserViews)
	})

	logger.Info("HTTP routes registered", "metrics", m != nil)
	return r
}
