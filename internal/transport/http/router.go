// Package httptransport assembles the public router: middleware chain,
// authorisation routes and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scaflow/internal/platform/middleware"
	"scaflow/internal/transport/http/shared"
)

// Registrar is implemented by every handler group that mounts routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports readiness of one dependency.
type HealthChecker func() error

// NewRouter builds the full HTTP surface. Health checkers are keyed by
// dependency name; a failing one turns /healthz into a 503.
func NewRouter(logger *slog.Logger, health map[string]HealthChecker, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))

	r.Get("/healthz", handleHealth(health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func handleHealth(health map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		deps := make(map[string]string, len(health))
		for name, check := range health {
			if err := check(); err != nil {
				status = http.StatusServiceUnavailable
				deps[name] = err.Error()
				continue
			}
			deps[name] = "ok"
		}
		shared.WriteJSON(w, status, map[string]any{
			"status":       http.StatusText(status),
			"dependencies": deps,
		})
	}
}
