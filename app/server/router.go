package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/app/catalog"
	"github.com/mytheresa/product-catalog/app/categories"
	"github.com/mytheresa/product-catalog/app/logger"
	"github.com/mytheresa/product-catalog/app/metrics"
	"github.com/mytheresa/product-catalog/models"
)

const requestTimeout = 30 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger func(ctx context.Context) error

// NewRouter wires the catalog endpoints, health check and metrics.
func NewRouter(manager *models.CatalogManager, ping Pinger, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(api.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(requestTimeout))

	catalog.NewCatalogHandler(manager, log).RegisterRoutes(r)
	categories.NewCategoryHandler(manager, log).RegisterRoutes(r)

	r.Get("/healthz", healthHandler(ping, log))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

func healthHandler(ping Pinger, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			log.Warn("health check failed", "error", err)
			api.ErrorResponse(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		api.OKResponse(w, map[string]string{"status": "ok"})
	}
}
