package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/UkralStul/post-scheduler/internal/dataloader"
	"github.com/UkralStul/post-scheduler/internal/storage"
)

const requestTimeout = 30 * time.Second

// NewRouter wires the handlers, the per-request loaders and the metrics endpoint.
func NewRouter(h *Handler, store storage.Storage) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(requestTimeout))

	router.Get("/healthz", health)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/post-groups", func(r chi.Router) {
		r.Use(dataloader.Middleware(store))

		r.Get("/", h.listPostGroups)
		r.Post("/", h.createPostGroup)
		r.Get("/pending-review", h.listPendingReview)
		r.Get("/stats", h.stats)
		r.Get("/{id}", h.getPostGroup)
		r.Post("/{id}/approve", h.approvePostGroup)
	})
	return router
}
