package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keyrelay/internal/api/middleware"
	"keyrelay/internal/handlers"
	"keyrelay/pkg/logger"
)

// NewRouter assembles the HTTP surface. Everything under /v1 requires an
// authenticated caller; /health and /metrics stay open for the platform.
func NewRouter(h *handlers.Handler, auth *middleware.Auth, rl *middleware.RateLimiter, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Metrics)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log.Zerolog()))
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Authenticated-User"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(auth.RequireIdentity)
		r.Use(rl.Middleware)

		r.Post("/devices", h.RegisterDevice)
		r.Delete("/devices/{registrationId}", h.DeregisterDevice)

		r.Post("/prekeys/{registrationId}", h.UploadPreKeys)
		r.Get("/prekeys/{registrationId}/count", h.PreKeyCount)
		r.Put("/signedprekey/{registrationId}", h.RotateSignedPreKey)

		r.Get("/bundles/{username}", h.FetchBundles)

		r.Get("/messages/{registrationId}", h.ListMessages)
		r.Post("/messages/{registrationId}", h.SubmitMessages)
		r.Delete("/messages/{registrationId}", h.DeleteMessages)
	})

	return r
}
