package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/peerwallet/internal/common"
	"github.com/dmitrijs2005/peerwallet/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// NewRouter mounts the action endpoint at "/" and "/auth" behind CORS,
// request ids, panic recovery, request logging and the per-IP limiter.
func NewRouter(h *Handler, limiter *IPRateLimiter, allowedOrigins []string, log logging.Logger) http.Handler {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", common.AuthTokenHeaderName},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/", h.ServeAction)
		r.Post("/auth", h.ServeAction)
	})

	return r
}
