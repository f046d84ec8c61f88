// Package http is the inbound HTTP adapter for the Guardline security core.
// It translates JSON requests into application calls and domain errors into
// stable error codes; no security policy lives here beyond transport
// concerns (request throttling and the agency API key).
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guardline/guardline-core/internal/application"
	"github.com/guardline/guardline-core/internal/obs"
)

// Handler is the HTTP adapter entrypoint. Keeping only the application
// dependency here preserves clean adapter boundaries.
type Handler struct {
	service      *application.Service
	agencyAPIKey string
}

func NewHandler(service *application.Service, agencyAPIKey string) *Handler {
	return &Handler{service: service, agencyAPIKey: agencyAPIKey}
}

// NewRouter registers the security-core routes and middleware stack.
// Centralizing routes here keeps auth and error behavior consistent across
// endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	loginThrottle := newIPThrottle(5, 20)

	r.Route("/security/v1", func(r chi.Router) {
		r.Post("/register", handler.register)
		r.With(loginThrottle.middleware).Post("/login", handler.login)
		r.Post("/logout", handler.logout)
		r.Get("/session", handler.sessionStatus)
		r.Get("/login-status", handler.loginStatus)
		r.Get("/login-history", handler.loginHistory)

		r.Post("/2fa/setup", handler.twoFASetup)
		r.Post("/2fa/disable", handler.twoFADisable)

		r.Post("/reports", handler.submitReport)
		r.Get("/reports", handler.listReports)
		r.With(handler.agencyKeyMiddleware).Patch("/reports/{report_id}/status", handler.updateReportStatus)
	})

	return r
}
