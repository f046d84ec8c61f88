package http

import (
	"net/http"
	"strings"

	"github.com/guardline/guardline-core/internal/application"
)

const headerInstallationID = "X-Installation-Id"

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

// authFromRequest assembles the caller identity: the installation header
// plus the bearer session token. Both are required on protected routes; the
// pair is what the session store keys on.
func authFromRequest(r *http.Request) (application.Auth, bool) {
	installationID := strings.TrimSpace(r.Header.Get(headerInstallationID))
	token, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
	if installationID == "" || err != nil {
		return application.Auth{}, false
	}
	return application.Auth{InstallationID: installationID, Token: token}, true
}

// agencyKeyMiddleware guards the agency-facing status route with a static
// API key exchanged out of band.
func (h *Handler) agencyKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get("X-Agency-Api-Key"))
		if h.agencyAPIKey == "" || key != h.agencyAPIKey {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid agency api key")
			return
		}
		next.ServeHTTP(w, r)
	})
}
