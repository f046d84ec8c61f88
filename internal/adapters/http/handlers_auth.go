package http

import (
	"net/http"
	"strings"

	"github.com/guardline/guardline-core/internal/application"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "register", err)
		return
	}

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "register", err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"user_id": res.UserID,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "login", err)
		return
	}

	if req.InstallationID == "" {
		req.InstallationID = strings.TrimSpace(r.Header.Get(headerInstallationID))
	}
	if req.IPAddress == "" {
		req.IPAddress = readIP(r)
	}
	if req.UserAgent == "" {
		req.UserAgent = r.UserAgent()
	}

	res, err := h.service.AttemptLogin(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	installationID := strings.TrimSpace(r.Header.Get(headerInstallationID))
	if installationID == "" {
		writeMissingAuthError(r.Context(), w, "logout")
		return
	}
	if err := h.service.Logout(r.Context(), installationID); err != nil {
		writeMappedError(r.Context(), w, "logout", err)
		return
	}
	writeMessage(w, http.StatusOK, "Logged out")
}

func (h *Handler) sessionStatus(w http.ResponseWriter, r *http.Request) {
	installationID := strings.TrimSpace(r.Header.Get(headerInstallationID))
	if installationID == "" {
		writeMissingAuthError(r.Context(), w, "session_status")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"valid": h.service.CurrentSessionValid(r.Context(), installationID),
	})
}

func (h *Handler) loginStatus(w http.ResponseWriter, r *http.Request) {
	installationID := strings.TrimSpace(r.Header.Get(headerInstallationID))
	if installationID == "" {
		writeMissingAuthError(r.Context(), w, "login_status")
		return
	}
	status, err := h.service.Status(r.Context(), installationID)
	if err != nil {
		writeMappedError(r.Context(), w, "login_status", err)
		return
	}
	writeSuccess(w, http.StatusOK, status)
}

func (h *Handler) loginHistory(w http.ResponseWriter, r *http.Request) {
	auth, ok := authFromRequest(r)
	if !ok {
		writeMissingAuthError(r.Context(), w, "login_history")
		return
	}

	query := application.LoginHistoryQuery{
		Page:   parseIntDefault(r.URL.Query().Get("page"), 1),
		Limit:  parseIntDefault(r.URL.Query().Get("limit"), 20),
		Days:   parseIntDefault(r.URL.Query().Get("days"), 0),
		Status: r.URL.Query().Get("status"),
	}
	items, err := h.service.LoginHistory(r.Context(), auth, query)
	if err != nil {
		writeMappedError(r.Context(), w, "login_history", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"attempts": items})
}
