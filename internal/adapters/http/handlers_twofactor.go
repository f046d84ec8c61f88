package http

import (
	"net/http"
)

func (h *Handler) twoFASetup(w http.ResponseWriter, r *http.Request) {
	auth, ok := authFromRequest(r)
	if !ok {
		writeMissingAuthError(r.Context(), w, "two_fa_setup")
		return
	}

	var req struct {
		AccountName string `json:"account_name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "two_fa_setup", err)
		return
	}

	res, err := h.service.Setup2FA(r.Context(), auth, req.AccountName)
	if err != nil {
		writeMappedError(r.Context(), w, "two_fa_setup", err)
		return
	}
	writeSuccess(w, http.StatusOK, res)
}

func (h *Handler) twoFADisable(w http.ResponseWriter, r *http.Request) {
	auth, ok := authFromRequest(r)
	if !ok {
		writeMissingAuthError(r.Context(), w, "two_fa_disable")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "two_fa_disable", err)
		return
	}

	if err := h.service.Disable2FA(r.Context(), auth, req.Code); err != nil {
		writeMappedError(r.Context(), w, "two_fa_disable", err)
		return
	}
	writeMessage(w, http.StatusOK, "Two-factor authentication disabled")
}
