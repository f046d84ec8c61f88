package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guardline/guardline-core/internal/application"
)

func (h *Handler) submitReport(w http.ResponseWriter, r *http.Request) {
	auth, ok := authFromRequest(r)
	if !ok {
		writeMissingAuthError(r.Context(), w, "submit_report")
		return
	}

	var req application.ReportRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "submit_report", err)
		return
	}

	res, err := h.service.SubmitReport(r.Context(), auth, req)
	if err != nil {
		writeMappedError(r.Context(), w, "submit_report", err)
		return
	}
	writeSuccess(w, http.StatusCreated, res)
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	auth, ok := authFromRequest(r)
	if !ok {
		writeMissingAuthError(r.Context(), w, "list_reports")
		return
	}

	page := parseIntDefault(r.URL.Query().Get("page"), 1)
	limit := parseIntDefault(r.URL.Query().Get("limit"), 20)

	items, err := h.service.ListReports(r.Context(), auth, page, limit)
	if err != nil {
		writeMappedError(r.Context(), w, "list_reports", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"reports": items})
}

func (h *Handler) updateReportStatus(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "report_id")

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_report_status", err)
		return
	}

	if err := h.service.UpdateReportStatus(r.Context(), reportID, req.Status); err != nil {
		writeMappedError(r.Context(), w, "update_report_status", err)
		return
	}
	writeMessage(w, http.StatusOK, "Report status updated")
}
