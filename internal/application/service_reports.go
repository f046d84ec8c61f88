package application

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/guardline/guardline-core/internal/domain"
	"github.com/guardline/guardline-core/internal/obs"
	"github.com/guardline/guardline-core/internal/validation"
)

// SubmitReport validates and persists an incident report for the
// authenticated caller. Validation is atomic: every field is checked before
// anything is written, and the first failing field aborts the submission
// with nothing stored. Free-text fields are sanitized after validation so
// what lands in the store is the normalized form.
func (s *Service) SubmitReport(ctx context.Context, auth Auth, req ReportRequest) (ReportResponse, error) {
	userID, err := s.authenticate(ctx, auth)
	if err != nil {
		return ReportResponse{}, err
	}

	title := validation.ValidateReportContent(req.Title)
	if !title.Valid {
		return ReportResponse{}, &domain.ValidationError{Field: "title", Reason: string(title.Reason)}
	}
	description := validation.ValidateReportContent(req.Description)
	if !description.Valid {
		return ReportResponse{}, &domain.ValidationError{Field: "description", Reason: string(description.Reason)}
	}
	country := strings.ToUpper(strings.TrimSpace(req.Country))
	if !validation.KnownCountry(country) {
		return ReportResponse{}, &domain.ValidationError{Field: "country", Reason: string(validation.ReasonUnknownCountry)}
	}
	city := validation.ValidateDisplayName(req.City)
	if !city.Valid {
		return ReportResponse{}, &domain.ValidationError{Field: "city", Reason: string(city.Reason)}
	}
	contact := validation.ValidatePhoneNumber(country, req.ContactNumber)
	if !contact.Valid {
		return ReportResponse{}, &domain.ValidationError{Field: "contact_number", Reason: string(contact.Reason)}
	}
	for _, name := range req.Attachments {
		if file := validation.IsValidFileType(name, s.cfg.AttachmentAllowList); !file.Valid {
			return ReportResponse{}, &domain.ValidationError{Field: "attachments", Reason: string(file.Reason)}
		}
	}

	now := s.nowFn()
	reportID, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		obs.CountReport("failure")
		return ReportResponse{}, fmt.Errorf("%w: generate report id: %v", domain.ErrStorageUnavailable, err)
	}
	report := domain.IncidentReport{
		ReportID:      reportID.String(),
		UserID:        userID,
		Title:         validation.SanitizeInput(title.Normalized),
		Description:   validation.SanitizeInput(description.Normalized),
		Country:       country,
		City:          validation.SanitizeInput(city.Normalized),
		ContactNumber: contact.Normalized,
		Attachments:   req.Attachments,
		Status:        domain.ReportStatusSubmitted,
		SubmittedAt:   now,
		UpdatedAt:     now,
	}

	id, err := s.reports.Insert(ctx, report)
	if err != nil {
		obs.CountReport("failure")
		// Fail loud: the caller keeps the validated payload and retries.
		return ReportResponse{}, fmt.Errorf("%w: store report: %v", domain.ErrStorageUnavailable, err)
	}

	slog.Default().InfoContext(ctx, "incident report submitted",
		"module", "application",
		"operation", "submit_report",
		"outcome", "success",
		"report_id", id,
	)
	obs.CountReport("success")

	return ReportResponse{ReportID: id, Status: report.Status, SubmittedAt: report.SubmittedAt}, nil
}

// ListReports returns the caller's own reports, newest first.
func (s *Service) ListReports(ctx context.Context, auth Auth, page, limit int) ([]ReportItem, error) {
	userID, err := s.authenticate(ctx, auth)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	reports, err := s.reports.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list reports: %v", domain.ErrStorageUnavailable, err)
	}

	items := make([]ReportItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, toReportItem(r))
	}
	return items, nil
}

// UpdateReportStatus moves a report through its review lifecycle. Invoked by
// agency integrations; the transport layer enforces the agency API key
// before this is reached.
func (s *Service) UpdateReportStatus(ctx context.Context, reportID, status string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !domain.ValidReportStatus(status) {
		return &domain.ValidationError{Field: "status", Reason: "BAD_FORMAT"}
	}
	if strings.TrimSpace(reportID) == "" {
		return &domain.ValidationError{Field: "report_id", Reason: "BAD_FORMAT"}
	}
	if err := s.reports.UpdateStatus(ctx, reportID, status, s.nowFn()); err != nil {
		return err
	}
	slog.Default().InfoContext(ctx, "report status updated",
		"module", "application",
		"operation", "update_report_status",
		"outcome", "success",
		"report_id", reportID,
		"status", status,
	)
	return nil
}

func toReportItem(r domain.IncidentReport) ReportItem {
	return ReportItem{
		ReportID:      r.ReportID,
		Title:         r.Title,
		Description:   r.Description,
		Country:       r.Country,
		City:          r.City,
		ContactNumber: r.ContactNumber,
		Attachments:   r.Attachments,
		Status:        r.Status,
		SubmittedAt:   r.SubmittedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
