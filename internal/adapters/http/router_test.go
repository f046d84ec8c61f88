package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/guardline/guardline-core/internal/application"
	"github.com/guardline/guardline-core/internal/domain"
	"github.com/guardline/guardline-core/internal/lockout"
	"github.com/guardline/guardline-core/internal/ports"
	"github.com/guardline/guardline-core/internal/session"
)

const (
	testAgencyKey = "agency-key-1"
	testEmail     = "amina@example.com"
	testPassword  = "Str0ng&Secure!"
)

func TestLoginLogoutSessionFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	defer srv.Close()

	body := `{"installation_id":"install-1","email":"amina@example.com","password":"Str0ng&Secure!"}`
	res := doJSON(t, srv, http.MethodPost, "/security/v1/login", body, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", res.StatusCode)
	}
	payload := decodeData(t, res)
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatalf("expected token in login response, got %v", payload)
	}

	headers := map[string]string{headerInstallationID: "install-1"}
	res = doJSON(t, srv, http.MethodGet, "/security/v1/session", "", headers)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("session status = %d", res.StatusCode)
	}
	if valid, _ := decodeData(t, res)["valid"].(bool); !valid {
		t.Fatalf("expected valid session")
	}

	res = doJSON(t, srv, http.MethodPost, "/security/v1/logout", "", headers)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", res.StatusCode)
	}
	res = doJSON(t, srv, http.MethodGet, "/security/v1/session", "", headers)
	if valid, _ := decodeData(t, res)["valid"].(bool); valid {
		t.Fatalf("expected invalid session after logout")
	}
}

func TestLoginFailureCodes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	defer srv.Close()

	bad := `{"installation_id":"install-2","email":"amina@example.com","password":"wrong-password!"}`
	for i := 0; i < 5; i++ {
		res := doJSON(t, srv, http.MethodPost, "/security/v1/login", bad, nil)
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("failure %d status = %d, want 401", i+1, res.StatusCode)
		}
		if code := decodeErrorCode(t, res); code != "AUTHENTICATION_FAILED" {
			t.Fatalf("failure %d code = %s", i+1, code)
		}
	}

	res := doJSON(t, srv, http.MethodPost, "/security/v1/login", bad, nil)
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("locked status = %d, want 429", res.StatusCode)
	}
	if code := decodeErrorCode(t, res); code != "ACCOUNT_LOCKED" {
		t.Fatalf("locked code = %s", code)
	}
}

func TestSubmitReportRequiresAuthAndValidates(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	defer srv.Close()

	report := `{"title":"Harassment near the bus stage","description":"A man followed me from the stage to the gate.","country":"KE","city":"Nairobi","contact_number":"0712345678"}`

	res := doJSON(t, srv, http.MethodPost, "/security/v1/reports", report, nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated submit status = %d, want 401", res.StatusCode)
	}

	token := loginFor(t, srv, "install-3")
	auth := map[string]string{
		headerInstallationID: "install-3",
		"Authorization":      "Bearer " + token,
	}

	res = doJSON(t, srv, http.MethodPost, "/security/v1/reports", report, auth)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("submit status = %d, want 201", res.StatusCode)
	}
	reportID, _ := decodeData(t, res)["report_id"].(string)
	if reportID == "" {
		t.Fatalf("expected report_id")
	}

	invalid := strings.Replace(report, `"country":"KE"`, `"country":"ZZ"`, 1)
	res = doJSON(t, srv, http.MethodPost, "/security/v1/reports", invalid, auth)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid submit status = %d, want 400", res.StatusCode)
	}
	var e apiError
	if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e.Field != "country" {
		t.Fatalf("error field = %q, want country", e.Field)
	}
}

func TestAgencyStatusRouteRequiresAPIKey(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	defer srv.Close()

	token := loginFor(t, srv, "install-4")
	auth := map[string]string{
		headerInstallationID: "install-4",
		"Authorization":      "Bearer " + token,
	}
	report := `{"title":"Harassment near the bus stage","description":"A man followed me from the stage to the gate.","country":"KE","city":"Nairobi","contact_number":"0712345678"}`
	res := doJSON(t, srv, http.MethodPost, "/security/v1/reports", report, auth)
	reportID, _ := decodeData(t, res)["report_id"].(string)

	res = doJSON(t, srv, http.MethodPatch, "/security/v1/reports/"+reportID+"/status", `{"status":"UNDER_REVIEW"}`, nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing key status = %d, want 401", res.StatusCode)
	}

	res = doJSON(t, srv, http.MethodPatch, "/security/v1/reports/"+reportID+"/status", `{"status":"UNDER_REVIEW"}`,
		map[string]string{"X-Agency-Api-Key": testAgencyKey})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("agency update status = %d, want 200", res.StatusCode)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	defer srv.Close()

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		res := doJSON(t, srv, http.MethodGet, path, "", nil)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", path, res.StatusCode)
		}
		res.Body.Close()
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			SessionTTL:          24 * time.Hour,
			AttachmentAllowList: []string{"jpg", "jpeg", "png", "pdf", "doc", "docx"},
		},
		Tracker:       lockout.NewTracker(&memAttempts{state: map[string]domain.AttemptState{}}, 5, 15*time.Minute),
		Sessions:      session.NewManager(&memSessions{sessions: map[string]domain.Session{}, loggedIn: map[string]bool{}}, 24*time.Hour),
		Identity:      &memIdentity{userID: uuid.New()},
		Reports:       &memReports{byID: map[string]domain.IncidentReport{}},
		LoginAttempts: &memLoginAttempts{},
		TwoFactor:     &memTwoFactor{state: map[string]domain.TwoFactorState{}},
		SecondFactor:  &memVerifier{},
	})

	handler := NewHandler(svc, testAgencyKey)
	return httptest.NewServer(NewRouter(handler))
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, body string, headers map[string]string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return res
}

func decodeData(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	defer res.Body.Close()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func decodeErrorCode(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	var e apiError
	if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return e.Code
}

func loginFor(t *testing.T, srv *httptest.Server, installationID string) string {
	t.Helper()
	body := `{"installation_id":"` + installationID + `","email":"` + testEmail + `","password":"` + testPassword + `"}`
	res := doJSON(t, srv, http.MethodPost, "/security/v1/login", body, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("fixture login status = %d", res.StatusCode)
	}
	token, _ := decodeData(t, res)["token"].(string)
	if token == "" {
		t.Fatalf("fixture login returned no token")
	}
	return token
}

type memAttempts struct {
	mu    sync.Mutex
	state map[string]domain.AttemptState
}

func (m *memAttempts) Get(_ context.Context, id string) (domain.AttemptState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state[id], nil
}

func (m *memAttempts) Put(_ context.Context, id string, s domain.AttemptState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state[id] = s
	return nil
}

func (m *memAttempts) Reset(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state, id)
	return nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	loggedIn map[string]bool
}

func (m *memSessions) Get(_ context.Context, id string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id], nil
}

func (m *memSessions) Put(_ context.Context, id string, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
	return nil
}

func (m *memSessions) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memSessions) SetLoggedInFlag(_ context.Context, id string, v bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loggedIn[id] = v
	return nil
}

type memTwoFactor struct {
	mu    sync.Mutex
	state map[string]domain.TwoFactorState
}

func (m *memTwoFactor) Get(_ context.Context, id string) (domain.TwoFactorState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state[id], nil
}

func (m *memTwoFactor) Put(_ context.Context, id string, s domain.TwoFactorState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state[id] = s
	return nil
}

func (m *memTwoFactor) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state, id)
	return nil
}

type memIdentity struct {
	userID uuid.UUID
}

func (m *memIdentity) VerifyCredentials(_ context.Context, identifier, secret string) (domain.Credential, error) {
	if identifier != testEmail || secret != testPassword {
		return domain.Credential{}, domain.ErrAuthenticationFailed
	}
	return domain.Credential{UserID: m.userID, Email: testEmail, IsActive: true}, nil
}

func (m *memIdentity) Register(_ context.Context, params ports.RegisterParams) (domain.Credential, error) {
	return domain.Credential{UserID: uuid.New(), Email: params.Email, IsActive: true}, nil
}

func (m *memIdentity) SignOut(_ context.Context) error { return nil }

type memLoginAttempts struct {
	mu       sync.Mutex
	attempts []domain.LoginAttempt
}

func (m *memLoginAttempts) Insert(_ context.Context, a domain.LoginAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memLoginAttempts) ListByUser(_ context.Context, _ uuid.UUID, _, _ int, _ *time.Time, _ string) ([]domain.LoginAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.LoginAttempt(nil), m.attempts...), nil
}

type memReports struct {
	mu   sync.Mutex
	byID map[string]domain.IncidentReport
}

func (m *memReports) Insert(_ context.Context, r domain.IncidentReport) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[r.ReportID] = r
	return r.ReportID, nil
}

func (m *memReports) GetByID(_ context.Context, id string) (domain.IncidentReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return domain.IncidentReport{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *memReports) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]domain.IncidentReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.IncidentReport
	for _, r := range m.byID {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReports) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = updatedAt
	m.byID[id] = r
	return nil
}

type memVerifier struct{}

func (memVerifier) Provision(string) (string, string, error) {
	return "JBSWY3DPEHPK3PXP", "otpauth://totp/Guardline:test?secret=JBSWY3DPEHPK3PXP", nil
}

func (memVerifier) Verify(code, _ string) bool { return code == "123456" }
