package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/hearthshare/inquiry/internal/analytics"
	clientdomain "github.com/hearthshare/inquiry/internal/client/domain"
	"github.com/hearthshare/inquiry/internal/client/session"
	"github.com/hearthshare/inquiry/internal/config"
	"github.com/hearthshare/inquiry/internal/eligibility"
	forecastdomain "github.com/hearthshare/inquiry/internal/forecast/domain"
	inquirydomain "github.com/hearthshare/inquiry/internal/inquiry/domain"
	"github.com/hearthshare/inquiry/internal/wizard"
	"go.uber.org/zap"
)

type fakeClientService struct {
	authClient *clientdomain.Client
}

func (f *fakeClientService) CreateClient(ctx context.Context, req clientdomain.CreateClientRequest) (*clientdomain.Client, error) {
	return nil, clientdomain.ErrInvalidCredentials
}

func (f *fakeClientService) DeleteClient(ctx context.Context, clientID snowflake.ID) error {
	return nil
}

func (f *fakeClientService) EmailTaken(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeClientService) GetByID(ctx context.Context, clientID snowflake.ID) (*clientdomain.Client, error) {
	return nil, clientdomain.ErrClientNotFound
}

func (f *fakeClientService) IssueSession(ctx context.Context, req clientdomain.IssueSessionRequest) (*clientdomain.LoginResult, error) {
	return &clientdomain.LoginResult{RawToken: "token", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeClientService) Authenticate(ctx context.Context, rawToken string) (*clientdomain.Client, error) {
	if f.authClient == nil {
		return nil, clientdomain.ErrInvalidSession
	}
	return f.authClient, nil
}

type fakeInquiryService struct {
	summary map[string]any
}

func (f *fakeInquiryService) Submit(ctx context.Context, submission inquirydomain.Submission) (*inquirydomain.Result, error) {
	return &inquirydomain.Result{Client: &clientdomain.Client{FriendlyID: "ABCD1234"}}, nil
}

func (f *fakeInquiryService) Summarize(ctx context.Context, clientID snowflake.ID) (map[string]any, error) {
	if f.summary == nil {
		return nil, inquirydomain.ErrNoInquiry
	}
	return f.summary, nil
}

type staticForecast struct{}

func (staticForecast) Snapshot() *forecastdomain.Snapshot {
	return forecastdomain.NewSnapshot(nil)
}

func (staticForecast) Refresh(ctx context.Context) error { return nil }

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry, err := eligibility.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	cfg := config.Config{
		OtherStates:     []string{"TX"},
		ExpansionStates: []string{"CA"},
	}
	clients := &fakeClientService{}
	inquiries := &fakeInquiryService{}

	wizardSvc := wizard.NewService(wizard.Params{
		Log:       zap.NewNop(),
		Store:     wizard.NewMemoryStore(),
		Rules:     eligibility.NewRules(cfg),
		Registry:  registry,
		Forecast:  staticForecast{},
		Clients:   clients,
		Inquiries: inquiries,
		Emitter:   analytics.NewRecorder(),
	})

	srv := &Server{
		cfg:        cfg,
		sessions:   session.NewManager(cfg),
		registry:   registry,
		clientsvc:  clients,
		inquirysvc: inquiries,
		wizardsvc:  wizardSvc,
		metrics:    NewMetrics(),
	}

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	srv.engine = router
	srv.RegisterRoutes()
	return srv, router
}

func TestGetOutcomeKnownSlug(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/inquiry/outcome/"+eligibility.SlugOtherState, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] == "" {
		t.Fatal("expected a rejection message")
	}
}

func TestGetOutcomeUnknownSlug(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/inquiry/outcome/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestGetWizardUnknownStep(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/inquiry/apply/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestGetWizardStepConfirmedClientRedirects(t *testing.T) {
	srv, router := newTestServer(t)
	srv.clientsvc.(*fakeClientService).authClient = &clientdomain.Client{
		User: &clientdomain.User{EmailConfirmed: true},
	}

	req := httptest.NewRequest(http.MethodGet, "/inquiry/apply/first", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestGetWizardStepUnconfirmedClientSeesNotice(t *testing.T) {
	srv, router := newTestServer(t)
	srv.clientsvc.(*fakeClientService).authClient = &clientdomain.Client{
		User: &clientdomain.User{EmailConfirmed: false},
	}

	req := httptest.NewRequest(http.MethodGet, "/inquiry/apply/first", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["step"] != "first" {
		t.Fatalf("expected first step, got %v", body["step"])
	}
	if notice, _ := body["notice"].(string); notice == "" {
		t.Fatal("expected a confirmation notice")
	}
}

func postStep(t *testing.T, router *gin.Engine, step string, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/inquiry/apply/"+step, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "_wiz", Value: "test-session"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestPostFirstStepAccepted(t *testing.T) {
	_, router := newTestServer(t)

	resp := postStep(t, router, "first", `{"email":"buyer@example.com","street":"12 Main St","city":"Boston","state":"MA","zip_code":"02108"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["redirect"] != "/inquiry/apply/home" {
		t.Fatalf("expected redirect to home step, got %q", body["redirect"])
	}
}

func TestPostFirstStepRejectedState(t *testing.T) {
	_, router := newTestServer(t)

	resp := postStep(t, router, "first", `{"email":"buyer@example.com","street":"12 Main St","city":"Boston","state":"CA","zip_code":"02108"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := "/inquiry/outcome/" + eligibility.SlugExpansionState
	if body["redirect"] != want {
		t.Fatalf("expected redirect %q, got %q", want, body["redirect"])
	}
}

func TestPostFirstStepValidation(t *testing.T) {
	_, router := newTestServer(t)

	resp := postStep(t, router, "first", `{"email":"not-an-email"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Type != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error.Type)
	}
	if len(body.Error.Errors) == 0 {
		t.Fatal("expected field errors")
	}
}

func TestPostStepOutOfOrder(t *testing.T) {
	_, router := newTestServer(t)

	resp := postStep(t, router, "signup", `{"password":"correct horse","phone_number":"+16175551212","agree_to_terms":true}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetSubmittedRequiresAuth(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/inquiry/submitted", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestGetSubmitted(t *testing.T) {
	srv, router := newTestServer(t)
	srv.clientsvc.(*fakeClientService).authClient = &clientdomain.Client{
		FriendlyID: "ABCD1234",
		User:       &clientdomain.User{Email: "buyer@example.com"},
	}
	srv.inquirysvc.(*fakeInquiryService).summary = map[string]any{
		"tracking_status": "investment inquiry submitted",
	}

	req := httptest.NewRequest(http.MethodGet, "/inquiry/submitted", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		FriendlyID string         `json:"friendly_id"`
		Tracking   map[string]any `json:"tracking"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.FriendlyID != "ABCD1234" {
		t.Fatalf("expected friendly id, got %q", body.FriendlyID)
	}
	if body.Tracking["tracking_status"] != "investment inquiry submitted" {
		t.Fatalf("unexpected tracking payload: %v", body.Tracking)
	}
}

func TestGetSubmittedConfirmedRedirects(t *testing.T) {
	srv, router := newTestServer(t)
	srv.clientsvc.(*fakeClientService).authClient = &clientdomain.Client{
		User: &clientdomain.User{EmailConfirmed: true},
	}

	req := httptest.NewRequest(http.MethodGet, "/inquiry/submitted", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "token"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to homepage, got %q", loc)
	}
}
