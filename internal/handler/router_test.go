package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/handler"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/cache"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// stubStore embeds the interface so only the methods a test exercises need
// real bodies; hitting anything else panics and fails the test loudly.
type stubStore struct {
	port.WorkspaceStore
	clients   map[string]*domain.Client
	tasks     map[string]*domain.Task
	approvals map[string]*domain.Approval
}

func (s *stubStore) ListClients(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubStore) GetClient(_ context.Context, clientID string) (*domain.Client, error) {
	c, ok := s.clients[clientID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "client", ID: clientID}
	}
	return c, nil
}

func (s *stubStore) CreateClient(_ context.Context, req *domain.ClientRequest) (*domain.Client, error) {
	c := &domain.Client{ID: "client-new", CompanyName: req.CompanyName, Status: domain.ClientActive}
	s.clients[c.ID] = c
	return c, nil
}

func (s *stubStore) ListDeals(_ context.Context) ([]domain.PipelineDeal, error) {
	return []domain.PipelineDeal{}, nil
}

func (s *stubStore) ListClientFiles(_ context.Context, _ string) ([]domain.ClientFile, error) {
	return []domain.ClientFile{}, nil
}

func (s *stubStore) ListApprovals(_ context.Context, _, clientID string) ([]domain.Approval, error) {
	out := []domain.Approval{}
	for _, a := range s.approvals {
		if clientID == "" || a.ClientID == clientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type stubAuthStore struct {
	profiles map[string]*domain.Profile
	hashes   map[string][2]string // email -> {userID, bcrypt hash}
}

func (s *stubAuthStore) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: userID}
	}
	return p, nil
}

func (s *stubAuthStore) ListProfiles(_ context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubAuthStore) UpdateRole(_ context.Context, userID string, role domain.Role) (*domain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "profile", ID: userID}
	}
	p.Role = role
	return p, nil
}

func (s *stubAuthStore) GetDevLoginHash(_ context.Context, email string) (string, string, error) {
	entry, ok := s.hashes[email]
	if !ok {
		return "", "", &domain.ErrNotFound{Resource: "dev_login", ID: email}
	}
	return entry[0], entry[1], nil
}

func (s *stubAuthStore) SignInWithPassword(_ context.Context, _, _ string) (*domain.TokenPair, error) {
	return nil, &domain.ErrUnauthorized{Message: "Credenciais inválidas"}
}

func (s *stubAuthStore) RefreshSession(_ context.Context, _ string) (*domain.TokenPair, error) {
	return nil, &domain.ErrUnauthorized{Message: "Credenciais inválidas"}
}

func (s *stubAuthStore) SignOut(_ context.Context, _ string) error { return nil }

func (s *stubAuthStore) Ping(_ context.Context) error { return nil }

// testEnv wires a real router over stub stores, with dev-mode auth so
// tests can mint sessions without a GoTrue round trip.
type testEnv struct {
	router http.Handler
	auth   *stubAuthStore
	store  *stubStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	auth := &stubAuthStore{
		profiles: map[string]*domain.Profile{},
		hashes:   map[string][2]string{},
	}
	store := &stubStore{
		clients:   map[string]*domain.Client{},
		tasks:     map[string]*domain.Task{},
		approvals: map[string]*domain.Approval{},
	}

	profileCache := cache.New[*domain.Profile](time.Minute)
	watcher := service.NewSessionWatcher(profileCache, logger)
	t.Cleanup(watcher.Close)

	sessions := service.NewSessionService(auth, auth, auth, profileCache, "test-secret", true, logger, metrics, watcher)
	workspace := service.NewWorkspaceService(store, auth, logger)
	credentials := service.NewCredentialService(credStoreStub{}, logger)

	taskWatcher := service.NewTaskWatcher(store, time.Minute, logger, metrics)
	t.Cleanup(taskWatcher.Close)

	router := handler.NewRouter(handler.Deps{
		Sessions:       sessions,
		Workspace:      workspace,
		Credentials:    credentials,
		Watcher:        taskWatcher,
		Pinger:         auth,
		Metrics:        metrics,
		Logger:         logger,
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return &testEnv{router: router, auth: auth, store: store}
}

type credStoreStub struct{}

func (credStoreStub) SaveCredentials(_ context.Context, provider domain.Provider, creds map[string]string) (*domain.Integration, error) {
	return &domain.Integration{Provider: provider, Credentials: creds, Status: "active"}, nil
}

func (credStoreStub) GetCredentials(_ context.Context, provider domain.Provider) (*domain.Integration, error) {
	return nil, &domain.ErrNotConfigured{Provider: string(provider)}
}

func (credStoreStub) ListIntegrations(_ context.Context) ([]domain.Integration, error) {
	return []domain.Integration{}, nil
}

// addUser registers a dev login and profile, returning an access token.
func (e *testEnv) addUser(t *testing.T, userID, email string, role domain.Role, clientID string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	e.auth.hashes[email] = [2]string{userID, string(hash)}
	e.auth.profiles[userID] = &domain.Profile{ID: userID, Email: email, Role: role, ClientID: clientID}

	body, _ := json.Marshal(domain.LoginRequest{Email: email, Password: "senha"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login for %s failed: %d %s", email, rec.Code, rec.Body.String())
	}

	var resp domain.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp.AccessToken
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestRouter_MissingTokenIs401(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/v1/navigation", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_GarbageTokenIs401(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/v1/navigation", "nem-um-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_NavigationReflectsRole(t *testing.T) {
	env := newTestEnv(t)
	token := env.addUser(t, "sales-1", "maria@turbo.com", domain.RoleSales, "")

	rec := env.do(http.MethodGet, "/v1/navigation", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Role     string   `json:"role"`
		Sections []string `json:"sections"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Role != "sales" {
		t.Errorf("expected sales, got %s", resp.Role)
	}
	joined := strings.Join(resp.Sections, ",")
	if !strings.Contains(joined, "pipeline") || !strings.Contains(joined, "dashboard") {
		t.Errorf("sales navigation missing expected sections: %v", resp.Sections)
	}
	if strings.Contains(joined, "reports") || strings.Contains(joined, "team") {
		t.Errorf("sales navigation leaked admin sections: %v", resp.Sections)
	}
}

func TestRouter_SectionGuard(t *testing.T) {
	env := newTestEnv(t)
	salesToken := env.addUser(t, "sales-1", "maria@turbo.com", domain.RoleSales, "")
	viewerToken := env.addUser(t, "viewer-1", "cliente@padaria.com", domain.RoleViewer, "client-1")

	// Sales reaches the pipeline but not approvals.
	if rec := env.do(http.MethodGet, "/v1/pipeline/deals/", salesToken, nil); rec.Code == http.StatusForbidden {
		t.Errorf("sales must reach the pipeline, got %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/v1/approvals/", salesToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for sales on approvals, got %d", rec.Code)
	}

	// Viewer accounts see only the portal.
	if rec := env.do(http.MethodGet, "/v1/clients/", viewerToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for viewer on clients, got %d", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/v1/portal/files", viewerToken, nil); rec.Code != http.StatusOK {
		t.Errorf("expected 200 for viewer on portal files, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(http.MethodGet, "/v1/portal/files", salesToken, nil); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for sales on the portal, got %d", rec.Code)
	}
}

func TestRouter_AdminOnlyRoleChange(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.addUser(t, "admin-1", "cadu@turbo.com", domain.RoleAdmin, "")
	editorToken := env.addUser(t, "editor-1", "joao@turbo.com", domain.RoleEditor, "")

	body := map[string]string{"role": "sales"}

	// Editors never reach the team section at all.
	if rec := env.do(http.MethodPatch, "/v1/team/editor-1/role", editorToken, body); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for editor, got %d", rec.Code)
	}

	rec := env.do(http.MethodPatch, "/v1/team/editor-1/role", adminToken, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.auth.profiles["editor-1"].Role != domain.RoleSales {
		t.Errorf("expected role persisted, got %s", env.auth.profiles["editor-1"].Role)
	}
}

func TestRouter_ClientsCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.addUser(t, "editor-1", "joao@turbo.com", domain.RoleEditor, "")

	rec := env.do(http.MethodPost, "/v1/clients/", token, domain.ClientRequest{CompanyName: "Padaria do Zé"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(http.MethodGet, "/v1/clients/client-new", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = env.do(http.MethodGet, "/v1/clients/ghost", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown client, got %d", rec.Code)
	}
}

func TestRouter_ValidationMapsTo400(t *testing.T) {
	env := newTestEnv(t)
	token := env.addUser(t, "editor-1", "joao@turbo.com", domain.RoleEditor, "")

	rec := env.do(http.MethodPost, "/v1/clients/", token, domain.ClientRequest{Status: "active"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing company name, got %d", rec.Code)
	}
}

func TestRouter_IntegrationNotConfiguredIs404(t *testing.T) {
	env := newTestEnv(t)
	token := env.addUser(t, "admin-1", "cadu@turbo.com", domain.RoleAdmin, "")

	rec := env.do(http.MethodGet, "/v1/integrations/notion", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unconfigured provider, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SaveCredentialsIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	editorToken := env.addUser(t, "editor-1", "joao@turbo.com", domain.RoleEditor, "")
	adminToken := env.addUser(t, "admin-1", "cadu@turbo.com", domain.RoleAdmin, "")

	body := map[string]string{"token": "pk_123"}

	if rec := env.do(http.MethodPut, "/v1/integrations/clickup/credentials", editorToken, body); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for editor, got %d", rec.Code)
	}
	if rec := env.do(http.MethodPut, "/v1/integrations/clickup/credentials", adminToken, body); rec.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_TaskEventsStreamsSSE(t *testing.T) {
	env := newTestEnv(t)
	token := env.addUser(t, "editor-1", "joao@turbo.com", domain.RoleEditor, "")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/v1/tasks/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	env.router.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event-stream content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "event: connected") {
		t.Errorf("expected initial connected event, got %q", rec.Body.String())
	}
}

func TestRouter_Healthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
