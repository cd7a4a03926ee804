package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/handler"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/cache"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/integrations"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/supabase"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const jwtSecret = "integration-secret"

// fakeSupabase emulates just enough of PostgREST and GoTrue for a full
// login -> navigation -> feature-route flow through the real client.
type fakeSupabase struct {
	mu          sync.Mutex
	upsertPaths []string
	upsertRows  []map[string]any
}

func (f *fakeSupabase) handler(t *testing.T) http.HandlerFunc {
	adminProfile := map[string]any{
		"id":        "admin-1",
		"email":     "cadu@turbo.com",
		"full_name": "Cadu Almeida",
		"role":      "admin",
	}
	seedClient := map[string]any{
		"id":             "client-1",
		"company_name":   "Padaria do Zé",
		"status":         "active",
		"contract_value": 3500,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/auth/v1/token":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if r.URL.Query().Get("grant_type") != "password" || body["password"] != "senha123" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
				return
			}
			claims := jwt.MapClaims{
				"sub":   "admin-1",
				"email": body["email"],
				"exp":   time.Now().Add(time.Hour).Unix(),
			}
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
			if err != nil {
				t.Errorf("sign token: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  token,
				"refresh_token": "refresh-1",
				"expires_in":    3600,
				"user":          map[string]string{"id": "admin-1", "email": body["email"]},
			})

		case r.URL.Path == "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)

		case strings.HasPrefix(r.URL.Path, "/rest/v1/profiles"):
			json.NewEncoder(w).Encode([]map[string]any{adminProfile})

		case r.URL.Path == "/rest/v1/clients" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]map[string]any{seedClient})

		case r.URL.Path == "/rest/v1/clients" && r.Method == http.MethodPost:
			var row map[string]any
			json.NewDecoder(r.Body).Decode(&row)
			row["id"] = "client-77"
			json.NewEncoder(w).Encode([]map[string]any{row})

		case r.URL.Path == "/rest/v1/tasks" && r.Method == http.MethodHead:
			w.Header().Set("Content-Range", "0-0/1")

		case r.URL.Path == "/rest/v1/tasks" && r.Method == http.MethodGet:
			if r.URL.Query().Get("select") == "updated_at" {
				json.NewEncoder(w).Encode([]map[string]string{{"updated_at": "2024-11-01T12:00:00Z"}})
				return
			}
			json.NewEncoder(w).Encode([]map[string]any{})

		case r.URL.Path == "/rest/v1/tasks" && r.Method == http.MethodPost:
			var row map[string]any
			json.NewDecoder(r.Body).Decode(&row)
			row["id"] = "task-1"
			json.NewEncoder(w).Encode([]map[string]any{row})

		case r.URL.Path == "/rest/v1/tasks" && r.Method == http.MethodPatch:
			var updates map[string]any
			json.NewDecoder(r.Body).Decode(&updates)
			row := map[string]any{"id": "task-1", "title": "Gravar VSL"}
			for k, v := range updates {
				row[k] = v
			}
			json.NewEncoder(w).Encode([]map[string]any{row})

		case r.URL.Path == "/rest/v1/integrations" && r.Method == http.MethodPost:
			var row map[string]any
			json.NewDecoder(r.Body).Decode(&row)
			f.mu.Lock()
			f.upsertPaths = append(f.upsertPaths, r.URL.RequestURI())
			f.upsertRows = append(f.upsertRows, row)
			f.mu.Unlock()
			row["id"] = "integ-1"
			json.NewEncoder(w).Encode([]map[string]any{row})

		default:
			// Every other table read answers empty, which the services
			// treat as a valid zero state.
			json.NewEncoder(w).Encode([]any{})
		}
	}
}

// buildServer mirrors the production wiring in cmd/turbo with the fake
// Supabase behind the real client.
func buildServer(t *testing.T, supabaseURL string) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	resilienceCfg := resilience.Config{
		MaxRetries:     0,
		InitialBackoff: time.Millisecond,
		MaxConcurrency: 4,
	}
	httpClient := &http.Client{Timeout: 5 * time.Second}
	supabaseClient := supabase.NewClient(
		httpClient,
		supabaseURL,
		"anon-key",
		"service-key",
		resilience.NewCircuitBreaker("supabase-integration"),
		resilienceCfg,
		logger,
	)

	metaFetcher := integrations.NewMetaFetcher(httpClient, supabaseClient, resilienceCfg, logger, metrics)
	clickupFetcher := integrations.NewClickUpFetcher(httpClient, supabaseClient, resilienceCfg, logger, metrics)
	notionFetcher := integrations.NewNotionFetcher(httpClient, supabaseClient, resilienceCfg, logger, metrics)
	driveFetcher := integrations.NewDriveFetcher(httpClient, supabaseClient, resilienceCfg, logger, metrics)

	profileCache := cache.New[*domain.Profile](time.Minute)
	insightsCache := cache.New[service.CachedInsights](time.Minute)

	sessionWatcher := service.NewSessionWatcher(profileCache, logger)
	t.Cleanup(sessionWatcher.Close)

	sessionSvc := service.NewSessionService(
		supabaseClient,
		supabaseClient,
		supabaseClient,
		profileCache,
		jwtSecret,
		false,
		logger,
		metrics,
		sessionWatcher,
	)
	credentialSvc := service.NewCredentialService(supabaseClient, logger)
	integrationSvc := service.NewIntegrationService(
		metaFetcher, clickupFetcher, notionFetcher, driveFetcher,
		insightsCache, logger, metrics,
	)
	workspaceSvc := service.NewWorkspaceService(supabaseClient, supabaseClient, logger)
	dashboardSvc := service.NewDashboardService(supabaseClient, integrationSvc, logger)

	taskWatcher := service.NewTaskWatcher(supabaseClient, 50*time.Millisecond, logger, metrics)
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	taskWatcher.Start(watchCtx)
	t.Cleanup(func() {
		cancelWatch()
		taskWatcher.Close()
	})

	return handler.NewRouter(handler.Deps{
		Sessions:       sessionSvc,
		Workspace:      workspaceSvc,
		Integrations:   integrationSvc,
		Credentials:    credentialSvc,
		Dashboard:      dashboardSvc,
		Watcher:        taskWatcher,
		Pinger:         supabaseClient,
		Metrics:        metrics,
		Logger:         logger,
		AllowedOrigins: []string{"http://localhost:5173"},
	})
}

func doJSON(router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// TestIntegration_FullFlow walks an admin through the API the way the SPA
// does: login, navigation, CRM, kanban, integrations and logout.
func TestIntegration_FullFlow(t *testing.T) {
	fake := &fakeSupabase{}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	router := buildServer(t, server.URL)

	// --- Login: wrong password is rejected with the provider message ---
	rec := doJSON(router, http.MethodPost, "/v1/auth/login", "",
		domain.LoginRequest{Email: "cadu@turbo.com", Password: "errada"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	// --- Login: success hands back tokens and the resolved profile ---
	rec = doJSON(router, http.MethodPost, "/v1/auth/login", "",
		domain.LoginRequest{Email: "cadu@turbo.com", Password: "senha123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login domain.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&login); err != nil {
		t.Fatal(err)
	}
	if login.Role != domain.RoleAdmin {
		t.Errorf("expected admin role, got %s", login.Role)
	}
	if login.Profile == nil || login.Profile.FullName != "Cadu Almeida" {
		t.Errorf("unexpected profile: %+v", login.Profile)
	}
	token := login.AccessToken

	// --- Navigation: an admin sees every section ---
	rec = doJSON(router, http.MethodGet, "/v1/navigation", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("navigation: expected 200, got %d", rec.Code)
	}
	var nav struct {
		Sections []string `json:"sections"`
	}
	json.NewDecoder(rec.Body).Decode(&nav)
	if len(nav.Sections) != 9 {
		t.Errorf("expected 9 admin sections, got %d: %v", len(nav.Sections), nav.Sections)
	}

	// --- CRM: list seeded clients, create a new one ---
	rec = doJSON(router, http.MethodGet, "/v1/clients/", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list clients: expected 200, got %d", rec.Code)
	}
	var clients []domain.Client
	json.NewDecoder(rec.Body).Decode(&clients)
	if len(clients) != 1 || clients[0].CompanyName != "Padaria do Zé" {
		t.Errorf("unexpected client list: %+v", clients)
	}

	rec = doJSON(router, http.MethodPost, "/v1/clients/", token,
		domain.ClientRequest{CompanyName: "Clínica Sorriso", Status: "negotiation"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Client
	json.NewDecoder(rec.Body).Decode(&created)
	if created.ID != "client-77" {
		t.Errorf("expected persisted client id, got %q", created.ID)
	}

	// --- Kanban: create a card and move it across columns ---
	rec = doJSON(router, http.MethodPost, "/v1/tasks/", token,
		domain.TaskRequest{Title: "Gravar VSL", Status: "todo", Priority: "high"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(router, http.MethodPatch, "/v1/tasks/task-1/move", token,
		domain.TaskMoveRequest{Status: "in_progress", OrderIndex: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("move task: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var moved domain.Task
	json.NewDecoder(rec.Body).Decode(&moved)
	if moved.Status != domain.TaskInProgress || moved.OrderIndex != 2 {
		t.Errorf("unexpected moved task: %+v", moved)
	}

	// --- Integrations: credentials land as an atomic provider upsert ---
	rec = doJSON(router, http.MethodPut, "/v1/integrations/clickup/credentials", token,
		map[string]string{"token": "pk_integration"})
	if rec.Code != http.StatusOK {
		t.Fatalf("save credentials: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	fake.mu.Lock()
	upserts := len(fake.upsertPaths)
	var upsertPath string
	if upserts > 0 {
		upsertPath = fake.upsertPaths[0]
	}
	fake.mu.Unlock()
	if upserts != 1 || !strings.Contains(upsertPath, "on_conflict=provider") {
		t.Errorf("expected one provider-keyed upsert, got %d (%q)", upserts, upsertPath)
	}

	// --- Unconfigured ads report degrades to the demo payload ---
	rec = doJSON(router, http.MethodGet, "/v1/integrations/meta/insights?range=last_7d", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("meta insights: expected 200, got %d", rec.Code)
	}
	var insights struct {
		Data domain.AdsInsights `json:"data"`
		Meta domain.FetchMeta   `json:"meta"`
	}
	json.NewDecoder(rec.Body).Decode(&insights)
	if insights.Meta.Source != domain.SourceMock {
		t.Errorf("expected mock source, got %s", insights.Meta.Source)
	}
	if insights.Data.Spend != 1250.50 {
		t.Errorf("expected demo spend, got %v", insights.Data.Spend)
	}

	// --- Dashboard assembles without failing on empty sources ---
	rec = doJSON(router, http.MethodGet, "/v1/dashboard", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// --- Operational probes ---
	rec = doJSON(router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}

	// --- Logout ---
	rec = doJSON(router, http.MethodPost, "/v1/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

// TestIntegration_ViewerPortalScope checks that a portal account stays
// inside its own client's data.
func TestIntegration_ViewerPortalScope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/auth/v1/token":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			claims := jwt.MapClaims{
				"sub":   "viewer-1",
				"email": body["email"],
				"exp":   time.Now().Add(time.Hour).Unix(),
			}
			token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": token,
				"expires_in":   3600,
				"user":         map[string]string{"id": "viewer-1", "email": body["email"]},
			})
		case strings.HasPrefix(r.URL.Path, "/rest/v1/profiles"):
			json.NewEncoder(w).Encode([]map[string]any{{
				"id":        "viewer-1",
				"email":     "cliente@padaria.com",
				"full_name": "Zé da Padaria",
				"role":      "viewer",
				"client_id": "client-1",
			}})
		case strings.HasPrefix(r.URL.Path, "/rest/v1/client_files"):
			if !strings.Contains(r.URL.RawQuery, "client_id=eq.client-1") {
				t.Errorf("portal files not scoped to linked client: %s", r.URL.RequestURI())
			}
			json.NewEncoder(w).Encode([]map[string]any{{
				"id":        "file-1",
				"client_id": "client-1",
				"file_name": "contrato.pdf",
			}})
		default:
			json.NewEncoder(w).Encode([]any{})
		}
	}))
	defer server.Close()

	router := buildServer(t, server.URL)

	rec := doJSON(router, http.MethodPost, "/v1/auth/login", "",
		domain.LoginRequest{Email: "cliente@padaria.com", Password: "senha123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login domain.LoginResponse
	json.NewDecoder(rec.Body).Decode(&login)

	// The viewer reaches the portal but nothing else.
	rec = doJSON(router, http.MethodGet, "/v1/clients/", login.AccessToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 on clients for viewer, got %d", rec.Code)
	}

	rec = doJSON(router, http.MethodGet, "/v1/portal/files", login.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("portal files: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var files []domain.ClientFile
	json.NewDecoder(rec.Body).Decode(&files)
	if len(files) != 1 || files[0].FileName != "contrato.pdf" {
		t.Errorf("unexpected portal files: %+v", files)
	}
}
