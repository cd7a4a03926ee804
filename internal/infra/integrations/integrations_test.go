package integrations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"

	"go.uber.org/zap"
)

// credStore serves canned credential blobs per provider.
type credStore struct {
	blobs map[domain.Provider]map[string]string
	err   error
}

func (s *credStore) SaveCredentials(_ context.Context, provider domain.Provider, creds map[string]string) (*domain.Integration, error) {
	return &domain.Integration{Provider: provider, Credentials: creds}, nil
}

func (s *credStore) GetCredentials(_ context.Context, provider domain.Provider) (*domain.Integration, error) {
	if s.err != nil {
		return nil, s.err
	}
	blob, ok := s.blobs[provider]
	if !ok {
		return nil, &domain.ErrNotConfigured{Provider: string(provider)}
	}
	return &domain.Integration{Provider: provider, Credentials: blob, Status: "active"}, nil
}

func (s *credStore) ListIntegrations(_ context.Context) ([]domain.Integration, error) {
	return nil, nil
}

func testCfg() resilience.Config {
	return resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond, MaxConcurrency: 4}
}

// --- Meta Ads ---

func TestMetaGetInsights_UnconfiguredServesMock(t *testing.T) {
	f := NewMetaFetcher(http.DefaultClient, &credStore{}, testCfg(), zap.NewNop(), observability.NewMetrics())

	insights, meta := f.GetInsights(context.Background(), "last_30d")
	if meta.Source != domain.SourceMock {
		t.Fatalf("expected mock source, got %s", meta.Source)
	}
	if insights.Spend != 1250.50 || insights.Impressions != 45000 || insights.Clicks != 850 {
		t.Errorf("unexpected mock payload: %+v", insights)
	}
	if len(insights.Actions) != 2 || insights.Actions[0].ActionType != "lead" || insights.Actions[0].Value != 45 {
		t.Errorf("unexpected mock actions: %+v", insights.Actions)
	}
}

func TestMetaGetInsights_StoreDownYieldsEmptyNotMock(t *testing.T) {
	store := &credStore{err: &domain.ErrExternalService{Service: "supabase/integrations"}}
	f := NewMetaFetcher(http.DefaultClient, store, testCfg(), zap.NewNop(), observability.NewMetrics())

	insights, meta := f.GetInsights(context.Background(), "last_30d")
	if meta.Source != domain.SourceEmpty {
		t.Fatalf("a store outage must not masquerade as demo data, got %+v", meta)
	}
	if insights.Spend != 0 || insights.Impressions != 0 || len(insights.Actions) != 0 {
		t.Errorf("expected zeroed insights, got %+v", insights)
	}
}

func TestMetaGetInsights_LiveParsesStringNumerics(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"spend":"321.75","impressions":"12000","clicks":"240",
			"cpc":"1.34","cpm":"26.81","ctr":"2.00",
			"actions":[{"action_type":"lead","value":"18"}],
			"date_start":"2026-08-01","date_stop":"2026-08-31"}]}`))
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderMetaAds: {"access_token": "EAAB123", "ad_account_id": "987654"},
	}}
	f := NewMetaFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	insights, meta := f.GetInsights(context.Background(), "last_7d")
	if meta.Source != domain.SourceLive || meta.Degraded != "" {
		t.Fatalf("expected clean live fetch, got %+v", meta)
	}
	if insights.Spend != 321.75 || insights.Impressions != 12000 {
		t.Errorf("unexpected insights: %+v", insights)
	}
	if len(insights.Actions) != 1 || insights.Actions[0].Value != 18 {
		t.Errorf("unexpected actions: %+v", insights.Actions)
	}
	// The account id gets the act_ prefix; the token rides the query string.
	if gotPath != "/act_987654/insights" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if !strings.Contains(gotQuery, "access_token=EAAB123") || !strings.Contains(gotQuery, "date_preset=last_7d") {
		t.Errorf("unexpected query: %s", gotQuery)
	}
}

func TestMetaGetInsights_EmptyDataIsLiveZeros(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderMetaAds: {"access_token": "tok", "ad_account_id": "act_1"},
	}}
	f := NewMetaFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	insights, meta := f.GetInsights(context.Background(), "last_30d")
	if meta.Source != domain.SourceLive {
		t.Fatalf("expected live source for empty range, got %s", meta.Source)
	}
	if insights.Spend != 0 || len(insights.Actions) != 0 {
		t.Errorf("expected zeroed insights, got %+v", insights)
	}
}

func TestMetaGetInsights_LiveFailureFallsBackToMock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderMetaAds: {"access_token": "expirado", "ad_account_id": "act_1"},
	}}
	f := NewMetaFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	insights, meta := f.GetInsights(context.Background(), "last_30d")
	if meta.Source != domain.SourceMock || meta.Degraded == "" {
		t.Fatalf("expected degraded mock fallback, got %+v", meta)
	}
	if insights.Spend != 1250.50 {
		t.Errorf("expected mock spend, got %v", insights.Spend)
	}
}

func TestMetaGetInsights_UnknownPresetDefaults(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderMetaAds: {"access_token": "tok", "ad_account_id": "act_1"},
	}}
	f := NewMetaFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	f.GetInsights(context.Background(), "last_90d")
	if !strings.Contains(gotQuery, "date_preset=last_30d") {
		t.Errorf("expected default preset, got query %s", gotQuery)
	}
}

// --- ClickUp ---

func TestClickUpGetTasks_UnconfiguredServesMock(t *testing.T) {
	f := NewClickUpFetcher(http.DefaultClient, &credStore{}, testCfg(), zap.NewNop(), observability.NewMetrics())

	tasks, meta := f.GetTasks(context.Background())
	if meta.Source != domain.SourceMock {
		t.Fatalf("expected mock source, got %s", meta.Source)
	}
	if len(tasks) != 2 || tasks[0].Name != "Criar Landing Page Black Friday" {
		t.Errorf("unexpected mock tasks: %+v", tasks)
	}
}

func TestClickUpGetTasks_LiveChain(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/team":
			w.Write([]byte(`{"teams":[{"id":"team-9"}]}`))
		case "/user":
			w.Write([]byte(`{"user":{"id":42}}`))
		case "/team/team-9/task":
			if r.URL.Query().Get("assignees[]") != "42" {
				t.Errorf("expected assignee filter, got %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"tasks":[{"id":"t1","name":"Ajustar campanha","status":{"status":"in_progress"},
				"assignees":[{"username":"Kadu"}],"url":"https://app.clickup.com/t/t1"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderClickUp: {"token": "pk_123"},
	}}
	f := NewClickUpFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	tasks, meta := f.GetTasks(context.Background())
	if meta.Source != domain.SourceLive {
		t.Fatalf("expected live source, got %+v", meta)
	}
	if len(tasks) != 1 || tasks[0].Status != "in_progress" || tasks[0].Assignees[0] != "Kadu" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
	// ClickUp personal tokens go in the Authorization header as-is, no
	// Bearer prefix.
	if gotAuth != "pk_123" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
}

func TestClickUpGetTasks_InvalidTokenYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderClickUp: {"token": "pk_revogado"},
	}}
	f := NewClickUpFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	tasks, meta := f.GetTasks(context.Background())
	if meta.Source != domain.SourceEmpty || meta.Degraded == "" {
		t.Fatalf("expected degraded empty result, got %+v", meta)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %+v", tasks)
	}
}

func TestClickUpGetTasks_StoreDownYieldsEmptyNotMock(t *testing.T) {
	store := &credStore{err: &domain.ErrExternalService{Service: "supabase/integrations"}}
	f := NewClickUpFetcher(http.DefaultClient, store, testCfg(), zap.NewNop(), observability.NewMetrics())

	tasks, meta := f.GetTasks(context.Background())
	if meta.Source != domain.SourceEmpty {
		t.Fatalf("a store outage must not masquerade as demo data, got %+v", meta)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %+v", tasks)
	}
}

// --- Notion ---

func TestNotionSearchPages_UnconfiguredServesMock(t *testing.T) {
	f := NewNotionFetcher(http.DefaultClient, &credStore{}, testCfg(), zap.NewNop(), observability.NewMetrics())

	pages, meta := f.SearchPages(context.Background(), "")
	if meta.Source != domain.SourceMock {
		t.Fatalf("expected mock source, got %s", meta.Source)
	}
	if len(pages) != 2 || pages[0].Title != "Empresa Wiki" {
		t.Errorf("unexpected mock pages: %+v", pages)
	}
}

func TestNotionSearchPages_LiveExtractsTitleProperty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Notion-Version") == "" {
			t.Error("expected Notion-Version header")
		}
		if r.Header.Get("Authorization") != "Bearer secret_abc" {
			t.Errorf("unexpected auth header: %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"results":[{"id":"p1","url":"https://notion.so/p1","last_edited_time":"2026-08-20T10:00:00.000Z",
			"properties":{"Nome":{"title":[{"plain_text":"Playbook de Tráfego"}]},"Status":{"title":[]}}}]}`))
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderNotion: {"token": "secret_abc"},
	}}
	f := NewNotionFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	pages, meta := f.SearchPages(context.Background(), "playbook")
	if meta.Source != domain.SourceLive {
		t.Fatalf("expected live source, got %+v", meta)
	}
	if len(pages) != 1 || pages[0].Title != "Playbook de Tráfego" {
		t.Errorf("unexpected pages: %+v", pages)
	}
}

func TestNotionSearchPages_FailureYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderNotion: {"token": "secret_abc"},
	}}
	f := NewNotionFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	pages, meta := f.SearchPages(context.Background(), "x")
	if meta.Source != domain.SourceEmpty || len(pages) != 0 {
		t.Fatalf("expected empty fallback, got %d pages, meta %+v", len(pages), meta)
	}
}

// --- Google Drive ---

func TestDriveListFiles_UnconfiguredServesMock(t *testing.T) {
	f := NewDriveFetcher(http.DefaultClient, &credStore{}, testCfg(), zap.NewNop(), observability.NewMetrics())

	files, meta := f.ListFiles(context.Background(), "")
	if meta.Source != domain.SourceMock {
		t.Fatalf("expected mock source, got %s", meta.Source)
	}
	if len(files) != 3 {
		t.Errorf("expected 3 mock files, got %d", len(files))
	}
}

func TestDriveListFiles_LiveWithFolderFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "AIzaTest" {
			t.Errorf("expected api key param, got %s", r.URL.RawQuery)
		}
		if q.Get("q") != "'folder-7' in parents" {
			t.Errorf("unexpected folder filter: %q", q.Get("q"))
		}
		w.Write([]byte(`{"files":[{"id":"f1","name":"Briefing.docx","mimeType":"application/vnd.google-apps.document","webViewLink":"https://docs.google.com/f1"}]}`))
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderGoogleDrive: {"api_key": "AIzaTest"},
	}}
	f := NewDriveFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	files, meta := f.ListFiles(context.Background(), "folder-7")
	if meta.Source != domain.SourceLive {
		t.Fatalf("expected live source, got %+v", meta)
	}
	if len(files) != 1 || files[0].Name != "Briefing.docx" {
		t.Errorf("unexpected files: %+v", files)
	}
}

func TestDriveListFiles_NilFilesBecomesEmptySlice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := &credStore{blobs: map[domain.Provider]map[string]string{
		domain.ProviderGoogleDrive: {"api_key": "AIzaTest"},
	}}
	f := NewDriveFetcher(server.Client(), store, testCfg(), zap.NewNop(), observability.NewMetrics())
	f.baseURL = server.URL

	files, meta := f.ListFiles(context.Background(), "")
	if files == nil {
		t.Fatal("expected a non-nil slice for JSON encoding")
	}
	if meta.Source != domain.SourceLive {
		t.Errorf("expected live source, got %s", meta.Source)
	}
}

