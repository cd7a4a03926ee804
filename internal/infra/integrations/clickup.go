package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.uber.org/zap"
)

const clickUpAPIURL = "https://api.clickup.com/api/v2"

func mockTrackerTasks() []domain.TrackerTask {
	return []domain.TrackerTask{
		{ID: "1", Name: "Criar Landing Page Black Friday", Status: "in_progress", Assignees: []string{"Kadu"}, URL: "#"},
		{ID: "2", Name: "Revisar Copy Email Marketing", Status: "review", Assignees: []string{"Kadu"}, URL: "#"},
	}
}

// ClickUpFetcher lists the linked user's tasks from ClickUp. Resolving them
// takes three chained calls: workspaces, current user, then the task list
// filtered by assignee.
type ClickUpFetcher struct {
	fetcher
	baseURL string
}

// NewClickUpFetcher creates a ClickUp fetcher.
func NewClickUpFetcher(httpClient *http.Client, creds port.CredentialStore, cfg resilience.Config, logger *zap.Logger, metrics *observability.Metrics) *ClickUpFetcher {
	return &ClickUpFetcher{
		fetcher: fetcher{
			httpClient: httpClient,
			creds:      creds,
			cb:         resilience.NewCircuitBreaker("clickup"),
			cfg:        cfg,
			logger:     logger,
			metrics:    metrics,
		},
		baseURL: clickUpAPIURL,
	}
}

type clickUpTeamsResponse struct {
	Teams []struct {
		ID string `json:"id"`
	} `json:"teams"`
}

type clickUpUserResponse struct {
	User struct {
		ID int64 `json:"id"`
	} `json:"user"`
}

type clickUpTasksResponse struct {
	Tasks []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Status struct {
			Status string `json:"status"`
		} `json:"status"`
		Assignees []struct {
			Username string `json:"username"`
		} `json:"assignees"`
		URL string `json:"url"`
	} `json:"tasks"`
}

// GetTasks lists the connected user's open tasks. Unconfigured yields the
// mock list; any failure in the chain yields an empty list, never an error.
func (f *ClickUpFetcher) GetTasks(ctx context.Context) ([]domain.TrackerTask, domain.FetchMeta) {
	ctx, span := tracer.Start(ctx, "ClickUp.GetTasks")
	defer span.End()

	creds, ok, err := f.credentials(ctx, domain.ProviderClickUp)
	if err != nil {
		return []domain.TrackerTask{}, f.meta(domain.ProviderClickUp, domain.SourceEmpty, err.Error())
	}
	token := creds["token"]
	if !ok || token == "" {
		return mockTrackerTasks(), f.meta(domain.ProviderClickUp, domain.SourceMock, "not configured")
	}

	header := http.Header{"Authorization": {token}}

	// 1) workspaces
	body, err := f.do(ctx, http.MethodGet, f.baseURL+"/team", header, nil)
	if err != nil {
		return []domain.TrackerTask{}, f.meta(domain.ProviderClickUp, domain.SourceEmpty, "list workspaces: "+err.Error())
	}
	var teams clickUpTeamsResponse
	if err := json.Unmarshal(body, &teams); err != nil || len(teams.Teams) == 0 {
		return []domain.TrackerTask{}, f.meta(domain.ProviderClickUp, domain.SourceEmpty, "no workspaces")
	}
	teamID := teams.Teams[0].ID

	// 2) current user, for the assignee filter
	body, err = f.do(ctx, http.MethodGet, f.baseURL+"/user", header, nil)
	if err != nil {
		return []domain.TrackerTask{}, f.meta(domain.ProviderClickUp, domain.SourceEmpty, "current user: "+err.Error())
	}
	var user clickUpUserResponse
	if err := json.Unmarshal(body, &user); err != nil || user.User.ID == 0 {
		return []domain.TrackerTask{}, f.meta(domain.ProviderClickUp, domain.SourceEmpty, "no user")
	}

	// 3) tasks assigned to that user
	endpoint := fmt.Sprintf("%s/team/%s/task?assignees%%5B%%5D=%d&include_closed=true", f.baseURL, teamID, user.User.ID)
	body, err = f.do(ctx, http.MethodGet, endpoint, header, nil)
	if err != nil {
		return []domain.TrackerTask{}, f.meta(domain.ProviderClickUp, domain.SourceEmpty, "list tasks: "+err.Error())
	}
	var tasksResp clickUpTasksResponse
	if err := json.Unmarshal(body, &tasksResp); err != nil {
		return []domain.TrackerTask{}, f.meta(domain.ProviderClickUp, domain.SourceEmpty, "decode tasks: "+err.Error())
	}

	tasks := make([]domain.TrackerTask, 0, len(tasksResp.Tasks))
	for _, t := range tasksResp.Tasks {
		assignees := make([]string, 0, len(t.Assignees))
		for _, a := range t.Assignees {
			assignees = append(assignees, a.Username)
		}
		tasks = append(tasks, domain.TrackerTask{
			ID:        t.ID,
			Name:      t.Name,
			Status:    t.Status.Status,
			Assignees: assignees,
			URL:       t.URL,
		})
	}

	return tasks, f.meta(domain.ProviderClickUp, domain.SourceLive, "")
}
