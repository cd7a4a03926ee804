// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

// Authenticator wraps the remote auth provider (GoTrue).
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.TokenPair, error)
	RefreshSession(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	SignOut(ctx context.Context, accessToken string) error
}

// ProfileStore reads and mutates the profiles table.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error)
}

// CredentialStore persists one opaque credential blob per provider.
// Save must be an atomic upsert keyed on the provider column.
type CredentialStore interface {
	SaveCredentials(ctx context.Context, provider domain.Provider, creds map[string]string) (*domain.Integration, error)
	GetCredentials(ctx context.Context, provider domain.Provider) (*domain.Integration, error)
	ListIntegrations(ctx context.Context) ([]domain.Integration, error)
}

// AdsInsightsFetcher turns stored ads credentials into insight data,
// degrading to a fixed mock payload when disconnected or on failure.
type AdsInsightsFetcher interface {
	GetInsights(ctx context.Context, datePreset string) (*domain.AdsInsights, domain.FetchMeta)
}

// TrackerFetcher lists the connected task-tracker items for the linked user.
type TrackerFetcher interface {
	GetTasks(ctx context.Context) ([]domain.TrackerTask, domain.FetchMeta)
}

// WikiSearcher searches the connected wiki for pages.
type WikiSearcher interface {
	SearchPages(ctx context.Context, query string) ([]domain.WikiPage, domain.FetchMeta)
}

// FileLister lists files from the connected drive folder.
type FileLister interface {
	ListFiles(ctx context.Context, folderID string) ([]domain.DriveFile, domain.FetchMeta)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// WorkspaceStore defines all data operations for the dashboard feature
// pages. Implemented by the Supabase adapter.
type WorkspaceStore interface {
	// Clients
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
	CreateClient(ctx context.Context, req *domain.ClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, updates map[string]any) (*domain.Client, error)
	DeleteClient(ctx context.Context, clientID string) error

	// Tasks (kanban)
	ListTasks(ctx context.Context, clientID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, req *domain.TaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID string, updates map[string]any) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	TasksVersion(ctx context.Context) (string, error)

	// Pipeline deals
	ListDeals(ctx context.Context) ([]domain.PipelineDeal, error)
	CreateDeal(ctx context.Context, req *domain.DealRequest) (*domain.PipelineDeal, error)
	UpdateDeal(ctx context.Context, dealID string, updates map[string]any) (*domain.PipelineDeal, error)
	DeleteDeal(ctx context.Context, dealID string) error

	// Rocks & scorecard
	ListRocks(ctx context.Context, quarter string) ([]domain.Rock, error)
	CreateRock(ctx context.Context, req *domain.RockRequest) (*domain.Rock, error)
	UpdateRock(ctx context.Context, rockID string, updates map[string]any) (*domain.Rock, error)
	DeleteRock(ctx context.Context, rockID string) error
	ListScorecard(ctx context.Context, week string) ([]domain.ScorecardMetric, error)
	CreateScorecardMetric(ctx context.Context, req *domain.ScorecardMetricRequest) (*domain.ScorecardMetric, error)
	UpdateScorecardMetric(ctx context.Context, metricID string, updates map[string]any) (*domain.ScorecardMetric, error)

	// Approvals
	ListApprovals(ctx context.Context, status, clientID string) ([]domain.Approval, error)
	GetApproval(ctx context.Context, approvalID string) (*domain.Approval, error)
	CreateApproval(ctx context.Context, submittedBy string, req *domain.ApprovalRequest) (*domain.Approval, error)
	UpdateApproval(ctx context.Context, approvalID string, updates map[string]any) (*domain.Approval, error)

	// SOPs
	ListSOPs(ctx context.Context, filter domain.SOPFilter) ([]domain.SOP, error)
	GetSOP(ctx context.Context, sopID string) (*domain.SOP, error)
	CreateSOP(ctx context.Context, createdBy string, req *domain.SOPRequest) (*domain.SOP, error)
	UpdateSOP(ctx context.Context, sopID string, updates map[string]any) (*domain.SOP, error)
	DeleteSOP(ctx context.Context, sopID string) error

	// L10 meetings
	ListMeetings(ctx context.Context) ([]domain.MeetingL10, error)
	GetMeeting(ctx context.Context, meetingID string) (*domain.MeetingL10, error)
	CreateMeeting(ctx context.Context, req *domain.MeetingRequest) (*domain.MeetingL10, error)
	UpdateMeeting(ctx context.Context, meetingID string, updates map[string]any) (*domain.MeetingL10, error)
	ListIssues(ctx context.Context, meetingID string) ([]domain.MeetingIssue, error)
	CreateIssue(ctx context.Context, issue *domain.MeetingIssue) (*domain.MeetingIssue, error)
	UpdateIssue(ctx context.Context, issueID string, updates map[string]any) (*domain.MeetingIssue, error)
	ListHeadlines(ctx context.Context, meetingID string) ([]domain.MeetingHeadline, error)
	CreateHeadline(ctx context.Context, h *domain.MeetingHeadline) (*domain.MeetingHeadline, error)
	ListTodos(ctx context.Context, meetingID string) ([]domain.MeetingTodo, error)
	CreateTodo(ctx context.Context, todo *domain.MeetingTodo) (*domain.MeetingTodo, error)
	UpdateTodo(ctx context.Context, todoID string, updates map[string]any) (*domain.MeetingTodo, error)

	// Client files (portal)
	ListClientFiles(ctx context.Context, clientID string) ([]domain.ClientFile, error)
}
