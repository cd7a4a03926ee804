// Package handler wires the HTTP surface: the chi router, the JWT/session
// middleware, the role-based section guards and one handler file per
// feature area.
package handler

import (
	"context"
	"net/http"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Pinger probes the data store for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps collects everything the router needs.
type Deps struct {
	Sessions       *service.SessionService
	Workspace      *service.WorkspaceService
	Integrations   *service.IntegrationService
	Credentials    *service.CredentialService
	Dashboard      *service.DashboardService
	Watcher        *service.TaskWatcher
	Pinger         Pinger
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	AllowedOrigins []string
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract the dashboard SPA consumes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	logger := d.Logger

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(d.Pinger, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Autenticação (public)
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authLoginHandler(d.Sessions, logger))
			r.Post("/refresh", authRefreshHandler(d.Sessions, logger))

			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(d.Sessions, logger))
				r.Post("/logout", authLogoutHandler(d.Sessions, logger))
				r.Get("/session", authSessionHandler(logger))
			})
		})

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(d.Sessions, logger))

			// =============================================
			// Navegação
			// =============================================
			r.Get("/navigation", navigationHandler(logger))

			// =============================================
			// Dashboard
			// =============================================
			r.With(RequireSection(domain.SectionDashboard, logger)).
				Get("/dashboard", dashboardHandler(d.Dashboard, logger))

			// =============================================
			// Clientes - CRM
			// =============================================
			r.Route("/clients", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionClients, logger))
				r.Get("/", listClientsHandler(d.Workspace, logger))
				r.Post("/", createClientHandler(d.Workspace, logger))
				r.Get("/{clientId}", getClientHandler(d.Workspace, logger))
				r.Patch("/{clientId}", updateClientHandler(d.Workspace, logger))
				r.Delete("/{clientId}", deleteClientHandler(d.Workspace, logger))
			})

			// =============================================
			// Tarefas - kanban
			// =============================================
			r.Route("/tasks", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionDashboard, logger))
				r.Get("/", listTasksHandler(d.Workspace, logger))
				r.Post("/", createTaskHandler(d.Workspace, logger))
				r.Get("/events", taskEventsHandler(d.Watcher, logger))
				r.Patch("/{taskId}", updateTaskHandler(d.Workspace, logger))
				r.Patch("/{taskId}/move", moveTaskHandler(d.Workspace, logger))
				r.Delete("/{taskId}", deleteTaskHandler(d.Workspace, logger))
			})

			// =============================================
			// Pipeline de vendas
			// =============================================
			r.Route("/pipeline/deals", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionPipeline, logger))
				r.Get("/", listDealsHandler(d.Workspace, logger))
				r.Post("/", createDealHandler(d.Workspace, logger))
				r.Patch("/{dealId}", updateDealHandler(d.Workspace, logger))
				r.Delete("/{dealId}", deleteDealHandler(d.Workspace, logger))
			})

			// =============================================
			// Operações - rocks & scorecard
			// =============================================
			r.Route("/rocks", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionOperations, logger))
				r.Get("/", listRocksHandler(d.Workspace, logger))
				r.Post("/", createRockHandler(d.Workspace, logger))
				r.Patch("/{rockId}", updateRockHandler(d.Workspace, logger))
				r.Delete("/{rockId}", deleteRockHandler(d.Workspace, logger))
			})
			r.Route("/scorecard", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionOperations, logger))
				r.Get("/", listScorecardHandler(d.Workspace, logger))
				r.Post("/", createScorecardHandler(d.Workspace, logger))
				r.Patch("/{metricId}", updateScorecardHandler(d.Workspace, logger))
			})

			// =============================================
			// Aprovações
			// =============================================
			r.Route("/approvals", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionApprovals, logger))
				r.Get("/", listApprovalsHandler(d.Workspace, logger))
				r.Post("/", submitApprovalHandler(d.Workspace, logger))
				r.Post("/{approvalId}/review", reviewApprovalHandler(d.Workspace, logger))
			})

			// =============================================
			// Processos - biblioteca SOP (PARA)
			// =============================================
			r.Route("/sops", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionProcesses, logger))
				r.Get("/", listSOPsHandler(d.Workspace, logger))
				r.Post("/", createSOPHandler(d.Workspace, logger))
				r.Get("/{sopId}", getSOPHandler(d.Workspace, logger))
				r.Patch("/{sopId}", updateSOPHandler(d.Workspace, logger))
				r.Delete("/{sopId}", deleteSOPHandler(d.Workspace, logger))
			})

			// =============================================
			// Reuniões L10
			// =============================================
			r.Route("/meetings", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionMeetings, logger))
				r.Get("/", listMeetingsHandler(d.Workspace, logger))
				r.Post("/", createMeetingHandler(d.Workspace, logger))
				r.Get("/{meetingId}", getMeetingHandler(d.Workspace, logger))
				r.Patch("/{meetingId}", updateMeetingHandler(d.Workspace, logger))
				r.Post("/{meetingId}/start", startMeetingHandler(d.Workspace, logger))
				r.Post("/{meetingId}/complete", completeMeetingHandler(d.Workspace, logger))

				r.Get("/{meetingId}/issues", listIssuesHandler(d.Workspace, logger))
				r.Post("/{meetingId}/issues", createIssueHandler(d.Workspace, logger))
				r.Post("/issues/{issueId}/solve", solveIssueHandler(d.Workspace, logger))
				r.Patch("/issues/{issueId}", updateIssueHandler(d.Workspace, logger))

				r.Get("/{meetingId}/headlines", listHeadlinesHandler(d.Workspace, logger))
				r.Post("/{meetingId}/headlines", createHeadlineHandler(d.Workspace, logger))

				r.Get("/{meetingId}/todos", listTodosHandler(d.Workspace, logger))
				r.Post("/{meetingId}/todos", createTodoHandler(d.Workspace, logger))
				r.Patch("/todos/{todoId}", completeTodoHandler(d.Workspace, logger))
			})

			// =============================================
			// Equipe
			// =============================================
			r.Route("/team", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionTeam, logger))
				r.Get("/", listTeamHandler(d.Workspace, logger))
				r.With(RequireAdmin(logger)).
					Patch("/{userId}/role", changeRoleHandler(d.Workspace, logger))
			})

			// =============================================
			// Portal do cliente (viewer)
			// =============================================
			r.Route("/portal", func(r chi.Router) {
				r.Use(RequireSection(domain.SectionPortal, logger))
				r.Get("/", portalOverviewHandler(d.Workspace, logger))
				r.Get("/files", portalFilesHandler(d.Workspace, logger))
				r.Get("/approvals", portalApprovalsHandler(d.Workspace, logger))
				r.Post("/approvals/{approvalId}/review", portalReviewHandler(d.Workspace, logger))
			})

			// =============================================
			// Integrações
			// =============================================
			r.Route("/integrations", func(r chi.Router) {
				r.With(RequireAdmin(logger)).
					Put("/{provider}/credentials", saveCredentialsHandler(d.Credentials, logger))
				r.Get("/{provider}", getIntegrationHandler(d.Credentials, logger))
				r.Get("/meta/insights", metaInsightsHandler(d.Integrations, logger))
				r.Get("/clickup/tasks", clickupTasksHandler(d.Integrations, logger))
				r.Get("/notion/pages", notionPagesHandler(d.Integrations, logger))
				r.Get("/drive/files", driveFilesHandler(d.Integrations, logger))
			})

			// =============================================
			// Relatórios (admin)
			// =============================================
			r.With(RequireSection(domain.SectionReports, logger)).
				Get("/reports/summary", reportSummaryHandler(d.Dashboard, logger))
		})
	})

	return r
}
