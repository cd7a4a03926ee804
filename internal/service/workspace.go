package service

import (
	"context"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var workspaceTracer = otel.Tracer("service/workspace")

// WorkspaceService implements the feature-page operations: clients, kanban
// tasks, pipeline deals, rocks, scorecard, approvals, SOPs, meetings, team
// and the client portal. Route-level access is enforced by the section
// middleware; this layer validates inputs and owns cross-row rules.
type WorkspaceService struct {
	store    port.WorkspaceStore
	profiles port.ProfileStore
	logger   *zap.Logger
}

// NewWorkspaceService creates the workspace service.
func NewWorkspaceService(store port.WorkspaceStore, profiles port.ProfileStore, logger *zap.Logger) *WorkspaceService {
	return &WorkspaceService{store: store, profiles: profiles, logger: logger}
}

// ============================================================
// Clients - CRM
// ============================================================

func (s *WorkspaceService) ListClients(ctx context.Context) ([]domain.Client, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListClients")
	defer span.End()

	return s.store.ListClients(ctx)
}

func (s *WorkspaceService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.GetClient")
	defer span.End()

	return s.store.GetClient(ctx, clientID)
}

func (s *WorkspaceService) CreateClient(ctx context.Context, req *domain.ClientRequest) (*domain.Client, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateClient")
	defer span.End()

	if req.CompanyName == "" {
		return nil, &domain.ErrValidation{Field: "company_name", Message: "nome da empresa é obrigatório"}
	}
	if req.Status != "" && !validClientStatus(req.Status) {
		return nil, &domain.ErrValidation{Field: "status", Message: "status inválido: " + req.Status}
	}

	client, err := s.store.CreateClient(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("client created",
		zap.String("client_id", client.ID),
		zap.String("company", client.CompanyName),
	)
	return client, nil
}

func (s *WorkspaceService) UpdateClient(ctx context.Context, clientID string, updates map[string]any) (*domain.Client, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.UpdateClient")
	defer span.End()

	if status, ok := updates["status"].(string); ok && !validClientStatus(status) {
		return nil, &domain.ErrValidation{Field: "status", Message: "status inválido: " + status}
	}
	return s.store.UpdateClient(ctx, clientID, updates)
}

func (s *WorkspaceService) DeleteClient(ctx context.Context, clientID string) error {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.DeleteClient")
	defer span.End()

	if err := s.store.DeleteClient(ctx, clientID); err != nil {
		return err
	}
	s.logger.Info("client deleted", zap.String("client_id", clientID))
	return nil
}

func validClientStatus(s string) bool {
	switch domain.ClientStatus(s) {
	case domain.ClientActive, domain.ClientNegotiation, domain.ClientChurn:
		return true
	}
	return false
}

// ============================================================
// Tasks - kanban board
// ============================================================

func (s *WorkspaceService) ListTasks(ctx context.Context, clientID string) ([]domain.Task, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListTasks")
	defer span.End()

	return s.store.ListTasks(ctx, clientID)
}

func (s *WorkspaceService) CreateTask(ctx context.Context, req *domain.TaskRequest) (*domain.Task, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateTask")
	defer span.End()

	if req.Title == "" {
		return nil, &domain.ErrValidation{Field: "title", Message: "título é obrigatório"}
	}
	if req.Status != "" && !domain.ValidTaskStatus(req.Status) {
		return nil, &domain.ErrValidation{Field: "status", Message: "coluna inválida: " + req.Status}
	}
	return s.store.CreateTask(ctx, req)
}

func (s *WorkspaceService) UpdateTask(ctx context.Context, taskID string, updates map[string]any) (*domain.Task, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.UpdateTask")
	defer span.End()

	if status, ok := updates["status"].(string); ok && !domain.ValidTaskStatus(status) {
		return nil, &domain.ErrValidation{Field: "status", Message: "coluna inválida: " + status}
	}
	return s.store.UpdateTask(ctx, taskID, updates)
}

// MoveTask drags a card to a column/position. The board broadcasts a
// reload hint when the watcher notices the table version change.
func (s *WorkspaceService) MoveTask(ctx context.Context, taskID string, req *domain.TaskMoveRequest) (*domain.Task, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.MoveTask")
	defer span.End()
	span.SetAttributes(attribute.String("task.id", taskID), attribute.String("task.status", req.Status))

	if !domain.ValidTaskStatus(req.Status) {
		return nil, &domain.ErrValidation{Field: "status", Message: "coluna inválida: " + req.Status}
	}
	return s.store.UpdateTask(ctx, taskID, map[string]any{
		"status":      req.Status,
		"order_index": req.OrderIndex,
	})
}

func (s *WorkspaceService) DeleteTask(ctx context.Context, taskID string) error {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.DeleteTask")
	defer span.End()

	return s.store.DeleteTask(ctx, taskID)
}

// ============================================================
// Pipeline deals
// ============================================================

func (s *WorkspaceService) ListDeals(ctx context.Context) ([]domain.PipelineDeal, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListDeals")
	defer span.End()

	return s.store.ListDeals(ctx)
}

func (s *WorkspaceService) CreateDeal(ctx context.Context, req *domain.DealRequest) (*domain.PipelineDeal, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateDeal")
	defer span.End()

	if req.CompanyName == "" {
		return nil, &domain.ErrValidation{Field: "company_name", Message: "nome da empresa é obrigatório"}
	}
	if req.Stage != "" && !validDealStage(req.Stage) {
		return nil, &domain.ErrValidation{Field: "stage", Message: "estágio inválido: " + req.Stage}
	}
	if req.Probability < 0 || req.Probability > 100 {
		return nil, &domain.ErrValidation{Field: "probability", Message: "probabilidade deve estar entre 0 e 100"}
	}
	return s.store.CreateDeal(ctx, req)
}

func (s *WorkspaceService) UpdateDeal(ctx context.Context, dealID string, updates map[string]any) (*domain.PipelineDeal, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.UpdateDeal")
	defer span.End()

	if stage, ok := updates["stage"].(string); ok && !validDealStage(stage) {
		return nil, &domain.ErrValidation{Field: "stage", Message: "estágio inválido: " + stage}
	}
	return s.store.UpdateDeal(ctx, dealID, updates)
}

func (s *WorkspaceService) DeleteDeal(ctx context.Context, dealID string) error {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.DeleteDeal")
	defer span.End()

	return s.store.DeleteDeal(ctx, dealID)
}

func validDealStage(s string) bool {
	switch domain.DealStage(s) {
	case domain.StageLead, domain.StageProposal, domain.StageNegotiation,
		domain.StageClosedWon, domain.StageClosedLost:
		return true
	}
	return false
}

// ============================================================
// Team
// ============================================================

func (s *WorkspaceService) ListTeam(ctx context.Context) ([]domain.Profile, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListTeam")
	defer span.End()

	return s.profiles.ListProfiles(ctx)
}

// ChangeRole updates a member's role. Only admins get here (route guard),
// but the rule is restated so a miswired route cannot skip it.
func (s *WorkspaceService) ChangeRole(ctx context.Context, actor *domain.Session, userID, role string) (*domain.Profile, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ChangeRole")
	defer span.End()
	span.SetAttributes(attribute.String("target.id", userID), attribute.String("target.role", role))

	if !actor.IsAdmin {
		return nil, &domain.ErrForbidden{Action: "alterar papel de usuário"}
	}
	if domain.ParseRole(role) != domain.Role(role) {
		return nil, &domain.ErrValidation{Field: "role", Message: "papel inválido: " + role}
	}
	if actor.UserID == userID && domain.Role(role) != domain.RoleAdmin {
		// Last-admin lockout guard: an admin cannot demote themselves.
		return nil, &domain.ErrValidation{Field: "role", Message: "não é possível rebaixar o próprio papel"}
	}

	profile, err := s.profiles.UpdateRole(ctx, userID, domain.Role(role))
	if err != nil {
		return nil, err
	}
	s.logger.Info("role changed",
		zap.String("actor", actor.UserID),
		zap.String("user_id", userID),
		zap.String("role", role),
	)
	return profile, nil
}
