package service

import (
	"context"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Rocks - quarterly priorities
// ============================================================

func (s *WorkspaceService) ListRocks(ctx context.Context, quarter string) ([]domain.Rock, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListRocks")
	defer span.End()

	return s.store.ListRocks(ctx, quarter)
}

func (s *WorkspaceService) CreateRock(ctx context.Context, req *domain.RockRequest) (*domain.Rock, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateRock")
	defer span.End()

	if req.Title == "" {
		return nil, &domain.ErrValidation{Field: "title", Message: "título é obrigatório"}
	}
	if req.Progress < 0 || req.Progress > 100 {
		return nil, &domain.ErrValidation{Field: "progress", Message: "progresso deve estar entre 0 e 100"}
	}
	return s.store.CreateRock(ctx, req)
}

func (s *WorkspaceService) UpdateRock(ctx context.Context, rockID string, updates map[string]any) (*domain.Rock, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.UpdateRock")
	defer span.End()

	if p, ok := updates["progress"].(float64); ok && (p < 0 || p > 100) {
		return nil, &domain.ErrValidation{Field: "progress", Message: "progresso deve estar entre 0 e 100"}
	}
	return s.store.UpdateRock(ctx, rockID, updates)
}

func (s *WorkspaceService) DeleteRock(ctx context.Context, rockID string) error {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.DeleteRock")
	defer span.End()

	return s.store.DeleteRock(ctx, rockID)
}

// ============================================================
// Scorecard - weekly measurables
// ============================================================

func (s *WorkspaceService) ListScorecard(ctx context.Context, week string) ([]domain.ScorecardMetric, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListScorecard")
	defer span.End()

	return s.store.ListScorecard(ctx, week)
}

func (s *WorkspaceService) CreateScorecardMetric(ctx context.Context, req *domain.ScorecardMetricRequest) (*domain.ScorecardMetric, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateScorecardMetric")
	defer span.End()

	if req.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "nome é obrigatório"}
	}
	return s.store.CreateScorecardMetric(ctx, req)
}

func (s *WorkspaceService) UpdateScorecardMetric(ctx context.Context, metricID string, updates map[string]any) (*domain.ScorecardMetric, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.UpdateScorecardMetric")
	defer span.End()

	return s.store.UpdateScorecardMetric(ctx, metricID, updates)
}

// ============================================================
// Approvals - deliverable review workflow
// ============================================================

func (s *WorkspaceService) ListApprovals(ctx context.Context, status, clientID string) ([]domain.Approval, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListApprovals")
	defer span.End()

	if status != "" && !validApprovalStatus(status) {
		return nil, &domain.ErrValidation{Field: "status", Message: "status inválido: " + status}
	}
	return s.store.ListApprovals(ctx, status, clientID)
}

// SubmitApproval records a deliverable for review, pending state.
func (s *WorkspaceService) SubmitApproval(ctx context.Context, submittedBy string, req *domain.ApprovalRequest) (*domain.Approval, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.SubmitApproval")
	defer span.End()

	if req.TaskID == "" {
		return nil, &domain.ErrValidation{Field: "task_id", Message: "tarefa de origem é obrigatória"}
	}
	if req.FileURL == "" || req.FileName == "" {
		return nil, &domain.ErrValidation{Field: "file_url", Message: "arquivo é obrigatório"}
	}

	approval, err := s.store.CreateApproval(ctx, submittedBy, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("approval submitted",
		zap.String("approval_id", approval.ID),
		zap.String("task_id", req.TaskID),
	)
	return approval, nil
}

// ReviewApproval approves or rejects a pending item. Re-reviewing a closed
// approval is a conflict, not an overwrite.
func (s *WorkspaceService) ReviewApproval(ctx context.Context, reviewerID, approvalID string, req *domain.ApprovalReviewRequest) (*domain.Approval, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ReviewApproval")
	defer span.End()
	span.SetAttributes(attribute.String("approval.id", approvalID), attribute.String("verdict", req.Status))

	if req.Status != string(domain.ApprovalApproved) && req.Status != string(domain.ApprovalRejected) {
		return nil, &domain.ErrValidation{Field: "status", Message: "veredito deve ser approved ou rejected"}
	}

	current, err := s.store.GetApproval(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.ApprovalPending {
		return nil, &domain.ErrConflict{Message: "aprovação já revisada"}
	}

	updated, err := s.store.UpdateApproval(ctx, approvalID, map[string]any{
		"status":      req.Status,
		"comment":     req.Comment,
		"reviewed_by": reviewerID,
	})
	if err != nil {
		return nil, err
	}

	// An approved deliverable moves its source task out of the waiting
	// column; a rejection sends it back to in_progress.
	next := string(domain.TaskDone)
	if req.Status == string(domain.ApprovalRejected) {
		next = string(domain.TaskInProgress)
	}
	if _, err := s.store.UpdateTask(ctx, updated.TaskID, map[string]any{"status": next}); err != nil {
		s.logger.Warn("approval reviewed but task transition failed",
			zap.String("approval_id", approvalID),
			zap.String("task_id", updated.TaskID),
			zap.Error(err),
		)
	}

	s.logger.Info("approval reviewed",
		zap.String("approval_id", approvalID),
		zap.String("verdict", req.Status),
		zap.String("reviewer", reviewerID),
	)
	return updated, nil
}

func validApprovalStatus(s string) bool {
	switch domain.ApprovalStatus(s) {
	case domain.ApprovalPending, domain.ApprovalApproved, domain.ApprovalRejected:
		return true
	}
	return false
}

// ============================================================
// SOPs - process library (PARA)
// ============================================================

func (s *WorkspaceService) ListSOPs(ctx context.Context, filter domain.SOPFilter) ([]domain.SOP, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.ListSOPs")
	defer span.End()

	if filter.Category != "" && !domain.ValidParaCategory(filter.Category) {
		return nil, &domain.ErrValidation{Field: "category", Message: "categoria PARA inválida: " + filter.Category}
	}
	return s.store.ListSOPs(ctx, filter)
}

func (s *WorkspaceService) GetSOP(ctx context.Context, sopID string) (*domain.SOP, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.GetSOP")
	defer span.End()

	return s.store.GetSOP(ctx, sopID)
}

func (s *WorkspaceService) CreateSOP(ctx context.Context, createdBy string, req *domain.SOPRequest) (*domain.SOP, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.CreateSOP")
	defer span.End()

	if req.Title == "" {
		return nil, &domain.ErrValidation{Field: "title", Message: "título é obrigatório"}
	}
	if req.Category != "" && !domain.ValidParaCategory(req.Category) {
		return nil, &domain.ErrValidation{Field: "category", Message: "categoria PARA inválida: " + req.Category}
	}
	return s.store.CreateSOP(ctx, createdBy, req)
}

func (s *WorkspaceService) UpdateSOP(ctx context.Context, sopID string, updates map[string]any) (*domain.SOP, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.UpdateSOP")
	defer span.End()

	if cat, ok := updates["category"].(string); ok && !domain.ValidParaCategory(cat) {
		return nil, &domain.ErrValidation{Field: "category", Message: "categoria PARA inválida: " + cat}
	}
	return s.store.UpdateSOP(ctx, sopID, updates)
}

func (s *WorkspaceService) DeleteSOP(ctx context.Context, sopID string) error {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.DeleteSOP")
	defer span.End()

	return s.store.DeleteSOP(ctx, sopID)
}
