package service

import (
	"context"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

// PortalView is what a client account sees: its own record, shared files
// and the deliverables awaiting its review.
type PortalView struct {
	Client    *domain.Client      `json:"client"`
	Files     []domain.ClientFile `json:"files"`
	Approvals []domain.Approval   `json:"approvals"`
}

// portalClientID resolves the caller's client scope. Viewer accounts carry
// a client_id on their profile; anyone without one has no portal.
func portalClientID(session *domain.Session) (string, error) {
	if session.Profile == nil || session.Profile.ClientID == "" {
		return "", &domain.ErrForbidden{Action: "acessar o portal sem cliente vinculado"}
	}
	return session.Profile.ClientID, nil
}

// PortalOverview loads the portal landing data, scoped to the caller's
// linked client.
func (s *WorkspaceService) PortalOverview(ctx context.Context, session *domain.Session) (*PortalView, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.PortalOverview")
	defer span.End()

	clientID, err := portalClientID(session)
	if err != nil {
		return nil, err
	}

	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	files, err := s.store.ListClientFiles(ctx, clientID)
	if err != nil {
		return nil, err
	}
	approvals, err := s.store.ListApprovals(ctx, "", clientID)
	if err != nil {
		return nil, err
	}

	return &PortalView{Client: client, Files: files, Approvals: approvals}, nil
}

// PortalFiles lists the caller's shared files.
func (s *WorkspaceService) PortalFiles(ctx context.Context, session *domain.Session) ([]domain.ClientFile, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.PortalFiles")
	defer span.End()

	clientID, err := portalClientID(session)
	if err != nil {
		return nil, err
	}
	return s.store.ListClientFiles(ctx, clientID)
}

// PortalApprovals lists the deliverables pending the caller's review.
func (s *WorkspaceService) PortalApprovals(ctx context.Context, session *domain.Session) ([]domain.Approval, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.PortalApprovals")
	defer span.End()

	clientID, err := portalClientID(session)
	if err != nil {
		return nil, err
	}
	return s.store.ListApprovals(ctx, string(domain.ApprovalPending), clientID)
}

// PortalReviewApproval lets the client approve or reject a deliverable,
// but only one scoped to its own client id.
func (s *WorkspaceService) PortalReviewApproval(ctx context.Context, session *domain.Session, approvalID string, req *domain.ApprovalReviewRequest) (*domain.Approval, error) {
	ctx, span := workspaceTracer.Start(ctx, "WorkspaceService.PortalReviewApproval")
	defer span.End()

	clientID, err := portalClientID(session)
	if err != nil {
		return nil, err
	}

	approval, err := s.store.GetApproval(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if approval.ClientID != clientID {
		return nil, &domain.ErrForbidden{Action: "revisar aprovação de outro cliente"}
	}

	return s.ReviewApproval(ctx, session.UserID, approvalID, req)
}
