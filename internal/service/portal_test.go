package service_test

import (
	"context"
	"testing"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
)

func viewerSession(clientID string) *domain.Session {
	return &domain.Session{
		UserID:   "viewer-1",
		Role:     domain.RoleViewer,
		IsViewer: true,
		Profile:  &domain.Profile{ID: "viewer-1", Role: domain.RoleViewer, ClientID: clientID},
	}
}

func TestPortalOverview_ScopedToLinkedClient(t *testing.T) {
	store := newFakeStore()
	store.clients["client-1"] = &domain.Client{ID: "client-1", CompanyName: "Padaria do Zé"}
	store.files["client-1"] = []domain.ClientFile{{ID: "file-1", ClientID: "client-1", FileName: "contrato.pdf"}}
	store.approvals["approval-1"] = &domain.Approval{ID: "approval-1", ClientID: "client-1", Status: domain.ApprovalPending}
	store.approvals["approval-2"] = &domain.Approval{ID: "approval-2", ClientID: "client-2", Status: domain.ApprovalPending}
	svc := newWorkspaceService(store, &mockProfileStore{})

	view, err := svc.PortalOverview(context.Background(), viewerSession("client-1"))
	if err != nil {
		t.Fatalf("expected overview to load, got %v", err)
	}
	if view.Client.CompanyName != "Padaria do Zé" {
		t.Errorf("unexpected client: %+v", view.Client)
	}
	if len(view.Files) != 1 {
		t.Errorf("expected 1 file, got %d", len(view.Files))
	}
	if len(view.Approvals) != 1 || view.Approvals[0].ID != "approval-1" {
		t.Errorf("expected only the linked client's approvals, got %+v", view.Approvals)
	}
}

func TestPortal_NoLinkedClientIsForbidden(t *testing.T) {
	svc := newWorkspaceService(newFakeStore(), &mockProfileStore{})

	_, err := svc.PortalOverview(context.Background(), viewerSession(""))
	if _, ok := err.(*domain.ErrForbidden); !ok {
		t.Fatalf("expected forbidden without a linked client, got %v", err)
	}

	_, err = svc.PortalFiles(context.Background(), &domain.Session{UserID: "x", Role: domain.RoleViewer})
	if _, ok := err.(*domain.ErrForbidden); !ok {
		t.Fatalf("expected forbidden without a profile, got %v", err)
	}
}

func TestPortalApprovals_PendingOnly(t *testing.T) {
	store := newFakeStore()
	store.approvals["approval-1"] = &domain.Approval{ID: "approval-1", ClientID: "client-1", Status: domain.ApprovalPending}
	store.approvals["approval-2"] = &domain.Approval{ID: "approval-2", ClientID: "client-1", Status: domain.ApprovalApproved}
	svc := newWorkspaceService(store, &mockProfileStore{})

	approvals, err := svc.PortalApprovals(context.Background(), viewerSession("client-1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(approvals) != 1 || approvals[0].ID != "approval-1" {
		t.Errorf("expected only the pending approval, got %+v", approvals)
	}
}

func TestPortalReviewApproval_OwnClientOnly(t *testing.T) {
	store := newFakeStore()
	store.tasks["task-1"] = &domain.Task{ID: "task-1", Status: domain.TaskWaitingApproval}
	store.approvals["approval-1"] = &domain.Approval{ID: "approval-1", TaskID: "task-1", ClientID: "client-2", Status: domain.ApprovalPending}
	svc := newWorkspaceService(store, &mockProfileStore{})

	_, err := svc.PortalReviewApproval(context.Background(), viewerSession("client-1"), "approval-1", &domain.ApprovalReviewRequest{Status: "approved"})
	if _, ok := err.(*domain.ErrForbidden); !ok {
		t.Fatalf("expected forbidden for another client's approval, got %v", err)
	}
}

func TestPortalReviewApproval_Approves(t *testing.T) {
	store := newFakeStore()
	store.tasks["task-1"] = &domain.Task{ID: "task-1", Status: domain.TaskWaitingApproval}
	store.approvals["approval-1"] = &domain.Approval{ID: "approval-1", TaskID: "task-1", ClientID: "client-1", Status: domain.ApprovalPending}
	svc := newWorkspaceService(store, &mockProfileStore{})

	reviewed, err := svc.PortalReviewApproval(context.Background(), viewerSession("client-1"), "approval-1", &domain.ApprovalReviewRequest{Status: "approved"})
	if err != nil {
		t.Fatalf("expected portal review to succeed, got %v", err)
	}
	if reviewed.Status != domain.ApprovalApproved {
		t.Errorf("expected approved, got %s", reviewed.Status)
	}
	if store.tasks["task-1"].Status != domain.TaskDone {
		t.Errorf("expected source task done, got %s", store.tasks["task-1"].Status)
	}
}
