package service_test

import (
	"testing"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/service"
)

func TestVisibleSections_Admin(t *testing.T) {
	sections := service.VisibleSections(domain.RoleAdmin)
	if len(sections) != 9 {
		t.Fatalf("expected 9 sections for admin, got %d: %v", len(sections), sections)
	}
	if sections[0] != domain.SectionDashboard {
		t.Errorf("expected dashboard first, got %s", sections[0])
	}
	for _, s := range sections {
		if s == domain.SectionPortal {
			t.Error("admin navigation must not include the client portal")
		}
	}
}

func TestVisibleSections_Sales(t *testing.T) {
	sections := service.VisibleSections(domain.RoleSales)
	want := []domain.Section{
		domain.SectionDashboard,
		domain.SectionPipeline,
		domain.SectionProcesses,
		domain.SectionClients,
	}
	if len(sections) != len(want) {
		t.Fatalf("expected %d sections for sales, got %d: %v", len(want), len(sections), sections)
	}
	for i, s := range want {
		if sections[i] != s {
			t.Errorf("section %d: expected %s, got %s", i, s, sections[i])
		}
	}
}

func TestVisibleSections_ViewerIsPortalOnly(t *testing.T) {
	sections := service.VisibleSections(domain.RoleViewer)
	if len(sections) != 1 || sections[0] != domain.SectionPortal {
		t.Fatalf("expected viewer to see only the portal, got %v", sections)
	}
}

func TestVisibleSections_UnknownRoleCollapsesToViewer(t *testing.T) {
	sections := service.VisibleSections(domain.Role("superuser"))
	if len(sections) != 1 || sections[0] != domain.SectionPortal {
		t.Fatalf("expected unknown role to get the viewer list, got %v", sections)
	}
}

func TestVisibleSections_ReturnsCopy(t *testing.T) {
	first := service.VisibleSections(domain.RoleSales)
	first[0] = domain.SectionTeam

	second := service.VisibleSections(domain.RoleSales)
	if second[0] != domain.SectionDashboard {
		t.Error("mutating the returned slice must not change the policy")
	}
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		role    domain.Role
		section domain.Section
		want    bool
	}{
		{domain.RoleAdmin, domain.SectionTeam, true},
		{domain.RoleAdmin, domain.SectionReports, true},
		{domain.RoleEditor, domain.SectionApprovals, true},
		{domain.RoleEditor, domain.SectionPipeline, false},
		{domain.RoleEditor, domain.SectionTeam, false},
		{domain.RoleSales, domain.SectionPipeline, true},
		{domain.RoleSales, domain.SectionApprovals, false},
		{domain.RoleViewer, domain.SectionPortal, true},
		{domain.RoleViewer, domain.SectionDashboard, false},
	}

	for _, tt := range tests {
		if got := service.CanAccess(tt.role, tt.section); got != tt.want {
			t.Errorf("CanAccess(%s, %s) = %v, want %v", tt.role, tt.section, got, tt.want)
		}
	}
}
