// Package service holds the application services: session/profile
// management, the role-based access policy, credential storage, the
// provider fetch orchestration, workspace CRUD and the dashboard
// aggregation.
package service

import "github.com/agenciaturbo/turbo-ops-go/internal/domain"

// sectionsByRole is the navigation policy. It decides what the sidebar
// shows and which routes answer, not what rows a query returns; row access
// stays with Supabase RLS.
var sectionsByRole = map[domain.Role][]domain.Section{
	domain.RoleAdmin: {
		domain.SectionDashboard,
		domain.SectionPipeline,
		domain.SectionTeam,
		domain.SectionOperations,
		domain.SectionApprovals,
		domain.SectionMeetings,
		domain.SectionReports,
		domain.SectionProcesses,
		domain.SectionClients,
	},
	domain.RoleEditor: {
		domain.SectionDashboard,
		domain.SectionOperations,
		domain.SectionApprovals,
		domain.SectionMeetings,
		domain.SectionProcesses,
		domain.SectionClients,
	},
	domain.RoleSales: {
		domain.SectionDashboard,
		domain.SectionPipeline,
		domain.SectionProcesses,
		domain.SectionClients,
	},
	// Viewers (client accounts) never see the internal navigation, only
	// their portal.
	domain.RoleViewer: {
		domain.SectionPortal,
	},
}

// VisibleSections returns the ordered navigation sections for role.
// Unknown roles collapse to the viewer list.
func VisibleSections(role domain.Role) []domain.Section {
	sections, ok := sectionsByRole[role]
	if !ok {
		sections = sectionsByRole[domain.RoleViewer]
	}
	out := make([]domain.Section, len(sections))
	copy(out, sections)
	return out
}

// CanAccess reports whether role may open section.
func CanAccess(role domain.Role, section domain.Section) bool {
	for _, s := range sectionsByRole[role] {
		if s == section {
			return true
		}
	}
	return false
}
