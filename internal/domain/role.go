package domain

// Role determines which navigation sections a user sees. Actual row access
// is enforced by Supabase RLS, not by this code.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleSales  Role = "sales"
	RoleViewer Role = "viewer"
)

// AllRoles lists every valid role, in privilege order.
var AllRoles = []Role{RoleAdmin, RoleEditor, RoleSales, RoleViewer}

// ParseRole returns the role for s, falling back to the least-privileged
// role when s is empty or unknown.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleSales, RoleViewer:
		return Role(s)
	default:
		return RoleViewer
	}
}

// Section is a navigable area of the dashboard.
type Section string

const (
	SectionDashboard  Section = "dashboard"
	SectionPipeline   Section = "pipeline"
	SectionTeam       Section = "team"
	SectionOperations Section = "operations"
	SectionApprovals  Section = "approvals"
	SectionMeetings   Section = "meetings"
	SectionReports    Section = "reports"
	SectionProcesses  Section = "processes"
	SectionClients    Section = "clients"
	SectionPortal     Section = "portal"
)
