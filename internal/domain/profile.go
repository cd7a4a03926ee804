package domain

import "strings"

// Profile is the application-level user record, one row per auth account.
// Distinct from the raw GoTrue identity, which only carries id + email.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      Role   `json:"role"`
	ClientID  string `json:"client_id,omitempty"` // viewer role: back-reference to a Client
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// FallbackProfile synthesizes an in-memory profile for an account with no
// profiles row, so a fresh sign-in never deadlocks the UI. The role is
// viewer: defaulting a missing profile to anything higher would be a
// privilege escalation.
func FallbackProfile(userID, email string) *Profile {
	name := "Usuário"
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return &Profile{
		ID:       userID,
		Email:    email,
		FullName: name,
		Role:     RoleViewer,
	}
}

// Session describes the authenticated caller as derived from the access
// token plus the profile row.
type Session struct {
	UserID          string    `json:"user_id"`
	Email           string    `json:"email"`
	Profile         *Profile  `json:"profile"`
	Role            Role      `json:"role"`
	IsAdmin         bool      `json:"is_admin"`
	IsEditor        bool      `json:"is_editor"`
	IsSales         bool      `json:"is_sales"`
	IsViewer        bool      `json:"is_viewer"`
	IsAuthenticated bool      `json:"is_authenticated"`
	Sections        []Section `json:"sections"`
}
