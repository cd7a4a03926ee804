package domain

// ParaCategory classifies SOPs by the PARA method.
type ParaCategory string

const (
	ParaProjects  ParaCategory = "projects"
	ParaAreas     ParaCategory = "areas"
	ParaResources ParaCategory = "resources"
	ParaArchive   ParaCategory = "archive"
)

// ValidParaCategory reports whether s names a PARA bucket.
func ValidParaCategory(s string) bool {
	switch ParaCategory(s) {
	case ParaProjects, ParaAreas, ParaResources, ParaArchive:
		return true
	}
	return false
}

// SOP is a process document in the agency's library.
type SOP struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Category  ParaCategory `json:"category"`
	ClientID  string       `json:"client_id,omitempty"`
	Tags      []string     `json:"tags,omitempty"`
	CreatedBy string       `json:"created_by"`
	CreatedAt string       `json:"created_at,omitempty"`
	UpdatedAt string       `json:"updated_at,omitempty"`
}

// SOPRequest is the create/update body for a process document.
type SOPRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content,omitempty"`
	Category string   `json:"category,omitempty"`
	ClientID string   `json:"client_id,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// SOPFilter narrows the library listing.
type SOPFilter struct {
	Category string
	Tag      string
	Search   string
}
