package domain

// ClientStatus is the lifecycle state of an agency client.
type ClientStatus string

const (
	ClientActive      ClientStatus = "active"
	ClientNegotiation ClientStatus = "negotiation"
	ClientChurn       ClientStatus = "churn"
)

// Client is an agency account managed by the CRM screens.
type Client struct {
	ID               string       `json:"id"`
	CompanyName      string       `json:"company_name"`
	DecisionMaker    string       `json:"decision_maker"`
	Email            string       `json:"email,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	Niche            string       `json:"niche"`
	Status           ClientStatus `json:"status"`
	ContractValue    float64      `json:"contract_value"`
	ContractDuration int          `json:"contract_duration"`
	StartDate        string       `json:"start_date"`
	LTV              float64      `json:"ltv"`
	DriveLink        string       `json:"drive_link,omitempty"`
	Notes            string       `json:"notes,omitempty"`
	CreatedAt        string       `json:"created_at,omitempty"`
}

// ClientRequest is the create/update body for a client.
type ClientRequest struct {
	CompanyName      string  `json:"company_name"`
	DecisionMaker    string  `json:"decision_maker"`
	Email            string  `json:"email,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	Niche            string  `json:"niche,omitempty"`
	Status           string  `json:"status,omitempty"`
	ContractValue    float64 `json:"contract_value,omitempty"`
	ContractDuration int     `json:"contract_duration,omitempty"`
	StartDate        string  `json:"start_date,omitempty"`
	DriveLink        string  `json:"drive_link,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

// ClientFile is a stored file reference scoped to one client, listed in the
// client portal.
type ClientFile struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	FileName  string `json:"file_name"`
	FilePath  string `json:"file_path"`
	FileSize  int64  `json:"file_size"`
	MimeType  string `json:"mime_type"`
	CreatedAt string `json:"created_at,omitempty"`
}
