package domain

// DealStage is a sales pipeline column.
type DealStage string

const (
	StageLead        DealStage = "lead"
	StageProposal    DealStage = "proposal"
	StageNegotiation DealStage = "negotiation"
	StageClosedWon   DealStage = "closed_won"
	StageClosedLost  DealStage = "closed_lost"
)

// PipelineDeal is a prospective contract tracked on the sales board.
type PipelineDeal struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email,omitempty"`
	Value       float64   `json:"value"`
	Stage       DealStage `json:"stage"`
	Probability int       `json:"probability"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   string    `json:"created_at,omitempty"`
}

// DealRequest is the create/update body for a deal.
type DealRequest struct {
	CompanyName string  `json:"company_name"`
	ContactName string  `json:"contact_name"`
	Email       string  `json:"email,omitempty"`
	Value       float64 `json:"value,omitempty"`
	Stage       string  `json:"stage,omitempty"`
	Probability int     `json:"probability,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}
