package domain

// ApprovalStatus is the review state of a deliverable.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Approval is a deliverable submitted for client/manager review, linked to
// the task that produced it.
type Approval struct {
	ID          string         `json:"id"`
	TaskID      string         `json:"task_id"`
	ClientID    string         `json:"client_id,omitempty"`
	FileURL     string         `json:"file_url"`
	FileName    string         `json:"file_name"`
	Status      ApprovalStatus `json:"status"`
	Comment     string         `json:"comment,omitempty"`
	SubmittedBy string         `json:"submitted_by"`
	ReviewedBy  string         `json:"reviewed_by,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
}

// ApprovalRequest submits a deliverable for review.
type ApprovalRequest struct {
	TaskID   string `json:"task_id"`
	ClientID string `json:"client_id,omitempty"`
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
}

// ApprovalReviewRequest approves or rejects a pending approval.
type ApprovalReviewRequest struct {
	Status  string `json:"status"` // approved | rejected
	Comment string `json:"comment,omitempty"`
}
