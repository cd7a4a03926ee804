package domain

// EOS-style artifacts: quarterly rocks, weekly scorecard, L10 meetings.

// Rock is a quarterly priority with an owner and a progress percentage.
type Rock struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id"`
	Progress    int    `json:"progress"`
	Status      string `json:"status"` // on_track | off_track | done
	Quarter     string `json:"quarter"`
	DueDate     string `json:"due_date,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// RockRequest is the create/update body for a rock.
type RockRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
	Progress    int    `json:"progress,omitempty"`
	Status      string `json:"status,omitempty"`
	Quarter     string `json:"quarter,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// ScorecardMetric is one weekly measurable with a target.
type ScorecardMetric struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	OwnerID string  `json:"owner_id"`
	Target  float64 `json:"target"`
	Actual  float64 `json:"actual"`
	Unit    string  `json:"unit,omitempty"`
	Week    string  `json:"week"`
	OnTrack bool    `json:"on_track"`
}

// ScorecardMetricRequest is the create/update body for a metric.
type ScorecardMetricRequest struct {
	Name    string  `json:"name"`
	OwnerID string  `json:"owner_id,omitempty"`
	Target  float64 `json:"target,omitempty"`
	Actual  float64 `json:"actual,omitempty"`
	Unit    string  `json:"unit,omitempty"`
	Week    string  `json:"week,omitempty"`
}

// MeetingStatus tracks the L10 agenda workflow.
type MeetingStatus string

const (
	MeetingScheduled  MeetingStatus = "scheduled"
	MeetingInProgress MeetingStatus = "in_progress"
	MeetingCompleted  MeetingStatus = "completed"
)

// MeetingL10 is a weekly level-10 meeting record. The agenda is a fixed
// data-entry sequence, not a scheduler.
type MeetingL10 struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Date            string        `json:"date"`
	DurationMinutes int           `json:"duration_minutes"`
	Score           int           `json:"score"`
	Status          MeetingStatus `json:"status"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       string        `json:"created_at,omitempty"`
}

// MeetingRequest is the create/update body for a meeting.
type MeetingRequest struct {
	Title           string `json:"title"`
	Date            string `json:"date,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// MeetingIssue is an IDS (identify/discuss/solve) item in a meeting.
type MeetingIssue struct {
	ID          string `json:"id"`
	MeetingID   string `json:"meeting_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
	Priority    string `json:"priority"` // low | medium | high
	Status      string `json:"status"`   // open | solved
	OrderIndex  int    `json:"order_index"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// MeetingHeadline is a good-news item shared at a meeting.
type MeetingHeadline struct {
	ID        string `json:"id"`
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
	Type      string `json:"type"` // customer | employee | personal
	OwnerID   string `json:"owner_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// MeetingTodo is a 7-day action item carried between meetings.
type MeetingTodo struct {
	ID        string `json:"id"`
	MeetingID string `json:"meeting_id,omitempty"`
	Title     string `json:"title"`
	OwnerID   string `json:"owner_id,omitempty"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"due_date,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
