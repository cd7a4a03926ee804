package domain

// TaskStatus is a kanban column.
type TaskStatus string

const (
	TaskTodo            TaskStatus = "todo"
	TaskInProgress      TaskStatus = "in_progress"
	TaskWaitingApproval TaskStatus = "waiting_approval"
	TaskDone            TaskStatus = "done"
)

// ValidTaskStatus reports whether s names a kanban column.
func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskTodo, TaskInProgress, TaskWaitingApproval, TaskDone:
		return true
	}
	return false
}

// TaskPriority orders cards within a column.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task is a kanban card. client_id and assignee_id are loose references;
// they are not validated against their tables here (Supabase FKs apply).
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	ClientID    string       `json:"client_id,omitempty"`
	AssigneeID  string       `json:"assignee_id,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     string       `json:"due_date,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	OrderIndex  int          `json:"order_index"`
	CreatedAt   string       `json:"created_at,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
}

// TaskRequest is the create/update body for a task.
type TaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ClientID    string   `json:"client_id,omitempty"`
	AssigneeID  string   `json:"assignee_id,omitempty"`
	Status      string   `json:"status,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// TaskMoveRequest moves a card to a column/position on the board.
type TaskMoveRequest struct {
	Status     string `json:"status"`
	OrderIndex int    `json:"order_index"`
}
