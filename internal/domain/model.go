package domain

// Role is the authorization role attached to a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}

// Project status values
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectOnHold    = "on-hold"
)

// Task status values. The board advances todo → in-progress → review → done,
// but the update path accepts any target status; only timestamp stamping is
// state-aware.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in-progress"
	TaskReview     = "review"
	TaskDone       = "done"
)

// Task priority values
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Issue severity values
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Issue status values
const (
	IssueOpen       = "open"
	IssueInProgress = "in-progress"
	IssueResolved   = "resolved"
	IssueClosed     = "closed"
)

// Activity target types
const (
	TargetTask    = "task"
	TargetProject = "project"
	TargetIssue   = "issue"
	TargetMember  = "member"
)

func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

func ValidTaskStatus(s string) bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskDone:
		return true
	}
	return false
}

func ValidTaskPriority(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func ValidIssueSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

func ValidIssueStatus(s string) bool {
	switch s {
	case IssueOpen, IssueInProgress, IssueResolved, IssueClosed:
		return true
	}
	return false
}

// Principal is the authenticated actor performing an operation. The role is
// the sole authorization input; the id is used for audit records and for
// the self-role-change guard.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// User is an account document in the users collection. Timestamps are
// RFC3339 strings throughout; string order is chronological order, which
// the activity feed's descending sort relies on.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Role        Role   `json:"role"`
	Department  string `json:"department,omitempty"`
	Position    string `json:"position,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// Project groups tasks, issues and members. createdBy is always present in
// members; the member set grows via explicit add and never shrinks
// automatically.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	CreatedBy   string   `json:"createdBy"`
	Members     []string `json:"members"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// Task is a kanban card. startedAt is stamped exactly once on the first
// transition into in-progress, completedAt exactly once on the first
// transition into done; neither is ever cleared by later edits.
type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"projectId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	AssignedTo  string   `json:"assignedTo,omitempty"`
	AssignedBy  string   `json:"assignedBy"`
	StartedAt   string   `json:"startedAt,omitempty"`
	CompletedAt string   `json:"completedAt,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// Issue is a reported defect, optionally linked to a task. resolvedAt is
// stamped exactly once, on the first transition into resolved or closed.
type Issue struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	TaskID      string `json:"taskId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
	ReportedBy  string `json:"reportedBy"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	ResolvedAt  string `json:"resolvedAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Activity is one append-only audit record: who did what to which entity,
// when. Exactly one record is produced per successful mutating call.
type Activity struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId,omitempty"`
	UserID      string `json:"userId"`
	Action      string `json:"action"`
	TargetType  string `json:"targetType"`
	TargetID    string `json:"targetId"`
	TargetTitle string `json:"targetTitle"`
	CreatedAt   string `json:"createdAt"`
}

// TeamMember is a user enriched with per-member task aggregates, recomputed
// on every read.
type TeamMember struct {
	User
	TasksCompleted  int `json:"tasksCompleted"`
	TasksInProgress int `json:"tasksInProgress"`
}
