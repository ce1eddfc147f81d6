package model

import "time"

// Role classifies an account.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTeam   Role = "team"
	RoleClient Role = "client"
)

// ProjectStatus enumerates the lifecycle states of a project.
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// TaskStatus enumerates the board columns a task moves through.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
)

// TaskPriority orders tasks within a column.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// User represents an account in the system.
type User struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"displayName,omitempty"`
	Role         Role      `json:"role"`
	CreationTime time.Time `json:"creationTime"`
}

// Project groups tasks under an owning client.
type Project struct {
	ProjectID    string        `json:"projectId"`
	ClientID     string        `json:"clientId"`
	Name         string        `json:"name"`
	Description  *string       `json:"description,omitempty"`
	Status       ProjectStatus `json:"status"`
	Deadline     *time.Time    `json:"deadline,omitempty"`
	Progress     int           `json:"progress"`
	Budget       *float64      `json:"budget,omitempty"`
	CreationTime time.Time     `json:"creationTime"`

	// Populated only on expanded reads (e.g. recent-project listings).
	Client *User   `json:"client,omitempty"`
	Tasks  []*Task `json:"tasks,omitempty"`
}

// Task belongs to exactly one project and is optionally assigned to one user.
type Task struct {
	TaskID       string       `json:"taskId"`
	ProjectID    string       `json:"projectId"`
	Title        string       `json:"title"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	Deadline     *time.Time   `json:"deadline,omitempty"`
	AssigneeID   *string      `json:"assigneeId,omitempty"`
	CreationTime time.Time    `json:"creationTime"`
}

// TimeEntry is an immutable record of logged work against a task.
type TimeEntry struct {
	EntryID      string    `json:"entryId"`
	TaskID       string    `json:"taskId"`
	UserID       string    `json:"userId"`
	EntryDate    time.Time `json:"entryDate"`
	Minutes      int       `json:"minutes"`
	Note         *string   `json:"note,omitempty"`
	CreationTime time.Time `json:"creationTime"`

	// Populated only on expanded reads (e.g. windowed time listings).
	Task    *Task    `json:"task,omitempty"`
	Project *Project `json:"project,omitempty"`
	User    *User    `json:"user,omitempty"`
}

// Notification is an undelivered message record for a user.
type Notification struct {
	NotificationID string    `json:"notificationId"`
	UserID         string    `json:"userId"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreationTime   time.Time `json:"creationTime"`
}

// Activity is an append-only audit record of a mutation.
type Activity struct {
	ActivityID   string    `json:"activityId"`
	ActorID      string    `json:"actorId"`
	Action       string    `json:"action"`
	EntityKind   string    `json:"entityKind"`
	EntityID     string    `json:"entityId"`
	CreationTime time.Time `json:"creationTime"`
}

// ListTimeEntriesRequest captures filters used when listing time entries.
type ListTimeEntriesRequest struct {
	TaskID string
	UserID string
	Limit  int
}
