package validate

import (
	"fmt"
	"regexp"

	"github.com/planora/planora-server/internal/model"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserID must be lowercase letters, digits, underscore, 1-20 chars
var userIdRx = regexp.MustCompile(`^[a-z0-9_]{1,20}$`)

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

func Role(v model.Role) error {
	switch v {
	case model.RoleAdmin, model.RoleTeam, model.RoleClient:
		return nil
	}
	return fmt.Errorf("invalid role %q", v)
}

func ProjectStatus(v model.ProjectStatus) error {
	switch v {
	case model.ProjectDraft, model.ProjectActive, model.ProjectCompleted, model.ProjectArchived:
		return nil
	}
	return fmt.Errorf("invalid project status %q", v)
}

func TaskStatus(v model.TaskStatus) error {
	switch v {
	case model.TaskTodo, model.TaskInProgress, model.TaskReview, model.TaskCompleted:
		return nil
	}
	return fmt.Errorf("invalid task status %q", v)
}

func TaskPriority(v model.TaskPriority) error {
	switch v {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return nil
	}
	return fmt.Errorf("invalid task priority %q", v)
}

func Progress(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("progress must be between 0 and 100")
	}
	return nil
}

// -------- Request specific helpers ----------

// CreateUser validates input for creating a new user. UserID is mandatory.
func CreateUser(userId, email string, displayName *string, role model.Role) error {
	if userId == "" {
		return fmt.Errorf("userId is required")
	}
	if !userIdRx.MatchString(userId) {
		return fmt.Errorf("userId must match %s", userIdRx.String())
	}
	if err := Email(email); err != nil {
		return err
	}
	if err := MaxLen("displayName", displayName, 100); err != nil {
		return err
	}
	return Role(role)
}

func CreateProject(clientId, name string, description *string, status model.ProjectStatus, progress int) error {
	if err := NonEmpty("clientId", clientId); err != nil {
		return err
	}
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if len(name) > 200 {
		return fmt.Errorf("name exceeds 200 characters")
	}
	if err := MaxLen("description", description, 2000); err != nil {
		return err
	}
	if err := ProjectStatus(status); err != nil {
		return err
	}
	return Progress(progress)
}

func CreateTask(title string, status model.TaskStatus, priority model.TaskPriority) error {
	if err := NonEmpty("title", title); err != nil {
		return err
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds 200 characters")
	}
	if err := TaskStatus(status); err != nil {
		return err
	}
	return TaskPriority(priority)
}

func CreateTimeEntry(taskId, userId string, minutes int, note *string) error {
	if err := NonEmpty("taskId", taskId); err != nil {
		return err
	}
	if err := NonEmpty("userId", userId); err != nil {
		return err
	}
	if minutes < 0 {
		return fmt.Errorf("minutes must be non-negative")
	}
	return MaxLen("note", note, 1000)
}
