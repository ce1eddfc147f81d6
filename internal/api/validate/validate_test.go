package validate

import (
	"strings"
	"testing"

	"github.com/planora/planora-server/internal/model"
)

func TestCreateUser_InvalidEmail(t *testing.T) {
	if err := CreateUser("alice", "bad email", nil, model.RoleTeam); err == nil {
		t.Fatalf("expected error for invalid email")
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	if err := CreateUser("alice", "alice@example.com", nil, model.Role("owner")); err == nil {
		t.Fatalf("expected error for invalid role")
	}
}

func TestCreateUser_InvalidUserID(t *testing.T) {
	for _, id := range []string{"", "Alice", "has space", strings.Repeat("a", 21)} {
		if err := CreateUser(id, "alice@example.com", nil, model.RoleTeam); err == nil {
			t.Fatalf("expected error for userId %q", id)
		}
	}
}

func TestCreateProject(t *testing.T) {
	tests := []struct {
		name        string
		clientId    string
		projName    string
		description *string
		status      model.ProjectStatus
		progress    int
		expectError bool
		errorMsg    string
	}{
		{
			name:     "valid project",
			clientId: "client_1",
			projName: "Website Redesign",
			status:   model.ProjectActive,
			progress: 40,
		},
		{
			name:        "missing client",
			clientId:    "",
			projName:    "Website Redesign",
			status:      model.ProjectActive,
			expectError: true,
			errorMsg:    "clientId is required",
		},
		{
			name:        "missing name",
			clientId:    "client_1",
			projName:    "",
			status:      model.ProjectActive,
			expectError: true,
			errorMsg:    "name is required",
		},
		{
			name:        "name too long",
			clientId:    "client_1",
			projName:    strings.Repeat("a", 201),
			status:      model.ProjectActive,
			expectError: true,
			errorMsg:    "name exceeds 200 characters",
		},
		{
			name:        "invalid status",
			clientId:    "client_1",
			projName:    "Website Redesign",
			status:      model.ProjectStatus("paused"),
			expectError: true,
		},
		{
			name:        "progress out of range",
			clientId:    "client_1",
			projName:    "Website Redesign",
			status:      model.ProjectActive,
			progress:    101,
			expectError: true,
			errorMsg:    "progress must be between 0 and 100",
		},
		{
			name:        "description too long",
			clientId:    "client_1",
			projName:    "Website Redesign",
			description: stringPtr(strings.Repeat("a", 2001)),
			status:      model.ProjectActive,
			expectError: true,
			errorMsg:    "description exceeds 2000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CreateProject(tt.clientId, tt.projName, tt.description, tt.status, tt.progress)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for test case '%s'", tt.name)
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Fatalf("expected error message '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error for test case '%s': %v", tt.name, err)
				}
			}
		})
	}
}

func TestCreateTask(t *testing.T) {
	if err := CreateTask("Fix login flow", model.TaskTodo, model.PriorityHigh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CreateTask("", model.TaskTodo, model.PriorityHigh); err == nil {
		t.Fatalf("expected error for empty title")
	}
	if err := CreateTask("Fix login flow", model.TaskStatus("done"), model.PriorityHigh); err == nil {
		t.Fatalf("expected error for invalid status")
	}
	if err := CreateTask("Fix login flow", model.TaskTodo, model.TaskPriority("urgent")); err == nil {
		t.Fatalf("expected error for invalid priority")
	}
}

func TestCreateTimeEntry(t *testing.T) {
	if err := CreateTimeEntry("task-1", "alice", 90, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CreateTimeEntry("", "alice", 90, nil); err == nil {
		t.Fatalf("expected error for missing taskId")
	}
	if err := CreateTimeEntry("task-1", "", 90, nil); err == nil {
		t.Fatalf("expected error for missing userId")
	}
	if err := CreateTimeEntry("task-1", "alice", -1, nil); err == nil {
		t.Fatalf("expected error for negative minutes")
	}
	if err := CreateTimeEntry("task-1", "alice", 0, nil); err != nil {
		t.Fatalf("zero minutes should be allowed: %v", err)
	}
}

func TestMaxLen(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		value       *string
		limit       int
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil value",
			field:       "description",
			value:       nil,
			limit:       100,
			expectError: false,
		},
		{
			name:        "value within limit",
			field:       "description",
			value:       stringPtr("short"),
			limit:       100,
			expectError: false,
		},
		{
			name:        "value at limit",
			field:       "description",
			value:       stringPtr(strings.Repeat("a", 100)),
			limit:       100,
			expectError: false,
		},
		{
			name:        "value exceeds limit",
			field:       "description",
			value:       stringPtr(strings.Repeat("a", 101)),
			limit:       100,
			expectError: true,
			errorMsg:    "description exceeds 100 characters",
		},
		{
			name:        "empty string",
			field:       "description",
			value:       stringPtr(""),
			limit:       100,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MaxLen(tt.field, tt.value, tt.limit)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for test case '%s'", tt.name)
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Fatalf("expected error message '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error for test case '%s': %v", tt.name, err)
				}
			}
		})
	}
}

// Helper function to create string pointers
func stringPtr(s string) *string {
	return &s
}
