package services

import (
	"context"
	"errors"
	"testing"

	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/store"
	"github.com/planora/planora-server/internal/store/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.New(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func seedProject(t *testing.T, st store.Store) *model.Project {
	t.Helper()
	ctx := context.Background()
	if _, err := st.Users().Create(ctx, &model.User{UserID: "client_1", Email: "c@example.com", Role: model.RoleClient}); err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := st.Users().Create(ctx, &model.User{UserID: "dev_1", Email: "d@example.com", Role: model.RoleTeam}); err != nil {
		t.Fatalf("create dev: %v", err)
	}
	p, err := st.Projects().Create(ctx, &model.Project{ClientID: "client_1", Name: "Alpha", Status: model.ProjectActive})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestAssignTask_NotifiesAssignee(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p := seedProject(t, st)

	svc := NewTaskService(st)
	task, err := svc.CreateTask(ctx, "admin", &model.Task{
		ProjectID: p.ProjectID, Title: "Write docs", Status: model.TaskTodo, Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	out, err := svc.AssignTask(ctx, "admin", task.TaskID, "dev_1")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if out.AssigneeID == nil || *out.AssigneeID != "dev_1" {
		t.Fatalf("assignee not set: %+v", out)
	}

	notifs, err := st.Notifications().ListByUser(ctx, "dev_1")
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifs))
	}
	if notifs[0].Read {
		t.Fatalf("new notification should be unread")
	}

	acts, err := st.Activities().ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	// project.created is written by ProjectService, not the raw store seed;
	// here we expect task.created and task.assigned only.
	if len(acts) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(acts))
	}
}

func TestAssignTask_UnknownAssignee(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p := seedProject(t, st)

	svc := NewTaskService(st)
	task, err := svc.CreateTask(ctx, "admin", &model.Task{
		ProjectID: p.ProjectID, Title: "Write docs", Status: model.TaskTodo, Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := svc.AssignTask(ctx, "admin", task.TaskID, "ghost"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTask_UnknownProject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := NewTaskService(st)
	_, err := svc.CreateTask(ctx, "admin", &model.Task{
		ProjectID: "missing", Title: "Orphan", Status: model.TaskTodo, Priority: model.PriorityLow,
	})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTimeEntry_NegativeMinutes(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := NewTimeEntryService(st)
	_, err := svc.CreateTimeEntry(ctx, &model.TimeEntry{TaskID: "t", UserID: "u", Minutes: -1})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
