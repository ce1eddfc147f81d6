package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/store"
)

func strptr(s string) *string { return &s }

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Unique test identifiers
	suffix := uuid.New().String()[:8]

	// Users
	client, err := s.Users().Create(ctx, &model.User{
		Email:       "client-" + suffix + "@example.test",
		DisplayName: strptr("Test Client"),
		Role:        model.RoleClient,
	})
	if err != nil {
		t.Fatalf("CreateUser client: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // ensure monotonic creation time ordering
	worker, err := s.Users().Create(ctx, &model.User{
		Email: "worker-" + suffix + "@example.test",
		Role:  model.RoleTeam,
	})
	if err != nil {
		t.Fatalf("CreateUser worker: %v", err)
	}
	if got, err := s.Users().Get(ctx, client.UserID); err != nil || got == nil || got.Role != model.RoleClient {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if n, err := s.Users().Count(ctx); err != nil || n < 2 {
		t.Fatalf("CountUsers: n=%d err=%v", n, err)
	}
	if byRole, err := s.Users().CountByRole(ctx); err != nil || byRole[model.RoleClient] < 1 || byRole[model.RoleTeam] < 1 {
		t.Fatalf("CountByRole: got=%v err=%v", byRole, err)
	}
	recentUsers, err := s.Users().Recent(ctx, 1)
	if err != nil || len(recentUsers) != 1 {
		t.Fatalf("RecentUsers: n=%d err=%v", len(recentUsers), err)
	}
	if recentUsers[0].UserID != worker.UserID {
		t.Fatalf("RecentUsers: want newest %s first, got %s", worker.UserID, recentUsers[0].UserID)
	}

	// Projects
	budget := 10000.0
	proj, err := s.Projects().Create(ctx, &model.Project{
		ClientID: client.UserID,
		Name:     "website-" + suffix,
		Status:   model.ProjectActive,
		Budget:   &budget,
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if proj.ProjectID == "" {
		t.Fatalf("CreateProject: empty project id")
	}
	if got, err := s.Projects().Get(ctx, proj.ProjectID); err != nil || got == nil || got.Budget == nil || *got.Budget != budget {
		t.Fatalf("GetProject: got=%v err=%v", got, err)
	}
	if byStatus, err := s.Projects().CountByStatus(ctx); err != nil || byStatus[model.ProjectActive] < 1 {
		t.Fatalf("CountProjectsByStatus: got=%v err=%v", byStatus, err)
	}

	proj.Progress = 40
	proj.Status = model.ProjectActive
	if upd, err := s.Projects().Update(ctx, proj); err != nil || upd.Progress != 40 {
		t.Fatalf("UpdateProject: got=%v err=%v", upd, err)
	}

	// Tasks
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	overdueTask, err := s.Tasks().Create(ctx, &model.Task{
		ProjectID: proj.ProjectID,
		Title:     "late-task",
		Status:    model.TaskInProgress,
		Deadline:  &yesterday,
	})
	if err != nil {
		t.Fatalf("CreateTask overdue: %v", err)
	}
	doneTask, err := s.Tasks().Create(ctx, &model.Task{
		ProjectID: proj.ProjectID,
		Title:     "done-task",
		Status:    model.TaskCompleted,
		Deadline:  &yesterday,
	})
	if err != nil {
		t.Fatalf("CreateTask done: %v", err)
	}
	if _, err := s.Tasks().Create(ctx, &model.Task{
		ProjectID: proj.ProjectID,
		Title:     "open-task",
	}); err != nil {
		t.Fatalf("CreateTask open: %v", err)
	}
	if lst, err := s.Tasks().ListByProject(ctx, proj.ProjectID); err != nil || len(lst) != 3 {
		t.Fatalf("ListTasks: n=%d err=%v", len(lst), err)
	}
	if n, err := s.Tasks().CountOverdue(ctx, time.Now().UTC()); err != nil || n != 1 {
		t.Fatalf("CountOverdue: n=%d err=%v (completed or deadline-less tasks must not count)", n, err)
	}

	// Assign and update
	overdueTask.AssigneeID = &worker.UserID
	overdueTask.Status = model.TaskReview
	if upd, err := s.Tasks().Update(ctx, overdueTask); err != nil || upd.AssigneeID == nil || *upd.AssigneeID != worker.UserID {
		t.Fatalf("UpdateTask: got=%v err=%v", upd, err)
	}

	// Time entries
	day := func(offset int) time.Time {
		return time.Date(2026, 3, 10+offset, 0, 0, 0, 0, time.UTC)
	}
	for i, minutes := range []int{60, 30, 90} {
		if _, err := s.TimeEntries().Create(ctx, &model.TimeEntry{
			TaskID:    overdueTask.TaskID,
			UserID:    worker.UserID,
			EntryDate: day(i),
			Minutes:   minutes,
		}); err != nil {
			t.Fatalf("CreateTimeEntry %d: %v", i, err)
		}
	}
	if _, err := s.TimeEntries().Create(ctx, &model.TimeEntry{
		TaskID:    doneTask.TaskID,
		UserID:    worker.UserID,
		EntryDate: day(1),
		Minutes:   120,
	}); err != nil {
		t.Fatalf("CreateTimeEntry other task: %v", err)
	}

	// Inclusive window [day0, day1] keeps the boundary entries and drops day2.
	ranged, err := s.TimeEntries().ListRange(ctx, day(0), day(1))
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(ranged) != 3 {
		t.Fatalf("ListRange: want 3 entries in [day0, day1], got %d", len(ranged))
	}
	for _, e := range ranged {
		if e.Task == nil || e.Project == nil || e.User == nil {
			t.Fatalf("ListRange: entry %s not expanded with task/project/user", e.EntryID)
		}
		if e.Project.ProjectID != proj.ProjectID {
			t.Fatalf("ListRange: wrong project resolved: %s", e.Project.ProjectID)
		}
	}

	if lst, err := s.TimeEntries().List(ctx, model.ListTimeEntriesRequest{TaskID: overdueTask.TaskID}); err != nil || len(lst) != 3 {
		t.Fatalf("ListTimeEntries by task: n=%d err=%v", len(lst), err)
	}

	byProject, err := s.TimeEntries().MinutesByProject(ctx)
	if err != nil {
		t.Fatalf("MinutesByProject: %v", err)
	}
	if byProject[proj.ProjectID] != 300 {
		t.Fatalf("MinutesByProject: want 300 for %s, got %d", proj.ProjectID, byProject[proj.ProjectID])
	}

	// Notifications
	n, err := s.Notifications().Create(ctx, &model.Notification{UserID: worker.UserID, Message: "task assigned"})
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if n.Read {
		t.Fatalf("CreateNotification: new notification must be unread")
	}
	if err := s.Notifications().MarkRead(ctx, n.NotificationID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if lst, err := s.Notifications().ListByUser(ctx, worker.UserID); err != nil || len(lst) != 1 || !lst[0].Read {
		t.Fatalf("ListNotifications: got=%v err=%v", lst, err)
	}

	// Activities
	if _, err := s.Activities().Record(ctx, &model.Activity{
		ActorID:    worker.UserID,
		Action:     "task.updated",
		EntityKind: "task",
		EntityID:   overdueTask.TaskID,
	}); err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if lst, err := s.Activities().ListRecent(ctx, 10); err != nil || len(lst) == 0 {
		t.Fatalf("ListRecentActivities: n=%d err=%v", len(lst), err)
	}

	// Recent projects include relations
	recent, err := s.Projects().Recent(ctx, 5)
	if err != nil || len(recent) == 0 {
		t.Fatalf("RecentProjects: n=%d err=%v", len(recent), err)
	}
	found := false
	for _, rp := range recent {
		if rp.ProjectID != proj.ProjectID {
			continue
		}
		found = true
		if rp.Client == nil || rp.Client.UserID != client.UserID {
			t.Fatalf("RecentProjects: owning client not expanded: %+v", rp.Client)
		}
		if len(rp.Tasks) != 3 {
			t.Fatalf("RecentProjects: want 3 tasks expanded, got %d", len(rp.Tasks))
		}
	}
	if !found {
		t.Fatalf("RecentProjects: created project missing from recent list")
	}

	// Deletes cascade children
	if err := s.Tasks().Delete(ctx, doneTask.TaskID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := s.Projects().Delete(ctx, proj.ProjectID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := s.Projects().Get(ctx, proj.ProjectID); err == nil {
		t.Fatalf("GetProject after delete: expected error")
	}
	if n, err := s.Tasks().Count(ctx); err != nil || n != 0 {
		t.Fatalf("CountTasks after project delete: n=%d err=%v", n, err)
	}
}
