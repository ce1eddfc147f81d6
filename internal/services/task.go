package services

import (
	"context"
	"fmt"

	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/store"
)

// TaskService handles task lifecycle, assignment and the notifications that
// assignment produces.
type TaskService struct {
	store store.Store
}

func NewTaskService(s store.Store) *TaskService { return &TaskService{store: s} }

func (s *TaskService) CreateTask(ctx context.Context, actorID string, t *model.Task) (*model.Task, error) {
	// Reject tasks pointing at a missing project up front; the FK error from
	// the store is opaque to API callers.
	if _, err := s.store.Projects().Get(ctx, t.ProjectID); err != nil {
		return nil, err
	}
	out, err := s.store.Tasks().Create(ctx, t)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Activities().Record(ctx, &model.Activity{
		ActorID:    actorID,
		Action:     "task.created",
		EntityKind: "task",
		EntityID:   out.TaskID,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	return s.store.Tasks().Get(ctx, taskID)
}

func (s *TaskService) ListTasks(ctx context.Context, projectID string) ([]*model.Task, error) {
	return s.store.Tasks().ListByProject(ctx, projectID)
}

func (s *TaskService) UpdateTask(ctx context.Context, actorID string, t *model.Task) (*model.Task, error) {
	out, err := s.store.Tasks().Update(ctx, t)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Activities().Record(ctx, &model.Activity{
		ActorID:    actorID,
		Action:     "task.updated",
		EntityKind: "task",
		EntityID:   out.TaskID,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignTask sets the assignee and notifies them.
func (s *TaskService) AssignTask(ctx context.Context, actorID, taskID, assigneeID string) (*model.Task, error) {
	if _, err := s.store.Users().Get(ctx, assigneeID); err != nil {
		return nil, err
	}
	t, err := s.store.Tasks().Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	t.AssigneeID = &assigneeID
	out, err := s.store.Tasks().Update(ctx, t)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Notifications().Create(ctx, &model.Notification{
		UserID:  assigneeID,
		Message: fmt.Sprintf("You have been assigned to task %q", out.Title),
	}); err != nil {
		return nil, err
	}
	if _, err := s.store.Activities().Record(ctx, &model.Activity{
		ActorID:    actorID,
		Action:     "task.assigned",
		EntityKind: "task",
		EntityID:   out.TaskID,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actorID, taskID string) error {
	if err := s.store.Tasks().Delete(ctx, taskID); err != nil {
		return err
	}
	_, err := s.store.Activities().Record(ctx, &model.Activity{
		ActorID:    actorID,
		Action:     "task.deleted",
		EntityKind: "task",
		EntityID:   taskID,
	})
	return err
}
