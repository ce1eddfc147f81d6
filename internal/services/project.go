package services

import (
	"context"

	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/store"
)

// ProjectService handles project lifecycle operations and writes the matching
// activity records.
type ProjectService struct {
	store store.Store
}

func NewProjectService(s store.Store) *ProjectService { return &ProjectService{store: s} }

func (s *ProjectService) CreateProject(ctx context.Context, actorID string, p *model.Project) (*model.Project, error) {
	out, err := s.store.Projects().Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Activities().Record(ctx, &model.Activity{
		ActorID:    actorID,
		Action:     "project.created",
		EntityKind: "project",
		EntityID:   out.ProjectID,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	return s.store.Projects().Get(ctx, projectID)
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return s.store.Projects().List(ctx)
}

// UpdateProject applies the given mutation to the stored project. The update
// is whole-row; callers fetch, modify, and pass the result back.
func (s *ProjectService) UpdateProject(ctx context.Context, actorID string, p *model.Project) (*model.Project, error) {
	out, err := s.store.Projects().Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Activities().Record(ctx, &model.Activity{
		ActorID:    actorID,
		Action:     "project.updated",
		EntityKind: "project",
		EntityID:   out.ProjectID,
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, actorID, projectID string) error {
	if err := s.store.Projects().Delete(ctx, projectID); err != nil {
		return err
	}
	_, err := s.store.Activities().Record(ctx, &model.Activity{
		ActorID:    actorID,
		Action:     "project.deleted",
		EntityKind: "project",
		EntityID:   projectID,
	})
	return err
}
