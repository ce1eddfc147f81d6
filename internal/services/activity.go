package services

import (
	"context"

	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/store"
)

// defaultActivityLimit bounds the activity feed when no limit is requested.
const defaultActivityLimit = 50

// ActivityService exposes the audit feed.
type ActivityService struct {
	store store.Store
}

func NewActivityService(s store.Store) *ActivityService { return &ActivityService{store: s} }

func (s *ActivityService) ListRecent(ctx context.Context, limit int) ([]*model.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.store.Activities().ListRecent(ctx, limit)
}
