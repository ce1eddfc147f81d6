package services

import (
	"context"
	"fmt"

	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/store"
)

// TimeEntryService handles logged-work records. Entries are immutable once
// created; there are no update or delete operations.
type TimeEntryService struct {
	store store.Store
}

func NewTimeEntryService(s store.Store) *TimeEntryService { return &TimeEntryService{store: s} }

func (s *TimeEntryService) CreateTimeEntry(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error) {
	if e.Minutes < 0 {
		return nil, fmt.Errorf("minutes must be non-negative: %w", model.ErrValidation)
	}
	if _, err := s.store.Tasks().Get(ctx, e.TaskID); err != nil {
		return nil, err
	}
	if _, err := s.store.Users().Get(ctx, e.UserID); err != nil {
		return nil, err
	}
	return s.store.TimeEntries().Create(ctx, e)
}

func (s *TimeEntryService) ListTimeEntries(ctx context.Context, req model.ListTimeEntriesRequest) ([]*model.TimeEntry, error) {
	return s.store.TimeEntries().List(ctx, req)
}
