package services

import (
	"context"

	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/store"
)

// NotificationService handles notification records. Delivery is out of scope;
// clients poll their list.
type NotificationService struct {
	store store.Store
}

func NewNotificationService(s store.Store) *NotificationService {
	return &NotificationService{store: s}
}

func (s *NotificationService) CreateNotification(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if _, err := s.store.Users().Get(ctx, n.UserID); err != nil {
		return nil, err
	}
	return s.store.Notifications().Create(ctx, n)
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID string) ([]*model.Notification, error) {
	return s.store.Notifications().ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.store.Notifications().MarkRead(ctx, notificationID)
}
