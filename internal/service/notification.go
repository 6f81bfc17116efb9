package service

import (
	"context"
	"strings"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

type NotificationService struct {
	store NotificationStore
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

type NotificationInput struct {
	UserID  string
	Type    string
	Message string
	Link    string
}

// Create accepts any authenticated caller; the recipient is whoever the
// payload names, not the caller.
func (s *NotificationService) Create(ctx context.Context, in NotificationInput) (*models.Notification, error) {
	if !models.ValidID(in.UserID) {
		return nil, ErrInvalidID
	}
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Message) == "" {
		return nil, ErrInvalidArgs
	}
	n := &models.Notification{
		UserID:  in.UserID,
		Type:    in.Type,
		Message: in.Message,
		Link:    in.Link,
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListMine is scoped by the session's user id; a client cannot list someone
// else's notifications.
func (s *NotificationService) ListMine(ctx context.Context, caller auth.Caller) ([]models.Notification, error) {
	return s.store.ListForUser(ctx, caller.UserID)
}

// UnreadCount is session-scoped like ListMine.
func (s *NotificationService) UnreadCount(ctx context.Context, caller auth.Caller) (int64, error) {
	return s.store.CountUnread(ctx, caller.UserID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string, caller auth.Caller) (*models.Notification, error) {
	if !models.ValidID(id) {
		return nil, ErrInvalidID
	}
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != caller.UserID {
		return nil, ErrForbidden
	}
	n.IsRead = true
	if err := s.store.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, caller auth.Caller) error {
	return s.store.MarkAllRead(ctx, caller.UserID)
}
