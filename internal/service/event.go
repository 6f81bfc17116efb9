package service

import (
	"context"
	"strings"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/authz"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

type EventService struct {
	store EventStore
}

func NewEventService(store EventStore) *EventService {
	return &EventService{store: store}
}

type EventInput struct {
	Date        int64
	Description string
}

func (s *EventService) Create(ctx context.Context, in EventInput, caller auth.Caller) (*models.CalendarEvent, error) {
	if in.Date <= 0 || strings.TrimSpace(in.Description) == "" {
		return nil, ErrInvalidArgs
	}
	e := &models.CalendarEvent{
		Date:        in.Date,
		Description: in.Description,
		CreatedByID: caller.UserID,
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id string, in EventInput, caller auth.Caller) (*models.CalendarEvent, error) {
	if !models.ValidID(id) {
		return nil, ErrInvalidID
	}
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyEvent(caller, e) {
		return nil, ErrForbidden
	}
	if in.Date > 0 {
		e.Date = in.Date
	}
	if strings.TrimSpace(in.Description) != "" {
		e.Description = in.Description
	}
	if err := s.store.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id string, caller auth.Caller) error {
	if !models.ValidID(id) {
		return ErrInvalidID
	}
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanModifyEvent(caller, e) {
		return ErrForbidden
	}
	return s.store.Delete(ctx, id)
}

func (s *EventService) ListMine(ctx context.Context, caller auth.Caller) ([]models.CalendarEvent, error) {
	return s.store.ListForUser(ctx, caller.UserID)
}
