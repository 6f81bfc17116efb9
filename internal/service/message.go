package service

import (
	"context"
	"errors"
	"strings"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

// MessageService owns the persisted side of chat. The realtime relay never
// calls into it: clients save history explicitly, so the relayed and persisted
// views of a room can diverge.
type MessageService struct {
	store    MessageStore
	projects ProjectStore
}

func NewMessageService(store MessageStore, projects ProjectStore) *MessageService {
	return &MessageService{store: store, projects: projects}
}

type MessageInput struct {
	Sender    string
	Content   string
	Avatar    string
	Timestamp int64
}

// SaveMessages is a single multi-insert; partial-failure behavior is whatever
// the storage layer does natively.
func (s *MessageService) SaveMessages(ctx context.Context, room string, inputs []MessageInput) ([]models.ChatMessage, error) {
	if strings.TrimSpace(room) == "" || len(inputs) == 0 {
		return nil, ErrInvalidArgs
	}
	msgs := make([]models.ChatMessage, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Content) == "" {
			return nil, ErrInvalidArgs
		}
		msgs = append(msgs, models.ChatMessage{
			Room:      room,
			Sender:    in.Sender,
			Content:   in.Content,
			Avatar:    in.Avatar,
			Timestamp: in.Timestamp,
		})
	}
	if err := s.store.SaveAll(ctx, msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *MessageService) ListByRoom(ctx context.Context, room string) ([]models.ChatMessage, error) {
	if strings.TrimSpace(room) == "" {
		return nil, ErrInvalidArgs
	}
	return s.store.ListByRoom(ctx, room)
}

// TeamRoom finds the project's chat room, creating it on first access with
// the project's creator and team as members. The unique index on the project
// reference keeps it one room per project.
func (s *MessageService) TeamRoom(ctx context.Context, projectID string) (*models.ChatRoom, error) {
	if !models.ValidID(projectID) {
		return nil, ErrInvalidID
	}
	room, err := s.store.GetRoomByProject(ctx, projectID)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, ErrRoomNotFound) {
		return nil, err
	}

	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members := []models.User{{ID: p.CreatedByID}}
	for _, m := range p.TeamMembers {
		if m.ID != p.CreatedByID {
			members = append(members, m)
		}
	}
	room = &models.ChatRoom{
		ProjectID: projectID,
		Members:   members,
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}
