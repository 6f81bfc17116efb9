package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type Events struct {
	DB *gorm.DB
}

func (s *Events) Create(ctx context.Context, e *models.CalendarEvent) error {
	return s.DB.WithContext(ctx).Create(e).Error
}

func (s *Events) Get(ctx context.Context, id string) (*models.CalendarEvent, error) {
	var e models.CalendarEvent
	if err := s.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *Events) Save(ctx context.Context, e *models.CalendarEvent) error {
	return s.DB.WithContext(ctx).Save(e).Error
}

func (s *Events) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&models.CalendarEvent{ID: id}).Error
}

func (s *Events) ListForUser(ctx context.Context, userID string) ([]models.CalendarEvent, error) {
	var out []models.CalendarEvent
	err := s.DB.WithContext(ctx).
		Where("created_by_id = ?", userID).
		Order("date asc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

type Notifications struct {
	DB *gorm.DB
}

func (s *Notifications) Create(ctx context.Context, n *models.Notification) error {
	return s.DB.WithContext(ctx).Create(n).Error
}

func (s *Notifications) Get(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	if err := s.DB.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (s *Notifications) Save(ctx context.Context, n *models.Notification) error {
	return s.DB.WithContext(ctx).Save(n).Error
}

func (s *Notifications) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Notifications) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (s *Notifications) MarkAllRead(ctx context.Context, userID string) error {
	return s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

type Messages struct {
	DB *gorm.DB
}

func (s *Messages) SaveAll(ctx context.Context, msgs []models.ChatMessage) error {
	return s.DB.WithContext(ctx).Create(&msgs).Error
}

func (s *Messages) ListByRoom(ctx context.Context, room string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	err := s.DB.WithContext(ctx).
		Where("room = ?", room).
		Order("timestamp asc, id asc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Messages) GetRoomByProject(ctx context.Context, projectID string) (*models.ChatRoom, error) {
	var r models.ChatRoom
	err := s.DB.WithContext(ctx).Preload("Members").First(&r, "project_id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrRoomNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *Messages) CreateRoom(ctx context.Context, r *models.ChatRoom) error {
	members := r.Members
	r.Members = nil
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}
	if err := s.DB.WithContext(ctx).Model(r).Association("Members").Replace(members); err != nil {
		return err
	}
	r.Members = members
	return nil
}
