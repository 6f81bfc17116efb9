package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type Tasks struct {
	DB *gorm.DB
}

func (s *Tasks) Create(ctx context.Context, t *models.Task) error {
	return s.DB.WithContext(ctx).Omit("AssignedTo", "Dependencies", "Comments").Create(t).Error
}

func (s *Tasks) Get(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := s.DB.WithContext(ctx).
		Preload("AssignedTo").
		Preload("Dependencies").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_comments.id asc")
		}).
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *Tasks) Save(ctx context.Context, t *models.Task) error {
	return s.DB.WithContext(ctx).Omit("AssignedTo", "Dependencies", "Comments").Save(t).Error
}

func (s *Tasks) SetAssignees(ctx context.Context, taskID string, userIDs []string) error {
	users := make([]models.User, 0, len(userIDs))
	for _, id := range userIDs {
		users = append(users, models.User{ID: id})
	}
	t := models.Task{ID: taskID}
	return s.DB.WithContext(ctx).Model(&t).Association("AssignedTo").Replace(users)
}

func (s *Tasks) SetDependencies(ctx context.Context, taskID string, taskIDs []string) error {
	deps := make([]models.Task, 0, len(taskIDs))
	for _, id := range taskIDs {
		deps = append(deps, models.Task{ID: id})
	}
	t := models.Task{ID: taskID}
	return s.DB.WithContext(ctx).Model(&t).Association("Dependencies").Replace(deps)
}

func (s *Tasks) AddComment(ctx context.Context, c *models.TaskComment) error {
	return s.DB.WithContext(ctx).Create(c).Error
}

func (s *Tasks) Delete(ctx context.Context, id string) error {
	t := models.Task{ID: id}
	if err := s.DB.WithContext(ctx).Model(&t).Association("AssignedTo").Clear(); err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Model(&t).Association("Dependencies").Clear(); err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Where("task_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&t).Error
}

func (s *Tasks) List(ctx context.Context, f service.TaskFilter) ([]models.Task, error) {
	q := s.DB.WithContext(ctx).Model(&models.Task{})
	if f.ProjectID != "" {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Priority != nil {
		q = q.Where("priority = ?", *f.Priority)
	}
	if f.AssignedTo != "" {
		q = q.Where("id IN (?)",
			s.DB.Table("task_assignees").Select("task_id").Where("user_id = ?", f.AssignedTo))
	}

	var out []models.Task
	err := q.Preload("AssignedTo").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_comments.id asc")
		}).
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
