package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type Projects struct {
	DB *gorm.DB
}

func (s *Projects) Create(ctx context.Context, p *models.Project) error {
	return s.DB.WithContext(ctx).Omit("TeamMembers").Create(p).Error
}

func (s *Projects) Get(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	err := s.DB.WithContext(ctx).Preload("TeamMembers").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Projects) Save(ctx context.Context, p *models.Project) error {
	// Row fields only; associations go through SetTeamMembers. Save would
	// otherwise try to upsert the preloaded member rows.
	return s.DB.WithContext(ctx).Omit("TeamMembers").Save(p).Error
}

func (s *Projects) SetTeamMembers(ctx context.Context, projectID string, userIDs []string) error {
	users := make([]models.User, 0, len(userIDs))
	for _, id := range userIDs {
		users = append(users, models.User{ID: id})
	}
	p := models.Project{ID: projectID}
	return s.DB.WithContext(ctx).Model(&p).Association("TeamMembers").Replace(users)
}

func (s *Projects) Delete(ctx context.Context, id string) error {
	p := models.Project{ID: id}
	if err := s.DB.WithContext(ctx).Model(&p).Association("TeamMembers").Clear(); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&p).Error
}

func (s *Projects) List(ctx context.Context, f service.ProjectFilter) ([]models.Project, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Project{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Priority != nil {
		q = q.Where("priority = ?", *f.Priority)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := "asc"
	if f.SortDesc {
		dir = "desc"
	}
	var out []models.Project
	err := q.Preload("TeamMembers").
		Order(f.SortBy + " " + dir).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Projects) ListForUser(ctx context.Context, userID string) ([]models.Project, error) {
	var out []models.Project
	err := s.DB.WithContext(ctx).Preload("TeamMembers").
		Where("created_by_id = ? OR id IN (?)", userID,
			s.DB.Table("project_members").Select("project_id").Where("user_id = ?", userID)).
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
