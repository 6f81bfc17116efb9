// Package store implements the service storage ports on top of gorm/MySQL.
// Not-found lookups are translated to the service layer's typed errors here so
// nothing upstream ever sees gorm.ErrRecordNotFound.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type Users struct {
	DB *gorm.DB
}

func (s *Users) Create(ctx context.Context, u *models.User) error {
	return s.DB.WithContext(ctx).Create(u).Error
}

func (s *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Users) Save(ctx context.Context, u *models.User) error {
	return s.DB.WithContext(ctx).Save(u).Error
}

func (s *Users) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("name asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
