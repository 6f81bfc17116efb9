package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

type UserService struct {
	store       UserStore
	jwtSecret   string
	tokenTTL    time.Duration
	adminSecret string
}

func NewUserService(store UserStore, jwtSecret string, tokenTTL time.Duration, adminSecret string) *UserService {
	return &UserService{
		store:       store,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		adminSecret: adminSecret,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

type LoginInput struct {
	Email     string
	Password  string
	Role      models.Role
	SecretKey string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the password, and for admin logins additionally the shared
// admin secret; the stored role must match the requested one.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.Valid() {
		return "", nil, ErrInvalidRole
	}
	if in.Role == models.RoleAdmin && in.SecretKey != s.adminSecret {
		return "", nil, ErrAdminSecret
	}

	u, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if u.Role != in.Role {
		return "", nil, ErrRoleMismatch
	}

	token, err := auth.IssueToken(u, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	if !models.ValidID(id) {
		return nil, ErrInvalidID
	}
	return s.store.GetByID(ctx, id)
}

type ProfileInput struct {
	Name     *string
	Email    *string
	Password *string
	Avatar   *string
}

// UpdateProfile mutates the caller's own record; role is fixed at creation and
// has no patch field.
func (s *UserService) UpdateProfile(ctx context.Context, caller auth.Caller, in ProfileInput) (*models.User, error) {
	u, err := s.store.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrInvalidArgs
		}
		u.Name = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != u.Email {
			if _, err := s.store.GetByEmail(ctx, email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, ErrUserNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.Avatar != nil {
		u.Avatar = *in.Avatar
	}

	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	return s.store.List(ctx)
}
