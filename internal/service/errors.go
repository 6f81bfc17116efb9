package service

import "errors"

// Lifecycle errors, mapped to HTTP statuses once at the handler boundary.
var (
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidArgs   = errors.New("invalid arguments")
	ErrDateRange     = errors.New("end date must be after start date")
	ErrProgressRange = errors.New("progress must be between 0 and 100")
	ErrEmptyComment  = errors.New("comment text must not be empty")
	ErrForbidden     = errors.New("forbidden")

	ErrProjectNotFound      = errors.New("project not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrRoomNotFound         = errors.New("chat room not found")
)

// Identity errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("role must be admin or user")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrAdminSecret        = errors.New("invalid admin secret key")
	ErrRoleMismatch       = errors.New("account role does not match requested role")
)
