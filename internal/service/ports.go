package service

import (
	"context"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

// Storage ports. The gorm implementations live in internal/store; tests supply
// in-memory fakes. Get methods return the package's typed not-found errors.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
	List(ctx context.Context) ([]models.User, error)
}

type ProjectStore interface {
	Create(ctx context.Context, p *models.Project) error
	Get(ctx context.Context, id string) (*models.Project, error)
	Save(ctx context.Context, p *models.Project) error
	SetTeamMembers(ctx context.Context, projectID string, userIDs []string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProjectFilter) ([]models.Project, int64, error)
	ListForUser(ctx context.Context, userID string) ([]models.Project, error)
}

type TaskStore interface {
	Create(ctx context.Context, t *models.Task) error
	Get(ctx context.Context, id string) (*models.Task, error)
	Save(ctx context.Context, t *models.Task) error
	SetAssignees(ctx context.Context, taskID string, userIDs []string) error
	SetDependencies(ctx context.Context, taskID string, taskIDs []string) error
	AddComment(ctx context.Context, c *models.TaskComment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f TaskFilter) ([]models.Task, error)
}

type EventStore interface {
	Create(ctx context.Context, e *models.CalendarEvent) error
	Get(ctx context.Context, id string) (*models.CalendarEvent, error)
	Save(ctx context.Context, e *models.CalendarEvent) error
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]models.CalendarEvent, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	Get(ctx context.Context, id string) (*models.Notification, error)
	Save(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type MessageStore interface {
	SaveAll(ctx context.Context, msgs []models.ChatMessage) error
	ListByRoom(ctx context.Context, room string) ([]models.ChatMessage, error)
	GetRoomByProject(ctx context.Context, projectID string) (*models.ChatRoom, error)
	CreateRoom(ctx context.Context, r *models.ChatRoom) error
}
