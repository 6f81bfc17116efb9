package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent" // tasks only
)

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "Not Started"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectNotStarted || s == ProjectInProgress || s == ProjectCompleted
}

type TaskStatus string

const (
	TaskToDo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskReview     TaskStatus = "Review"
	TaskDone       TaskStatus = "Done"
)

func (s TaskStatus) Valid() bool {
	return s == TaskToDo || s == TaskInProgress || s == TaskReview || s == TaskDone
}

// NewID returns a fresh 24-hex-char object id.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether s is a well-formed 24-hex-char object id.
func ValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

type User struct {
	ID           string    `gorm:"primaryKey;size:24" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Email        string    `gorm:"size:190;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         Role      `gorm:"size:10;not null;default:user" json:"role"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

type Project struct {
	ID          string        `gorm:"primaryKey;size:24" json:"id"`
	Title       string        `gorm:"size:200;not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	StartDate   time.Time     `gorm:"not null" json:"start_date"`
	EndDate     time.Time     `gorm:"not null" json:"end_date"`
	Priority    Priority      `gorm:"size:10;not null;default:Medium" json:"priority"`
	Status      ProjectStatus `gorm:"size:20;not null;default:'Not Started'" json:"status"`
	Progress    int           `gorm:"not null;default:0" json:"progress"`
	TeamMembers []User        `gorm:"many2many:project_members" json:"team_members"`
	CreatedByID string        `gorm:"size:24;index;not null" json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

// IsMember reports whether userID is in the project's team.
func (p *Project) IsMember(userID string) bool {
	for _, u := range p.TeamMembers {
		if u.ID == userID {
			return true
		}
	}
	return false
}

type Task struct {
	ID          string     `gorm:"primaryKey;size:24" json:"id"`
	ProjectID   string     `gorm:"size:24;index;not null" json:"project"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	AssignedTo  []User     `gorm:"many2many:task_assignees" json:"assigned_to"`
	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	DueDate     time.Time  `gorm:"not null" json:"due_date"`
	Priority    Priority   `gorm:"size:10;not null;default:Medium" json:"priority"`
	Status      TaskStatus `gorm:"size:20;not null;default:'To Do'" json:"status"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	// Informational only: nothing enforces acyclicity.
	Dependencies []Task        `gorm:"many2many:task_dependencies" json:"dependencies"`
	Comments     []TaskComment `gorm:"constraint:OnDelete:CASCADE" json:"comments"`
	CreatedByID  string        `gorm:"size:24;index;not null" json:"created_by"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return nil
}

// IsAssignee reports whether userID is assigned to the task.
func (t *Task) IsAssignee(userID string) bool {
	for _, u := range t.AssignedTo {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// TaskComment rows are append-only; the autoincrement id preserves insertion order.
type TaskComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    string    `gorm:"size:24;index;not null" json:"task_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  string    `gorm:"size:24;not null" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type Notification struct {
	ID        string    `gorm:"primaryKey;size:24" json:"id"`
	UserID    string    `gorm:"size:24;index;not null" json:"user"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Link      string    `gorm:"size:255" json:"link"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = NewID()
	}
	return nil
}

type CalendarEvent struct {
	ID          string    `gorm:"primaryKey;size:24" json:"id"`
	Date        int64     `gorm:"not null" json:"date"` // unix millis
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedByID string    `gorm:"size:24;index;not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *CalendarEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	return nil
}

// ChatRoom binds one project to its member users. Persisted chat messages are
// keyed by an opaque room string and do not reference this entity.
type ChatRoom struct {
	ID        string    `gorm:"primaryKey;size:24" json:"id"`
	ProjectID string    `gorm:"size:24;uniqueIndex;not null" json:"project"`
	Members   []User    `gorm:"many2many:chat_room_members" json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *ChatRoom) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return nil
}

type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Room      string    `gorm:"size:64;index;not null" json:"room"`
	Sender    string    `gorm:"size:120;not null" json:"sender"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Timestamp int64     `gorm:"index;not null" json:"timestamp"` // unix millis, client-supplied
	CreatedAt time.Time `json:"created_at"`
}
