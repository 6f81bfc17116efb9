package service

import (
	"context"
	"strings"
	"time"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/authz"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

type TaskService struct {
	store    TaskStore
	projects ProjectStore
}

func NewTaskService(store TaskStore, projects ProjectStore) *TaskService {
	return &TaskService{store: store, projects: projects}
}

type TaskInput struct {
	ProjectID    string
	Title        string
	Description  string
	AssignedTo   []string
	StartDate    time.Time
	DueDate      time.Time
	Priority     models.Priority
	Status       models.TaskStatus
	Progress     *int
	Dependencies []string
}

type TaskPatch struct {
	Title        *string
	Description  *string
	AssignedTo   *[]string
	StartDate    *time.Time
	DueDate      *time.Time
	Priority     *models.Priority
	Status       *models.TaskStatus
	Progress     *int
	Dependencies *[]string
}

type TaskFilter struct {
	ProjectID  string
	Status     *models.TaskStatus
	Priority   *models.Priority
	AssignedTo string
}

func validTaskPriority(p models.Priority) bool {
	return p == models.PriorityLow || p == models.PriorityMedium ||
		p == models.PriorityHigh || p == models.PriorityUrgent
}

func checkIDs(ids []string) error {
	for _, id := range ids {
		if !models.ValidID(id) {
			return ErrInvalidID
		}
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, in TaskInput, caller auth.Caller) (*models.Task, error) {
	if !models.ValidID(in.ProjectID) {
		return nil, ErrInvalidID
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		in.StartDate.IsZero() || in.DueDate.IsZero() {
		return nil, ErrInvalidArgs
	}
	if err := checkIDs(in.AssignedTo); err != nil {
		return nil, err
	}
	if err := checkIDs(in.Dependencies); err != nil {
		return nil, err
	}
	if _, err := s.projects.Get(ctx, in.ProjectID); err != nil {
		return nil, err
	}

	t := &models.Task{
		ProjectID:   in.ProjectID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		Priority:    models.PriorityMedium,
		Status:      models.TaskToDo,
		CreatedByID: caller.UserID,
	}
	if in.Priority != "" {
		if !validTaskPriority(in.Priority) {
			return nil, ErrInvalidArgs
		}
		t.Priority = in.Priority
	}
	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, ErrInvalidArgs
		}
		t.Status = in.Status
	}
	if in.Progress != nil {
		if *in.Progress < 0 || *in.Progress > 100 {
			return nil, ErrProgressRange
		}
		t.Progress = *in.Progress
	}

	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	if len(in.AssignedTo) > 0 {
		if err := s.store.SetAssignees(ctx, t.ID, in.AssignedTo); err != nil {
			return nil, err
		}
	}
	if len(in.Dependencies) > 0 {
		if err := s.store.SetDependencies(ctx, t.ID, in.Dependencies); err != nil {
			return nil, err
		}
	}
	return s.store.Get(ctx, t.ID)
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	if !models.ValidID(id) {
		return nil, ErrInvalidID
	}
	return s.store.Get(ctx, id)
}

// Update has no status/progress coupling: unlike projects, both are plain
// caller-supplied fields.
func (s *TaskService) Update(ctx context.Context, id string, patch TaskPatch, caller auth.Caller) (*models.Task, error) {
	t, projectCreator, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanUpdateTask(caller, t, projectCreator) {
		return nil, ErrForbidden
	}
	if patch.AssignedTo != nil {
		if err := checkIDs(*patch.AssignedTo); err != nil {
			return nil, err
		}
	}
	if patch.Dependencies != nil {
		if err := checkIDs(*patch.Dependencies); err != nil {
			return nil, err
		}
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrInvalidArgs
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.StartDate != nil {
		t.StartDate = *patch.StartDate
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		if !validTaskPriority(*patch.Priority) {
			return nil, ErrInvalidArgs
		}
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrInvalidArgs
		}
		t.Status = *patch.Status
	}
	if patch.Progress != nil {
		if *patch.Progress < 0 || *patch.Progress > 100 {
			return nil, ErrProgressRange
		}
		t.Progress = *patch.Progress
	}

	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}
	if patch.AssignedTo != nil {
		if err := s.store.SetAssignees(ctx, t.ID, *patch.AssignedTo); err != nil {
			return nil, err
		}
	}
	if patch.Dependencies != nil {
		if err := s.store.SetDependencies(ctx, t.ID, *patch.Dependencies); err != nil {
			return nil, err
		}
	}
	return s.store.Get(ctx, t.ID)
}

func (s *TaskService) Delete(ctx context.Context, id string, caller auth.Caller) error {
	t, projectCreator, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanDeleteTask(caller, t, projectCreator) {
		return ErrForbidden
	}
	return s.store.Delete(ctx, id)
}

// AddComment appends to the task's comment log. Any authenticated user may
// comment; there is deliberately no ownership check here.
func (s *TaskService) AddComment(ctx context.Context, id, text string, caller auth.Caller) (*models.Task, error) {
	if !models.ValidID(id) {
		return nil, ErrInvalidID
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}
	c := &models.TaskComment{
		TaskID:   id,
		Text:     text,
		AuthorID: caller.UserID,
	}
	if err := s.store.AddComment(ctx, c); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *TaskService) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	if f.ProjectID != "" && !models.ValidID(f.ProjectID) {
		return nil, ErrInvalidID
	}
	if f.AssignedTo != "" && !models.ValidID(f.AssignedTo) {
		return nil, ErrInvalidID
	}
	if f.Status != nil && !f.Status.Valid() {
		return nil, ErrInvalidArgs
	}
	if f.Priority != nil && !validTaskPriority(*f.Priority) {
		return nil, ErrInvalidArgs
	}
	return s.store.List(ctx, f)
}

// load fetches the task plus the owning project's creator id for the
// authorization rules. A task whose project has vanished still resolves, with
// an empty project-creator grant.
func (s *TaskService) load(ctx context.Context, id string) (*models.Task, string, error) {
	if !models.ValidID(id) {
		return nil, "", ErrInvalidID
	}
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	projectCreator := ""
	if p, err := s.projects.Get(ctx, t.ProjectID); err == nil {
		projectCreator = p.CreatedByID
	}
	return t, projectCreator, nil
}
