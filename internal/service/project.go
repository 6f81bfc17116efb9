package service

import (
	"context"
	"strings"
	"time"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/authz"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

type ProjectService struct {
	store ProjectStore
}

func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{store: store}
}

type ProjectInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Priority    models.Priority
	Status      models.ProjectStatus
	Progress    *int
	TeamMembers []string
}

// ProjectPatch carries only mutable fields; created_by and created_at have no
// representation here, so a caller cannot smuggle them in.
type ProjectPatch struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Priority    *models.Priority
	Status      *models.ProjectStatus
	TeamMembers *[]string
}

type ProjectFilter struct {
	Status   *models.ProjectStatus
	Priority *models.Priority
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

type ProjectPage struct {
	Items []models.Project `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
}

// projectSortFields maps client sort keys to columns; every scalar project
// column is sortable, anything else is rejected.
var projectSortFields = map[string]string{
	"id":          "id",
	"title":       "title",
	"description": "description",
	"start_date":  "start_date",
	"end_date":    "end_date",
	"priority":    "priority",
	"status":      "status",
	"progress":    "progress",
	"created_by":  "created_by_id",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}

func validProjectPriority(p models.Priority) bool {
	return p == models.PriorityLow || p == models.PriorityMedium || p == models.PriorityHigh
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput, caller auth.Caller) (*models.Project, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" ||
		in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, ErrInvalidArgs
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, ErrDateRange
	}
	for _, id := range in.TeamMembers {
		if !models.ValidID(id) {
			return nil, ErrInvalidID
		}
	}

	p := &models.Project{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Priority:    models.PriorityMedium,
		Status:      models.ProjectNotStarted,
		CreatedByID: caller.UserID,
	}
	if in.Priority != "" {
		if !validProjectPriority(in.Priority) {
			return nil, ErrInvalidArgs
		}
		p.Priority = in.Priority
	}
	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, ErrInvalidArgs
		}
		p.Status = in.Status
	}
	if in.Progress != nil {
		if *in.Progress < 0 || *in.Progress > 100 {
			return nil, ErrProgressRange
		}
		p.Progress = *in.Progress
	}

	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	if len(in.TeamMembers) > 0 {
		if err := s.store.SetTeamMembers(ctx, p.ID, in.TeamMembers); err != nil {
			return nil, err
		}
	}
	return s.store.Get(ctx, p.ID)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	if !models.ValidID(id) {
		return nil, ErrInvalidID
	}
	return s.store.Get(ctx, id)
}

func (s *ProjectService) Update(ctx context.Context, id string, patch ProjectPatch, caller auth.Caller) (*models.Project, error) {
	if !models.ValidID(id) {
		return nil, ErrInvalidID
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyProject(caller, p) {
		return nil, ErrForbidden
	}
	if patch.TeamMembers != nil {
		for _, mid := range *patch.TeamMembers {
			if !models.ValidID(mid) {
				return nil, ErrInvalidID
			}
		}
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrInvalidArgs
		}
		p.Title = title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}

	// Re-validate the date ordering against whichever side is not changing.
	start, end := p.StartDate, p.EndDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if !end.After(start) {
		return nil, ErrDateRange
	}
	p.StartDate, p.EndDate = start, end

	if patch.Priority != nil {
		if !validProjectPriority(*patch.Priority) {
			return nil, ErrInvalidArgs
		}
		p.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrInvalidArgs
		}
		p.Status = *patch.Status
	}

	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	if patch.TeamMembers != nil {
		if err := s.store.SetTeamMembers(ctx, p.ID, *patch.TeamMembers); err != nil {
			return nil, err
		}
	}
	return s.store.Get(ctx, p.ID)
}

// UpdateProgress sets progress and applies the one-directional status rule:
// 100 always forces Completed; the first nonzero progress moves Not Started to
// In Progress; everything else leaves status alone. In particular a project
// already Completed is never reverted when progress drops below 100.
func (s *ProjectService) UpdateProgress(ctx context.Context, id string, progress int, caller auth.Caller) (*models.Project, error) {
	if !models.ValidID(id) {
		return nil, ErrInvalidID
	}
	if progress < 0 || progress > 100 {
		return nil, ErrProgressRange
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanUpdateProgress(caller, p) {
		return nil, ErrForbidden
	}

	p.Progress = progress
	switch {
	case progress == 100:
		p.Status = models.ProjectCompleted
	case progress > 0 && p.Status == models.ProjectNotStarted:
		p.Status = models.ProjectInProgress
	}

	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string, caller auth.Caller) error {
	if !models.ValidID(id) {
		return ErrInvalidID
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanModifyProject(caller, p) {
		return ErrForbidden
	}
	return s.store.Delete(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, f ProjectFilter) (*ProjectPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
	if f.SortBy != "" {
		col, ok := projectSortFields[f.SortBy]
		if !ok {
			return nil, ErrInvalidArgs
		}
		f.SortBy = col
	} else {
		f.SortBy = "created_at"
		f.SortDesc = true
	}
	if f.Status != nil && !f.Status.Valid() {
		return nil, ErrInvalidArgs
	}
	if f.Priority != nil && !validProjectPriority(*f.Priority) {
		return nil, ErrInvalidArgs
	}

	items, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	pages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return &ProjectPage{Items: items, Total: total, Page: f.Page, Pages: pages}, nil
}

// ListMine returns projects the caller created or is a team member of.
func (s *ProjectService) ListMine(ctx context.Context, caller auth.Caller) ([]models.Project, error) {
	return s.store.ListForUser(ctx, caller.UserID)
}
