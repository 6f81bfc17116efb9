package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

// In-memory implementations of the storage ports so the lifecycle rules can be
// exercised without a database.

type fakeProjects struct {
	mu       sync.RWMutex
	projects map[string]models.Project
	getCalls int
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{projects: map[string]models.Project{}}
}

func cloneProject(p models.Project) models.Project {
	out := p
	out.TeamMembers = append([]models.User(nil), p.TeamMembers...)
	return out
}

func (f *fakeProjects) Create(_ context.Context, p *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = models.NewID()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	f.projects[p.ID] = cloneProject(*p)
	return nil
}

func (f *fakeProjects) Get(_ context.Context, id string) (*models.Project, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	f.getCalls++
	p, ok := f.projects[id]
	if !ok {
		return nil, service.ErrProjectNotFound
	}
	out := cloneProject(p)
	return &out, nil
}

func (f *fakeProjects) Save(_ context.Context, p *models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.projects[p.ID]
	if !ok {
		return service.ErrProjectNotFound
	}
	next := cloneProject(*p)
	next.TeamMembers = cur.TeamMembers
	next.UpdatedAt = time.Now()
	f.projects[p.ID] = next
	return nil
}

func (f *fakeProjects) SetTeamMembers(_ context.Context, projectID string, userIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok {
		return service.ErrProjectNotFound
	}
	p.TeamMembers = nil
	for _, id := range userIDs {
		p.TeamMembers = append(p.TeamMembers, models.User{ID: id})
	}
	f.projects[projectID] = p
	return nil
}

func (f *fakeProjects) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[id]; !ok {
		return service.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjects) List(_ context.Context, filter service.ProjectFilter) ([]models.Project, int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []models.Project
	for _, p := range f.projects {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && p.Priority != *filter.Priority {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		out = append(out, cloneProject(p))
	}

	sort.Slice(out, func(i, j int) bool {
		less := out[i].Title < out[j].Title
		if filter.SortBy == "created_at" {
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if filter.SortDesc {
			return !less
		}
		return less
	})

	total := int64(len(out))
	start := (filter.Page - 1) * filter.Limit
	if start > len(out) {
		return []models.Project{}, total, nil
	}
	out = out[start:]
	if filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (f *fakeProjects) ListForUser(_ context.Context, userID string) ([]models.Project, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []models.Project
	for _, p := range f.projects {
		if p.CreatedByID == userID || (&p).IsMember(userID) {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

type fakeTasks struct {
	mu       sync.RWMutex
	tasks    map[string]models.Task
	nextCID  uint
	getCalls int
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{tasks: map[string]models.Task{}, nextCID: 1}
}

func cloneTask(t models.Task) models.Task {
	out := t
	out.AssignedTo = append([]models.User(nil), t.AssignedTo...)
	out.Dependencies = append([]models.Task(nil), t.Dependencies...)
	out.Comments = append([]models.TaskComment(nil), t.Comments...)
	return out
}

func (f *fakeTasks) Create(_ context.Context, t *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = models.NewID()
	}
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	f.tasks[t.ID] = cloneTask(*t)
	return nil
}

func (f *fakeTasks) Get(_ context.Context, id string) (*models.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	f.getCalls++
	t, ok := f.tasks[id]
	if !ok {
		return nil, service.ErrTaskNotFound
	}
	out := cloneTask(t)
	return &out, nil
}

func (f *fakeTasks) Save(_ context.Context, t *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.tasks[t.ID]
	if !ok {
		return service.ErrTaskNotFound
	}
	next := cloneTask(*t)
	next.AssignedTo = cur.AssignedTo
	next.Dependencies = cur.Dependencies
	next.Comments = cur.Comments
	next.UpdatedAt = time.Now()
	f.tasks[t.ID] = next
	return nil
}

func (f *fakeTasks) SetAssignees(_ context.Context, taskID string, userIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok {
		return service.ErrTaskNotFound
	}
	t.AssignedTo = nil
	for _, id := range userIDs {
		t.AssignedTo = append(t.AssignedTo, models.User{ID: id})
	}
	f.tasks[taskID] = t
	return nil
}

func (f *fakeTasks) SetDependencies(_ context.Context, taskID string, taskIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok {
		return service.ErrTaskNotFound
	}
	t.Dependencies = nil
	for _, id := range taskIDs {
		t.Dependencies = append(t.Dependencies, models.Task{ID: id})
	}
	f.tasks[taskID] = t
	return nil
}

func (f *fakeTasks) AddComment(_ context.Context, c *models.TaskComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[c.TaskID]
	if !ok {
		return service.ErrTaskNotFound
	}
	c.ID = f.nextCID
	f.nextCID++
	c.CreatedAt = time.Now()
	t.Comments = append(t.Comments, *c)
	f.tasks[c.TaskID] = t
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return service.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTasks) List(_ context.Context, filter service.TaskFilter) ([]models.Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []models.Task
	for _, t := range f.tasks {
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if filter.AssignedTo != "" && !(&t).IsAssignee(filter.AssignedTo) {
			continue
		}
		out = append(out, cloneTask(t))
	}
	return out, nil
}

type fakeUsers struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		u.ID = models.NewID()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	u, ok := f.users[id]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, u := range f.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, service.ErrUserNotFound
}

func (f *fakeUsers) Save(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return service.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
