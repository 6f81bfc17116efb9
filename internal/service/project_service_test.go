package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

var (
	creator  = auth.Caller{UserID: models.NewID(), Name: "alice", Role: models.RoleUser}
	member   = auth.Caller{UserID: models.NewID(), Name: "bob", Role: models.RoleUser}
	stranger = auth.Caller{UserID: models.NewID(), Name: "dave", Role: models.RoleUser}
	admin    = auth.Caller{UserID: models.NewID(), Name: "root", Role: models.RoleAdmin}
)

func projectInput() service.ProjectInput {
	return service.ProjectInput{
		Title:       "Launch site",
		Description: "Marketing site relaunch",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func mustCreateProject(t *testing.T, svc *service.ProjectService, caller auth.Caller) *models.Project {
	t.Helper()
	p, err := svc.Create(context.Background(), projectInput(), caller)
	if err != nil {
		t.Fatalf("failed to prepare project: %v", err)
	}
	return p
}

func TestProjectCreate_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := service.NewProjectService(newFakeProjects())
	in := projectInput()

	created, err := svc.Create(context.Background(), in, creator)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title != in.Title || got.Description != in.Description {
		t.Fatalf("unexpected fields: %q %q", got.Title, got.Description)
	}
	if !got.StartDate.Equal(in.StartDate) || !got.EndDate.Equal(in.EndDate) {
		t.Fatalf("dates not preserved: %v %v", got.StartDate, got.EndDate)
	}
	if got.CreatedByID != creator.UserID {
		t.Fatalf("expected created_by %s, got %s", creator.UserID, got.CreatedByID)
	}
	if got.Status != models.ProjectNotStarted || got.Progress != 0 {
		t.Fatalf("expected default status/progress, got %s/%d", got.Status, got.Progress)
	}
	if got.Priority != models.PriorityMedium {
		t.Fatalf("expected default priority Medium, got %s", got.Priority)
	}
}

func TestProjectCreate_DateRange(t *testing.T) {
	t.Parallel()

	svc := service.NewProjectService(newFakeProjects())

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"end before start", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"end equals start", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := projectInput()
			in.StartDate, in.EndDate = tc.start, tc.end
			_, err := svc.Create(context.Background(), in, creator)
			if !errors.Is(err, service.ErrDateRange) {
				t.Fatalf("expected ErrDateRange, got %v", err)
			}
		})
	}
}

func TestProjectCreate_MissingFields(t *testing.T) {
	t.Parallel()

	svc := service.NewProjectService(newFakeProjects())
	in := projectInput()
	in.Title = "  "

	_, err := svc.Create(context.Background(), in, creator)
	if !errors.Is(err, service.ErrInvalidArgs) {
		t.Fatalf("expected ErrInvalidArgs, got %v", err)
	}
}

func TestProjectUpdate_Authorization(t *testing.T) {
	t.Parallel()

	store := newFakeProjects()
	svc := service.NewProjectService(store)
	p := mustCreateProject(t, svc, creator)
	if err := store.SetTeamMembers(context.Background(), p.ID, []string{member.UserID}); err != nil {
		t.Fatalf("failed to set members: %v", err)
	}

	title := "Renamed"
	patch := service.ProjectPatch{Title: &title}

	for _, caller := range []auth.Caller{member, stranger} {
		if _, err := svc.Update(context.Background(), p.ID, patch, caller); !errors.Is(err, service.ErrForbidden) {
			t.Fatalf("expected ErrForbidden for %s, got %v", caller.Name, err)
		}
	}
	if _, err := svc.Update(context.Background(), p.ID, patch, creator); err != nil {
		t.Fatalf("creator update failed: %v", err)
	}
	if _, err := svc.Update(context.Background(), p.ID, patch, admin); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestProjectUpdate_DateCounterpart(t *testing.T) {
	t.Parallel()

	svc := service.NewProjectService(newFakeProjects())
	p := mustCreateProject(t, svc, creator)

	// Moving only the end date before the unchanged start date must fail.
	bad := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Update(context.Background(), p.ID, service.ProjectPatch{EndDate: &bad}, creator)
	if !errors.Is(err, service.ErrDateRange) {
		t.Fatalf("expected ErrDateRange, got %v", err)
	}

	// Moving only the start date within range is fine.
	ok := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(context.Background(), p.ID, service.ProjectPatch{StartDate: &ok}, creator)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.StartDate.Equal(ok) {
		t.Fatalf("start date not applied: %v", updated.StartDate)
	}
}

func TestUpdateProgress_StatusRule(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		prepare    int // progress applied first, -1 to skip
		progress   int
		wantStatus models.ProjectStatus
	}{
		{"hundred completes", -1, 100, models.ProjectCompleted},
		{"nonzero starts", -1, 40, models.ProjectInProgress},
		{"zero stays not started", -1, 0, models.ProjectNotStarted},
		{"completed does not revert", 100, 30, models.ProjectCompleted},
		{"in progress stays", 40, 60, models.ProjectInProgress},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewProjectService(newFakeProjects())
			p := mustCreateProject(t, svc, creator)

			if tc.prepare >= 0 {
				if _, err := svc.UpdateProgress(context.Background(), p.ID, tc.prepare, creator); err != nil {
					t.Fatalf("failed to prepare progress: %v", err)
				}
			}

			updated, err := svc.UpdateProgress(context.Background(), p.ID, tc.progress, creator)
			if err != nil {
				t.Fatalf("UpdateProgress returned error: %v", err)
			}
			if updated.Progress != tc.progress {
				t.Fatalf("expected progress %d, got %d", tc.progress, updated.Progress)
			}
			if updated.Status != tc.wantStatus {
				t.Fatalf("expected status %s, got %s", tc.wantStatus, updated.Status)
			}
		})
	}
}

func TestUpdateProgress_Range(t *testing.T) {
	t.Parallel()

	svc := service.NewProjectService(newFakeProjects())
	p := mustCreateProject(t, svc, creator)

	for _, v := range []int{-1, 101} {
		if _, err := svc.UpdateProgress(context.Background(), p.ID, v, creator); !errors.Is(err, service.ErrProgressRange) {
			t.Fatalf("expected ErrProgressRange for %d, got %v", v, err)
		}
	}
}

func TestUpdateProgress_Authorization(t *testing.T) {
	t.Parallel()

	store := newFakeProjects()
	svc := service.NewProjectService(store)
	p := mustCreateProject(t, svc, creator)
	if err := store.SetTeamMembers(context.Background(), p.ID, []string{member.UserID}); err != nil {
		t.Fatalf("failed to set members: %v", err)
	}

	// Team members may move progress even though they cannot edit the project.
	if _, err := svc.UpdateProgress(context.Background(), p.ID, 10, member); err != nil {
		t.Fatalf("member progress update failed: %v", err)
	}
	if _, err := svc.UpdateProgress(context.Background(), p.ID, 20, admin); err != nil {
		t.Fatalf("admin progress update failed: %v", err)
	}
	if _, err := svc.UpdateProgress(context.Background(), p.ID, 30, stranger); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectDelete_Lifecycle(t *testing.T) {
	t.Parallel()

	svc := service.NewProjectService(newFakeProjects())
	p := mustCreateProject(t, svc, creator)

	// Admin override on progress, then creator delete, then a second delete
	// resolves nothing.
	updated, err := svc.UpdateProgress(context.Background(), p.ID, 50, admin)
	if err != nil {
		t.Fatalf("admin UpdateProgress returned error: %v", err)
	}
	if updated.Status != models.ProjectInProgress {
		t.Fatalf("expected In Progress, got %s", updated.Status)
	}

	if err := svc.Delete(context.Background(), p.ID, stranger); !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID, creator); err != nil {
		t.Fatalf("creator delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID, admin); !errors.Is(err, service.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectOps_MalformedID(t *testing.T) {
	t.Parallel()

	store := newFakeProjects()
	svc := service.NewProjectService(store)

	for _, id := range []string{"not-an-id", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		if _, err := svc.Get(context.Background(), id); !errors.Is(err, service.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for %q, got %v", id, err)
		}
		if _, err := svc.UpdateProgress(context.Background(), id, 10, creator); !errors.Is(err, service.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for %q, got %v", id, err)
		}
		if err := svc.Delete(context.Background(), id, creator); !errors.Is(err, service.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for %q, got %v", id, err)
		}
	}
	if store.getCalls != 0 {
		t.Fatalf("storage touched %d times for malformed ids", store.getCalls)
	}
}

func TestProjectList_SearchAndPagination(t *testing.T) {
	t.Parallel()

	svc := service.NewProjectService(newFakeProjects())
	titles := []string{"Alpha rollout", "Beta rollout", "Gamma cleanup"}
	for _, title := range titles {
		in := projectInput()
		in.Title = title
		if _, err := svc.Create(context.Background(), in, creator); err != nil {
			t.Fatalf("failed to prepare project: %v", err)
		}
	}

	page, err := svc.List(context.Background(), service.ProjectFilter{
		Search: "ROLLOUT", SortBy: "title", Page: 1, Limit: 1,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Total != 2 || page.Pages != 2 {
		t.Fatalf("expected total 2 pages 2, got %d/%d", page.Total, page.Pages)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Alpha rollout" {
		t.Fatalf("unexpected page contents: %+v", page.Items)
	}

	// Every scalar column is a legal sort key.
	for _, field := range []string{
		"id", "title", "description", "start_date", "end_date",
		"priority", "status", "progress", "created_by", "created_at", "updated_at",
	} {
		if _, err := svc.List(context.Background(), service.ProjectFilter{SortBy: field}); err != nil {
			t.Fatalf("sort by %s rejected: %v", field, err)
		}
	}

	if _, err := svc.List(context.Background(), service.ProjectFilter{SortBy: "password_hash"}); !errors.Is(err, service.ErrInvalidArgs) {
		t.Fatalf("expected ErrInvalidArgs for bad sort field, got %v", err)
	}
}

func TestProjectListMine(t *testing.T) {
	t.Parallel()

	store := newFakeProjects()
	svc := service.NewProjectService(store)

	mine := mustCreateProject(t, svc, creator)
	other := mustCreateProject(t, svc, stranger)
	if err := store.SetTeamMembers(context.Background(), other.ID, []string{creator.UserID}); err != nil {
		t.Fatalf("failed to set members: %v", err)
	}
	mustCreateProject(t, svc, stranger) // unrelated

	out, err := svc.ListMine(context.Background(), creator)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(out))
	}
	seen := map[string]bool{}
	for _, p := range out {
		seen[p.ID] = true
	}
	if !seen[mine.ID] || !seen[other.ID] {
		t.Fatalf("expected created and member projects, got %+v", seen)
	}
}
