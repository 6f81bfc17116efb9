// Package authz holds the ownership/role decision rules. Every function is a
// pure predicate over the caller and the already-loaded resource, so the rules
// are testable without HTTP or storage. Existence checks happen before these
// are consulted.
package authz

import (
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

// CanModifyProject covers general update and delete: admin or creator only.
func CanModifyProject(c auth.Caller, p *models.Project) bool {
	return c.IsAdmin() || c.UserID == p.CreatedByID
}

// CanUpdateProgress additionally admits team members.
func CanUpdateProgress(c auth.Caller, p *models.Project) bool {
	return c.IsAdmin() || c.UserID == p.CreatedByID || p.IsMember(c.UserID)
}

// CanUpdateTask admits admin, the task's creator, the owning project's
// creator, and any current assignee.
func CanUpdateTask(c auth.Caller, t *models.Task, projectCreator string) bool {
	return c.IsAdmin() ||
		c.UserID == t.CreatedByID ||
		c.UserID == projectCreator ||
		t.IsAssignee(c.UserID)
}

// CanDeleteTask is CanUpdateTask minus the plain-assignee grant.
func CanDeleteTask(c auth.Caller, t *models.Task, projectCreator string) bool {
	return c.IsAdmin() ||
		c.UserID == t.CreatedByID ||
		c.UserID == projectCreator
}

// CanModifyEvent: calendar events follow the project rule, creator or admin.
func CanModifyEvent(c auth.Caller, e *models.CalendarEvent) bool {
	return c.IsAdmin() || c.UserID == e.CreatedByID
}
