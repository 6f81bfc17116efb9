package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/http/middleware"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type staticUsers struct {
	users map[string]models.User
}

func (s *staticUsers) Create(context.Context, *models.User) error { return nil }
func (s *staticUsers) Save(context.Context, *models.User) error   { return nil }
func (s *staticUsers) List(context.Context) ([]models.User, error) {
	return nil, nil
}
func (s *staticUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, service.ErrUserNotFound
}
func (s *staticUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return &u, nil
}

func newTestRouter(users service.UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", middleware.Auth("secret", users), func(c *gin.Context) {
		caller := middleware.MustCaller(c)
		c.JSON(http.StatusOK, gin.H{"id": caller.UserID, "role": caller.Role})
	})
	return r
}

func TestAuth_MissingToken(t *testing.T) {
	r := newTestRouter(&staticUsers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	r := newTestRouter(&staticUsers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuth_DeletedUser(t *testing.T) {
	u := models.User{ID: models.NewID(), Name: "ghost", Role: models.RoleUser}
	token, err := auth.IssueToken(&u, "secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	// The store does not know the user: a stale token must be rejected.
	r := newTestRouter(&staticUsers{users: map[string]models.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	u := models.User{ID: models.NewID(), Name: "alice", Role: models.RoleAdmin}
	token, err := auth.IssueToken(&u, "secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	r := newTestRouter(&staticUsers{users: map[string]models.User{u.ID: u}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
