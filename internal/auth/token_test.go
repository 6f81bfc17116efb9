package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	u := &models.User{ID: models.NewID(), Name: "alice", Role: models.RoleAdmin}

	token, err := auth.IssueToken(u, "secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	caller, err := auth.ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if caller.UserID != u.ID || caller.Name != "alice" || caller.Role != models.RoleAdmin {
		t.Fatalf("unexpected caller %+v", caller)
	}
	if !caller.IsAdmin() {
		t.Fatal("expected admin caller")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	u := &models.User{ID: models.NewID(), Name: "alice", Role: models.RoleUser}
	token, err := auth.IssueToken(u, "secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	if _, err := auth.ParseToken(token, "other"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	u := &models.User{ID: models.NewID(), Name: "alice", Role: models.RoleUser}
	token, err := auth.IssueToken(u, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	if _, err := auth.ParseToken(token, "secret"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := auth.ParseToken("not.a.token", "secret"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
