package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Caller is the authenticated identity handed to every service call. It is
// built once at the auth boundary and never mutated.
type Caller struct {
	UserID string
	Name   string
	Role   models.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token carrying the user's id, display name and role.
func IssueToken(u *models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Name:   u.Name,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the embedded caller.
// The caller's existence in storage is the middleware's problem, not ours.
func ParseToken(tokenStr, secret string) (Caller, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Caller{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return Caller{}, ErrInvalidToken
	}

	return Caller{
		UserID: claims.UserID,
		Name:   claims.Name,
		Role:   models.Role(claims.Role),
	}, nil
}
