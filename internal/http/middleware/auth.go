package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/auth"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

const callerKey = "caller"

// Auth verifies the bearer token and resolves the embedded user id against
// storage, so a token for a deleted account is rejected. The resulting caller
// context is attached for downstream handlers.
func Auth(jwtSecret string, users service.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			return
		}

		caller, err := auth.ParseToken(strings.TrimPrefix(h, "Bearer "), jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		u, err := users.GetByID(c.Request.Context(), caller.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
			return
		}

		// The stored role wins over whatever the token claims.
		c.Set(callerKey, auth.Caller{UserID: u.ID, Name: u.Name, Role: u.Role})
		c.Next()
	}
}

func MustCaller(c *gin.Context) auth.Caller {
	v, _ := c.Get(callerKey)
	return v.(auth.Caller)
}
