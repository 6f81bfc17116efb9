package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

// writeErr maps service errors onto the HTTP taxonomy exactly once. Unknown
// errors become a generic 500; the detail is only echoed outside release mode.
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrInvalidArgs),
		errors.Is(err, service.ErrDateRange),
		errors.Is(err, service.ErrProgressRange),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAdminSecret),
		errors.Is(err, service.ErrRoleMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		logrus.WithError(err).Error("internal error")
		body := gin.H{"message": "internal server error"}
		if gin.Mode() != gin.ReleaseMode {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
}
