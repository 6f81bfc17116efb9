package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/http/middleware"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type NotificationHandler struct {
	Notifications *service.NotificationService
}

type notificationReq struct {
	User    string `json:"user" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Message string `json:"message" binding:"required"`
	Link    string `json:"link"`
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req notificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	n, err := h.Notifications.Create(c.Request.Context(), service.NotificationInput{
		UserID:  req.User,
		Type:    req.Type,
		Message: req.Message,
		Link:    req.Link,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": n})
}

func (h *NotificationHandler) List(c *gin.Context) {
	out, err := h.Notifications.ListMine(c.Request.Context(), middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.Notifications.UnreadCount(c.Request.Context(), middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.Notifications.MarkRead(c.Request.Context(), c.Param("id"), middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": n})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.Notifications.MarkAllRead(c.Request.Context(), middleware.MustCaller(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications read"})
}
