package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type MessageHandler struct {
	Messages *service.MessageService
}

type saveMessagesReq struct {
	Room     string `json:"room" binding:"required"`
	Messages []struct {
		Sender    string `json:"sender" binding:"required"`
		Content   string `json:"content" binding:"required"`
		Avatar    string `json:"avatar"`
		Timestamp int64  `json:"timestamp"`
	} `json:"messages" binding:"required,min=1"`
}

// Save is the explicit bulk persistence path; the realtime relay never writes
// here, so persisted history only reflects what clients chose to save.
func (h *MessageHandler) Save(c *gin.Context) {
	var req saveMessagesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	inputs := make([]service.MessageInput, 0, len(req.Messages))
	for _, m := range req.Messages {
		inputs = append(inputs, service.MessageInput{
			Sender:    m.Sender,
			Content:   m.Content,
			Avatar:    m.Avatar,
			Timestamp: m.Timestamp,
		})
	}

	msgs, err := h.Messages.SaveMessages(c.Request.Context(), req.Room, inputs)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": msgs})
}

func (h *MessageHandler) ListByRoom(c *gin.Context) {
	msgs, err := h.Messages.ListByRoom(c.Request.Context(), c.Param("room"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": msgs})
}

func (h *MessageHandler) TeamRoom(c *gin.Context) {
	room, err := h.Messages.TeamRoom(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": room})
}
