package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/http/middleware"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type EventHandler struct {
	Events *service.EventService
}

type eventReq struct {
	Date        int64  `json:"date" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req eventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	e, err := h.Events.Create(c.Request.Context(), service.EventInput{
		Date:        req.Date,
		Description: req.Description,
	}, middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": e})
}

func (h *EventHandler) Update(c *gin.Context) {
	var req eventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	e, err := h.Events.Update(c.Request.Context(), c.Param("id"), service.EventInput{
		Date:        req.Date,
		Description: req.Description,
	}, middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": e})
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Events.Delete(c.Request.Context(), c.Param("id"), middleware.MustCaller(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Events.ListMine(c.Request.Context(), middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}
