package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/http/middleware"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type TaskHandler struct {
	Tasks *service.TaskService
}

type createTaskReq struct {
	Project      string    `json:"project" binding:"required"`
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	AssignedTo   []string  `json:"assigned_to"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	DueDate      time.Time `json:"due_date" binding:"required"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	Progress     *int      `json:"progress"`
	Dependencies []string  `json:"dependencies"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	t, err := h.Tasks.Create(c.Request.Context(), service.TaskInput{
		ProjectID:    req.Project,
		Title:        req.Title,
		Description:  req.Description,
		AssignedTo:   req.AssignedTo,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		Priority:     models.Priority(req.Priority),
		Status:       models.TaskStatus(req.Status),
		Progress:     req.Progress,
		Dependencies: req.Dependencies,
	}, middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": t})
}

func (h *TaskHandler) Get(c *gin.Context) {
	t, err := h.Tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t})
}

type updateTaskReq struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	AssignedTo   *[]string  `json:"assigned_to"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
	Priority     *string    `json:"priority"`
	Status       *string    `json:"status"`
	Progress     *int       `json:"progress"`
	Dependencies *[]string  `json:"dependencies"`
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	patch := service.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		AssignedTo:   req.AssignedTo,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		Progress:     req.Progress,
		Dependencies: req.Dependencies,
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		s := models.TaskStatus(*req.Status)
		patch.Status = &s
	}

	t, err := h.Tasks.Update(c.Request.Context(), c.Param("id"), patch, middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": t})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.Tasks.Delete(c.Request.Context(), c.Param("id"), middleware.MustCaller(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

type commentReq struct {
	Text string `json:"text" binding:"required"`
}

func (h *TaskHandler) AddComment(c *gin.Context) {
	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	t, err := h.Tasks.AddComment(c.Request.Context(), c.Param("id"), req.Text, middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": t})
}

func (h *TaskHandler) List(c *gin.Context) {
	f := service.TaskFilter{
		ProjectID:  c.Query("project"),
		AssignedTo: c.Query("assigned_to"),
	}
	if v := c.Query("status"); v != "" {
		s := models.TaskStatus(v)
		f.Status = &s
	}
	if v := c.Query("priority"); v != "" {
		p := models.Priority(v)
		f.Priority = &p
	}

	tasks, err := h.Tasks.List(c.Request.Context(), f)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tasks})
}
