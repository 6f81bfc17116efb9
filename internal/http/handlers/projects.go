package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/http/middleware"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type ProjectHandler struct {
	Projects *service.ProjectService
}

type createProjectReq struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Progress    *int      `json:"progress"`
	TeamMembers []string  `json:"team_members"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	p, err := h.Projects.Create(c.Request.Context(), service.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Priority:    models.Priority(req.Priority),
		Status:      models.ProjectStatus(req.Status),
		Progress:    req.Progress,
		TeamMembers: req.TeamMembers,
	}, middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": p})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

type updateProjectReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	TeamMembers *[]string  `json:"team_members"`
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	patch := service.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TeamMembers: req.TeamMembers,
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.Status != nil {
		s := models.ProjectStatus(*req.Status)
		patch.Status = &s
	}

	p, err := h.Projects.Update(c.Request.Context(), c.Param("id"), patch, middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

type progressReq struct {
	Progress *int `json:"progress" binding:"required"`
}

func (h *ProjectHandler) UpdateProgress(c *gin.Context) {
	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	p, err := h.Projects.UpdateProgress(c.Request.Context(), c.Param("id"), *req.Progress, middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.Projects.Delete(c.Request.Context(), c.Param("id"), middleware.MustCaller(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func (h *ProjectHandler) List(c *gin.Context) {
	f := service.ProjectFilter{
		Search: c.Query("search"),
		SortBy: c.Query("sort_by"),
	}
	if v := c.Query("status"); v != "" {
		s := models.ProjectStatus(v)
		f.Status = &s
	}
	if v := c.Query("priority"); v != "" {
		p := models.Priority(v)
		f.Priority = &p
	}
	f.SortDesc = c.Query("order") == "desc"
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	page, err := h.Projects.List(c.Request.Context(), f)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProjectHandler) ListMine(c *gin.Context) {
	projects, err := h.Projects.ListMine(c.Request.Context(), middleware.MustCaller(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": projects})
}
