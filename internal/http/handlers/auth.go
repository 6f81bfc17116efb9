package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/http/middleware"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/models"
	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/service"
)

type AuthHandler struct {
	Users *service.UserService
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	u, err := h.Users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	})
}

type loginReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role"`
	SecretKey string `json:"secret_key"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	token, u, err := h.Users.Login(c.Request.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      models.Role(req.Role),
		SecretKey: req.SecretKey,
	})
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user": gin.H{
			"id":     u.ID,
			"name":   u.Name,
			"email":  u.Email,
			"role":   u.Role,
			"avatar": u.Avatar,
		},
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	caller := middleware.MustCaller(c)
	u, err := h.Users.Get(c.Request.Context(), caller.UserID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": u})
}

type profileReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Avatar   *string `json:"avatar"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	u, err := h.Users.UpdateProfile(c.Request.Context(), middleware.MustCaller(c), service.ProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": u})
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListAll(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}
