package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CMAtreya/Smart-Project-Management-System-sub000/internal/suggest"
)

type SuggestHandler struct {
	Extractor suggest.Extractor
}

type suggestReq struct {
	Text string `json:"text" binding:"required"`
}

func (h *SuggestHandler) Suggest(c *gin.Context) {
	var req suggestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	suggestions, err := h.Extractor.Extract(c.Request.Context(), req.Text)
	if err != nil {
		writeErr(c, err)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"data": suggestions})
}
