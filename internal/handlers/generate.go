package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stageai/api/internal/middleware"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (h HandlerSet) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "message is required"})
		return
	}

	username := middleware.CurrentUser(c)
	reply, err := h.generation.GenerateText(c.Request.Context(), username, req.Message)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

func (h HandlerSet) GenerateText(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "prompt is required"})
		return
	}

	username := middleware.CurrentUser(c)
	result, err := h.generation.GenerateText(c.Request.Context(), username, req.Prompt)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h HandlerSet) GenerateImage(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "prompt is required"})
		return
	}

	username := middleware.CurrentUser(c)
	imageURL, err := h.generation.GenerateImage(c.Request.Context(), username, req.Prompt)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": imageURL})
}
