package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stageai/api/internal/middleware"
)

type historyEntryResponse struct {
	Kind      string    `json:"kind"`
	Prompt    string    `json:"prompt"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h HandlerSet) History(c *gin.Context) {
	username := middleware.CurrentUser(c)

	entries, err := h.generation.History(c.Request.Context(), username)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]historyEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, historyEntryResponse{
			Kind:      string(entry.Kind),
			Prompt:    entry.Prompt,
			Result:    entry.Result,
			CreatedAt: entry.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": resp})
}
