package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"stageai/api/internal/storage"
)

// Artifact names are 128-bit hex identifiers produced by the service;
// anything else is not worth a store lookup.
var artifactPattern = regexp.MustCompile(`^[0-9a-f]{32}\.png$`)

func (h HandlerSet) ServeImage(c *gin.Context) {
	filename := c.Param("filename")
	if !artifactPattern.MatchString(filename) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "image not found"})
		return
	}

	data, err := h.artifacts.Open(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrArtifactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "image not found"})
			return
		}
		h.renderError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}
