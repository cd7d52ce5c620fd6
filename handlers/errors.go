package handlers

import (
	"errors"
	"net/http"

	"github.com/brightpath/site-backend/internal/content"
	"github.com/gin-gonic/gin"
)

// writeError maps content errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "reason": content.Reason(err)})
	case errors.Is(err, content.ErrInvalidIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
	case errors.Is(err, content.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// bindRecord decodes a JSON object body.
func bindRecord(c *gin.Context) (content.Record, bool) {
	var rec content.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return nil, false
	}
	if rec == nil {
		rec = content.Record{}
	}
	return rec, true
}
