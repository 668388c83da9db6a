// README: Base handler utilities (JSON helpers, ID validation).
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidSessionID ensures session IDs are well-formed UUIDs before they
// reach the cache layer.
func isValidSessionID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}
