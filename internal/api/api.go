// Package api contains the gin HTTP handlers. Handlers translate
// between HTTP and the service layer; all calculation lives in
// internal/nutrition and all persistence in internal/service.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID extracts the authenticated user set by the auth
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
