package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/yukikurage/project-management-api/internal/errors"
)

// Context keys for parsed path parameters
const (
	ContextKeyProjectID = "project_id"
	ContextKeyTaskID    = "task_id"
	ContextKeyMemberID  = "member_user_id"
)

// RequireUUIDParam rejects requests whose path parameter is not a UUID and
// stores the parsed value under contextKey.
func RequireUUIDParam(param, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param(param))
		if err != nil {
			apierrors.BadRequest(c, "Invalid "+param)
			c.Abort()
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// UUIDFromContext returns a value stored by RequireUUIDParam, falling back to
// parsing the path parameter directly.
func UUIDFromContext(c *gin.Context, contextKey, param string) (uuid.UUID, bool) {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
