package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/pkg/response"
)

// ContextStateKey holds the models.AppState of the request.
const ContextStateKey = "app_state"

type sessionProvider interface {
	Current(ctx context.Context) (models.AppState, error)
}

// Session resolves the current user and view once per request and stores
// them in the Gin context for handlers and RBAC checks.
func Session(sessions sessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := sessions.Current(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextStateKey, state)
		c.Next()
	}
}

// StateFromContext returns the state stored by Session.
func StateFromContext(c *gin.Context) (models.AppState, bool) {
	value, exists := c.Get(ContextStateKey)
	if !exists {
		return models.AppState{}, false
	}
	state, ok := value.(models.AppState)
	return state, ok
}
