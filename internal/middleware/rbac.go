package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/courseconnect-api/internal/models"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
	"github.com/noah-isme/courseconnect-api/pkg/response"
)

// Capability is a policy predicate over the current user.
type Capability func(models.User) bool

// Require aborts with 403 unless the current user holds capability. It must
// run after Session.
func Require(capability Capability, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, ok := StateFromContext(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrInternal, "session state missing"))
			c.Abort()
			return
		}
		if !capability(state.User) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, message))
			c.Abort()
			return
		}
		c.Next()
	}
}
