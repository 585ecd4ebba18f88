package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/courseconnect-api/internal/middleware"
	"github.com/noah-isme/courseconnect-api/internal/models"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
	"github.com/noah-isme/courseconnect-api/pkg/response"
)

// currentState returns the session state set by middleware.Session, writing an
// error response when it is missing.
func currentState(c *gin.Context) (models.AppState, bool) {
	state, ok := middleware.StateFromContext(c)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "session state missing"))
		return models.AppState{}, false
	}
	return state, true
}

func bindError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}
