package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/pkg/response"
)

type activityService interface {
	List(ctx context.Context, state models.AppState) ([]models.DomainEvent, error)
}

// ActivityHandler exposes the recent domain events.
type ActivityHandler struct {
	service activityService
}

func NewActivityHandler(service activityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List godoc
// @Summary Recent activity
// @Tags Activity
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	state, ok := currentState(c)
	if !ok {
		return
	}
	events, err := h.service.List(c.Request.Context(), state)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events)
}
