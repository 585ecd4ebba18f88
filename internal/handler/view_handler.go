package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/courseconnect-api/internal/dto"
	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/pkg/response"
)

type viewService interface {
	Render(ctx context.Context, state models.AppState) (*dto.ViewResponse, bool, error)
}

// ViewHandler renders the current view.
type ViewHandler struct {
	service viewService
}

func NewViewHandler(service viewService) *ViewHandler {
	return &ViewHandler{service: service}
}

// Get godoc
// @Summary Render the current view
// @Tags View
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /view [get]
func (h *ViewHandler) Get(c *gin.Context) {
	state, ok := currentState(c)
	if !ok {
		return
	}
	view, hit, err := h.service.Render(c.Request.Context(), state)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, map[string]interface{}{"cache_hit": hit})
}
