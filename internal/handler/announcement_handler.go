package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/courseconnect-api/internal/dto"
	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/pkg/response"
)

type announcementService interface {
	List(ctx context.Context) []models.Announcement
	Create(ctx context.Context, state models.AppState, draft models.AnnouncementDraft) (*models.Announcement, uint64, error)
}

// AnnouncementHandler exposes announcement endpoints.
type AnnouncementHandler struct {
	service announcementService
}

func NewAnnouncementHandler(service announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// List godoc
// @Summary List announcements, newest first
// @Tags Announcements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()))
}

// Create godoc
// @Summary Post an announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body models.AnnouncementDraft true "Announcement"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	state, ok := currentState(c)
	if !ok {
		return
	}
	var draft models.AnnouncementDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, bindError(err))
		return
	}
	ann, version, err := h.service.Create(c.Request.Context(), state, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, ann, dto.MutationMeta{Changed: true, Version: version}.Map())
}
