package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/courseconnect-api/internal/dto"
	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/policy"
	"github.com/noah-isme/courseconnect-api/pkg/response"
)

type sessionService interface {
	Current(ctx context.Context) (models.AppState, error)
	Users(ctx context.Context) []models.User
	SwitchUser(ctx context.Context, userID string) (models.AppState, error)
	Navigate(ctx context.Context, view models.ViewState) (models.AppState, error)
}

type sessionResetter interface {
	Reset(ctx context.Context, state models.AppState) error
}

// SessionHandler exposes identity selection and view navigation.
type SessionHandler struct {
	sessions sessionService
	resetter sessionResetter
}

func NewSessionHandler(sessions sessionService, resetter sessionResetter) *SessionHandler {
	return &SessionHandler{sessions: sessions, resetter: resetter}
}

func sessionResponse(state models.AppState) dto.SessionResponse {
	return dto.SessionResponse{
		User: state.User,
		View: state.View,
		Capabilities: dto.Capabilities{
			ManageCourses: policy.CanManageCourses(state.User),
			Announce:      policy.CanAnnounce(state.User),
			Enroll:        policy.CanEnroll(state.User),
			ViewActivity:  policy.CanViewActivity(state.User),
		},
	}
}

// Get godoc
// @Summary Current session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	state, err := h.sessions.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionResponse(state))
}

// Users godoc
// @Summary List selectable identities
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *SessionHandler) Users(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.sessions.Users(c.Request.Context()))
}

// SwitchUser godoc
// @Summary Switch the current identity
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body dto.SwitchUserRequest true "Target user"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /session/user [put]
func (h *SessionHandler) SwitchUser(c *gin.Context) {
	var req dto.SwitchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	state, err := h.sessions.SwitchUser(c.Request.Context(), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionResponse(state))
}

// Navigate godoc
// @Summary Select the current view
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body dto.NavigateRequest true "Target view"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /session/view [put]
func (h *SessionHandler) Navigate(c *gin.Context) {
	var req dto.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	state, err := h.sessions.Navigate(c.Request.Context(), req.View)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionResponse(state))
}

// Reset godoc
// @Summary Reset the session to its seed data
// @Tags Session
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /session/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	state, ok := currentState(c)
	if !ok {
		return
	}
	if err := h.resetter.Reset(c.Request.Context(), state); err != nil {
		response.Error(c, err)
		return
	}
	h.Get(c)
}
