package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/courseconnect-api/internal/dto"
	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/pkg/response"
)

type chatService interface {
	History() []models.ChatMessage
	Pending() bool
	Send(ctx context.Context, message string) (models.ChatMessage, error)
}

type syllabusService interface {
	Request(ctx context.Context, state models.AppState, title string, category models.CourseCategory) (*models.SyllabusDraft, error)
	Get(ctx context.Context, id string) (*models.SyllabusDraft, error)
}

// AssistantHandler exposes the chat panel and the syllabus generator.
type AssistantHandler struct {
	chat     chatService
	syllabus syllabusService
}

func NewAssistantHandler(chat chatService, syllabus syllabusService) *AssistantHandler {
	return &AssistantHandler{chat: chat, syllabus: syllabus}
}

// History godoc
// @Summary Conversation so far
// @Tags Assistant
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /assistant/chat [get]
func (h *AssistantHandler) History(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.chat.History(), map[string]interface{}{"pending": h.chat.Pending()})
}

// Send godoc
// @Summary Ask the assistant
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body dto.ChatRequest true "Message"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /assistant/chat [post]
func (h *AssistantHandler) Send(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	reply, err := h.chat.Send(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ChatResponse{Reply: reply, History: h.chat.History()})
}

// RequestSyllabus godoc
// @Summary Generate a course description and syllabus
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body dto.SyllabusDraftRequest true "Course title and category"
// @Success 202 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /assistant/syllabus-drafts [post]
func (h *AssistantHandler) RequestSyllabus(c *gin.Context) {
	state, ok := currentState(c)
	if !ok {
		return
	}
	var req dto.SyllabusDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	draft, err := h.syllabus.Request(c.Request.Context(), state, req.Title, req.Category)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+draft.ID)
	response.Accepted(c, draft)
}

// GetSyllabus godoc
// @Summary Poll a syllabus draft
// @Tags Assistant
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assistant/syllabus-drafts/{id} [get]
func (h *AssistantHandler) GetSyllabus(c *gin.Context) {
	draft, err := h.syllabus.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft)
}
