package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/courseconnect-api/internal/models"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
)

type fakeChatSrv struct {
	history []models.ChatMessage
	err     error
}

func (f *fakeChatSrv) History() []models.ChatMessage { return f.history }
func (f *fakeChatSrv) Pending() bool                 { return false }

func (f *fakeChatSrv) Send(_ context.Context, msg string) (models.ChatMessage, error) {
	if f.err != nil {
		return models.ChatMessage{}, f.err
	}
	reply := models.ChatMessage{Role: models.ChatRoleModel, Text: "echo: " + msg}
	f.history = append(f.history, models.ChatMessage{Role: models.ChatRoleUser, Text: msg}, reply)
	return reply, nil
}

type fakeSyllabusSrv struct {
	draft *models.SyllabusDraft
	err   error
}

func (f *fakeSyllabusSrv) Request(_ context.Context, _ models.AppState, title string, category models.CourseCategory) (*models.SyllabusDraft, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.draft = &models.SyllabusDraft{ID: "d1", Title: title, Category: category, Status: models.SyllabusDraftPending}
	return f.draft, nil
}

func (f *fakeSyllabusSrv) Get(_ context.Context, id string) (*models.SyllabusDraft, error) {
	if f.draft == nil || f.draft.ID != id {
		return nil, appErrors.ErrNotFound
	}
	return f.draft, nil
}

func TestAssistantHandlerSend(t *testing.T) {
	chat := &fakeChatSrv{}
	h := NewAssistantHandler(chat, nil)

	c, rec := newContext(t, http.MethodPost, "/assistant/chat", nil, map[string]string{"message": "hi"})
	h.Send(c)

	require.Equal(t, http.StatusOK, rec.Code)
	body := string(decode(t, rec).Data)
	assert.Contains(t, body, `"text":"echo: hi"`)
	assert.Contains(t, body, `"history":[`)
}

func TestAssistantHandlerSendConflict(t *testing.T) {
	h := NewAssistantHandler(&fakeChatSrv{err: appErrors.ErrConflict}, nil)
	c, rec := newContext(t, http.MethodPost, "/assistant/chat", nil, map[string]string{"message": "hi"})
	h.Send(c)
	assert.Equal(t, http.StatusConflict, rec.Code)

	c, rec = newContext(t, http.MethodPost, "/assistant/chat", nil, map[string]string{})
	h.Send(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssistantHandlerSyllabusFlow(t *testing.T) {
	syllabus := &fakeSyllabusSrv{}
	h := NewAssistantHandler(&fakeChatSrv{}, syllabus)

	state := models.AppState{User: instructor}
	c, rec := newContext(t, http.MethodPost, "/assistant/syllabus-drafts", &state, map[string]string{"title": "Go", "category": "CS"})
	h.RequestSyllabus(c)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), `"status":"PENDING"`)

	c, rec = newContext(t, http.MethodGet, "/assistant/syllabus-drafts/d1", nil, nil)
	c.Params = gin.Params{{Key: "id", Value: "d1"}}
	h.GetSyllabus(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(t, http.MethodGet, "/assistant/syllabus-drafts/zz", nil, nil)
	c.Params = gin.Params{{Key: "id", Value: "zz"}}
	h.GetSyllabus(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
