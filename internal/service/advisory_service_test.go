package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/courseconnect-api/internal/models"
)

func TestAdvisoryRequestSyllabus(t *testing.T) {
	gen := &stubGenerator{text: "A fun course.\n---\n- Week 1"}
	svc := NewAdvisoryService(gen, NewMetricsService(), nil)

	out := svc.RequestSyllabus(context.Background(), "Intro to Go", models.CategoryCS)
	assert.Equal(t, "A fun course.\n---\n- Week 1", out)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `titled "Intro to Go" in the category of "CS"`)
	assert.Contains(t, gen.prompts[0], `followed by "---"`)
	assert.Contains(t, gen.prompts[0], "max 50 words")
}

func TestAdvisoryFallbacks(t *testing.T) {
	failing := NewAdvisoryService(&stubGenerator{err: errors.New("network down")}, nil, nil)
	assert.Equal(t, "Failed to generate syllabus. Please try again manually.", failing.RequestSyllabus(context.Background(), "x", models.CategoryArt))
	assert.Equal(t, "I'm having trouble connecting to the server right now.", failing.RequestChatReply(context.Background(), nil, "hi", nil))

	empty := NewAdvisoryService(&stubGenerator{text: "  "}, nil, nil)
	assert.Equal(t, "Course details could not be generated at this time.", empty.RequestSyllabus(context.Background(), "x", models.CategoryArt))
	assert.Equal(t, "I'm sorry, I didn't catch that.", empty.RequestChatReply(context.Background(), nil, "hi", nil))
}

func TestAdvisoryChatRequestShape(t *testing.T) {
	gen := &stubGenerator{text: "Try CS101."}
	svc := NewAdvisoryService(gen, nil, nil)
	courses := newSeededStore().Courses()
	courses[1].Capacity = 0

	history := []models.ChatMessage{{Role: models.ChatRoleModel, Text: ChatGreeting}}
	out := svc.RequestChatReply(context.Background(), history, "Any python?", courses)
	assert.Equal(t, "Try CS101.", out)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Equal(t, "Any python?", req.Message)
	require.Len(t, req.History, 1)
	assert.Equal(t, "model", req.History[0].Role)
	assert.Contains(t, req.SystemInstruction, `You are "CourseBot"`)
	assert.Contains(t, req.SystemInstruction, "ID: c1, Code: CS101, Title: Introduction to Python, Instructor: Dr. Smith, Schedule: Mon/Wed 10:00 AM, Seats: 29")
	assert.Contains(t, req.SystemInstruction, "Seats: 0")
	assert.Contains(t, req.SystemInstruction, "4. If a course is full (Seats <= 0), mention that.")
	assert.Equal(t, 3, strings.Count(req.SystemInstruction, "ID: "))
}
