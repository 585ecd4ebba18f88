package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/pkg/llm"
)

// Fixed replies used when the generation provider fails or returns nothing.
const (
	SyllabusFailureFallback = "Failed to generate syllabus. Please try again manually."
	SyllabusEmptyFallback   = "Course details could not be generated at this time."
	ChatFailureFallback     = "I'm having trouble connecting to the server right now."
	ChatEmptyFallback       = "I'm sorry, I didn't catch that."
)

// Generator is the text generation capability the assistant depends on.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, req llm.ChatRequest) (string, error)
}

// AdvisoryService formats course context into prompts and relays the
// provider's reply. It never returns an error; failures become fallback text.
type AdvisoryService struct {
	generator Generator
	metrics   *MetricsService
	logger    *zap.Logger
}

func NewAdvisoryService(generator Generator, metrics *MetricsService, logger *zap.Logger) *AdvisoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisoryService{generator: generator, metrics: metrics, logger: logger}
}

// RequestSyllabus asks for a short description and a four week syllabus separated by "---".
func (s *AdvisoryService) RequestSyllabus(ctx context.Context, title string, category models.CourseCategory) string {
	text, err := s.generator.GenerateText(ctx, SyllabusPrompt(title, category))
	return s.relay("syllabus", text, err, SyllabusFailureFallback, SyllabusEmptyFallback)
}

// RequestChatReply answers message given the prior conversation and the current catalog.
func (s *AdvisoryService) RequestChatReply(ctx context.Context, history []models.ChatMessage, message string, courses []models.Course) string {
	turns := make([]llm.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, llm.Turn{Role: string(m.Role), Text: m.Text})
	}
	text, err := s.generator.Chat(ctx, llm.ChatRequest{
		SystemInstruction: AdvisorInstruction(courses),
		History:           turns,
		Message:           message,
	})
	return s.relay("chat", text, err, ChatFailureFallback, ChatEmptyFallback)
}

func (s *AdvisoryService) relay(kind, text string, err error, onError, onEmpty string) string {
	switch {
	case err != nil:
		s.metrics.RecordAssistant(kind, "error")
		s.logger.Warn("generation failed, using fallback", zap.String("kind", kind), zap.Error(err))
		return onError
	case strings.TrimSpace(text) == "":
		s.metrics.RecordAssistant(kind, "empty")
		return onEmpty
	default:
		s.metrics.RecordAssistant(kind, "ok")
		return text
	}
}

// SyllabusPrompt renders the curriculum designer prompt.
func SyllabusPrompt(title string, category models.CourseCategory) string {
	return fmt.Sprintf(`You are an expert curriculum designer.
Create a concise but attractive course description (max 50 words) and a 4-week high-level syllabus (bullet points) for a course titled %q in the category of %q.
Format the output as a simple text block with the description first, followed by "%s" and then the syllabus.`,
		title, string(category), models.SyllabusDelimiter)
}

// CourseContextLine serialises one course for the advisor instruction.
func CourseContextLine(c models.Course) string {
	return fmt.Sprintf("ID: %s, Code: %s, Title: %s, Instructor: %s, Schedule: %s, Seats: %d",
		c.ID, c.Code, c.Title, c.InstructorName, c.Schedule, c.SeatsRemaining())
}

// AdvisorInstruction renders the system instruction with every listed course.
func AdvisorInstruction(courses []models.Course) string {
	lines := make([]string, len(courses))
	for i, c := range courses {
		lines[i] = CourseContextLine(c)
	}
	return fmt.Sprintf(`You are "CourseBot", a helpful academic advisor for the CourseConnect platform.
Your goal is to help students choose courses and answer questions about the schedule.

Here is the current list of available courses:
%s

Rules:
1. Be friendly and concise.
2. If a student asks for recommendations, ask about their interests first if not provided.
3. Only recommend courses from the list provided.
4. If a course is full (Seats <= 0), mention that.`, strings.Join(lines, "\n"))
}
