package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/models"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
)

// ChatGreeting opens every conversation.
const ChatGreeting = "Hi! I can help you find the perfect course. What are you interested in learning?"

type chatAdvisor interface {
	RequestChatReply(ctx context.Context, history []models.ChatMessage, message string, courses []models.Course) string
}

type courseLister interface {
	Courses() []models.Course
}

// ChatService keeps the single assistant conversation. Only one reply may be
// pending at a time.
type ChatService struct {
	advisor chatAdvisor
	courses courseLister
	logger  *zap.Logger

	mu       sync.Mutex
	history  []models.ChatMessage
	inFlight bool
	epoch    uint64
}

func NewChatService(advisor chatAdvisor, courses courseLister, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{advisor: advisor, courses: courses, logger: logger, history: initialHistory()}
}

func initialHistory() []models.ChatMessage {
	return []models.ChatMessage{{Role: models.ChatRoleModel, Text: ChatGreeting}}
}

// History returns a copy of the conversation.
func (s *ChatService) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.history...)
}

// Pending reports whether a reply is being generated.
func (s *ChatService) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Send appends message, asks the advisor with the prior turns and appends its reply.
func (s *ChatService) Send(ctx context.Context, message string) (models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.ChatMessage{}, appErrors.Clone(appErrors.ErrValidation, "message is required")
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return models.ChatMessage{}, appErrors.Clone(appErrors.ErrConflict, "a reply is already being generated")
	}
	prior := append([]models.ChatMessage(nil), s.history...)
	s.history = append(s.history, models.ChatMessage{Role: models.ChatRoleUser, Text: message})
	s.inFlight = true
	epoch := s.epoch
	s.mu.Unlock()

	text := s.advisor.RequestChatReply(ctx, prior, message, s.courses.Courses())
	reply := models.ChatMessage{Role: models.ChatRoleModel, Text: text}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.logger.Debug("dropping reply for a reset conversation")
		return reply, nil
	}
	s.inFlight = false
	s.history = append(s.history, reply)
	return reply, nil
}

// Reset restarts the conversation from the greeting.
func (s *ChatService) Reset() {
	s.mu.Lock()
	s.history = initialHistory()
	s.inFlight = false
	s.epoch++
	s.mu.Unlock()
}
