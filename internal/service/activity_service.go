package service

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/policy"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
	"github.com/noah-isme/courseconnect-api/pkg/events"
)

type eventSubscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// ActivityService consumes domain events and keeps the most recent ones for admins.
type ActivityService struct {
	subscriber eventSubscriber
	metrics    *MetricsService
	logger     *zap.Logger
	size       int

	mu     sync.RWMutex
	recent []models.DomainEvent
	done   chan struct{}
}

func NewActivityService(subscriber eventSubscriber, size int, metrics *MetricsService, logger *zap.Logger) *ActivityService {
	if size <= 0 {
		size = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{subscriber: subscriber, metrics: metrics, logger: logger, size: size}
}

// Start subscribes to the domain event topic and consumes until ctx ends.
func (s *ActivityService) Start(ctx context.Context) error {
	msgs, err := s.subscriber.Subscribe(ctx, DomainEventsTopic)
	if err != nil {
		return err
	}
	s.done = make(chan struct{})
	go s.consume(msgs)
	return nil
}

// Wait blocks until the consumer exits.
func (s *ActivityService) Wait() {
	if s.done != nil {
		<-s.done
	}
}

func (s *ActivityService) consume(msgs <-chan *message.Message) {
	defer close(s.done)
	for msg := range msgs {
		var evt models.DomainEvent
		if err := events.Decode(msg, &evt); err != nil {
			s.logger.Warn("discarding malformed domain event", zap.Error(err))
			continue
		}
		s.record(evt)
	}
}

func (s *ActivityService) record(evt models.DomainEvent) {
	s.metrics.RecordDomainEvent(string(evt.Type))
	s.logger.Info("domain event",
		zap.String("type", string(evt.Type)),
		zap.String("course_id", evt.CourseID),
		zap.String("user_id", evt.UserID),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	if evt.Type == models.EventSessionReset {
		s.recent = nil
	}
	s.recent = append([]models.DomainEvent{evt}, s.recent...)
	if len(s.recent) > s.size {
		s.recent = s.recent[:s.size]
	}
}

// List returns recent events newest first. Admin only.
func (s *ActivityService) List(ctx context.Context, state models.AppState) ([]models.DomainEvent, error) {
	if !policy.CanViewActivity(state.User) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins can view activity")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.DomainEvent{}, s.recent...), nil
}
