package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/models"
)

// DomainEventsTopic carries every effective store mutation.
const DomainEventsTopic = "courseconnect.domain_events"

type eventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// emitEvent publishes evt. A publish failure is logged and does not undo the mutation.
func emitEvent(ctx context.Context, pub eventPublisher, logger *zap.Logger, evt models.DomainEvent) {
	if pub == nil {
		return
	}
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	if err := pub.Publish(ctx, DomainEventsTopic, evt); err != nil {
		logger.Warn("publish domain event failed", zap.String("type", string(evt.Type)), zap.Error(err))
	}
}
