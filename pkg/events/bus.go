// Package events carries domain events between services over an in-process
// watermill pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// Publisher is the write side of the bus used by services.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Bus is a gochannel-backed publisher and subscriber. Publish blocks until
// every subscriber has acked, so a single consumer sees events in publish order.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *zap.Logger
}

// BusConfig sizes the subscriber output buffer.
type BusConfig struct {
	OutputBuffer int64
	Logger       *zap.Logger
}

func NewBus(cfg BusConfig) *Bus {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.OutputBuffer <= 0 {
		cfg.OutputBuffer = 64
	}
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            cfg.OutputBuffer,
		BlockPublishUntilSubscriberAck: true,
	}, NewZapAdapter(cfg.Logger))
	return &Bus{pubsub: pubsub, logger: cfg.Logger}
}

// Publish encodes payload as JSON and publishes it on topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns the message stream for topic. The channel closes when ctx ends or the bus closes.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// Decode acks msg and unmarshals its payload. Malformed payloads are acked
// too; gochannel would redeliver a nacked message forever.
func Decode(msg *message.Message, dest any) error {
	msg.Ack()
	if err := json.Unmarshal(msg.Payload, dest); err != nil {
		return fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}
	return nil
}
