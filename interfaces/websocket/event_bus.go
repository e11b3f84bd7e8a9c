package websocket

import (
	"context"

	"go.uber.org/zap"

	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/events"
)

// EventBus fans domain events out to the WebSocket watchers of the
// canvas that raised them
type EventBus struct {
	hub    *Hub
	logger *zap.Logger
}

// NewEventBus creates a hub-backed event bus
func NewEventBus(hub *Hub, logger *zap.Logger) *EventBus {
	return &EventBus{
		hub:    hub,
		logger: logger,
	}
}

// Publish sends one domain event to the canvas's watchers
func (b *EventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	return b.hub.SendToCanvas(event.GetAggregateID(), event.GetEventType(), event)
}

// PublishBatch sends a batch of domain events in order
// A slow watcher dropping one event does not abort the batch
func (b *EventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	var lastErr error
	for _, event := range batch {
		if err := b.Publish(ctx, event); err != nil {
			b.logger.Warn("Failed to publish event",
				zap.String("eventType", event.GetEventType()),
				zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}

var _ ports.EventBus = (*EventBus)(nil)
