package handlers

import (
	"context"

	"go.uber.org/zap"

	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/events"
)

// canvasMutator bundles the plumbing every canvas command handler
// shares: run the mutation under the repository lock, then publish
// whatever events the aggregate recorded
type canvasMutator struct {
	canvasRepo ports.CanvasRepository
	eventBus   ports.EventBus
	logger     *zap.Logger
}

func (m *canvasMutator) mutate(ctx context.Context, canvasID string, fn func(*aggregates.Canvas) error) error {
	var pending []events.DomainEvent

	err := m.canvasRepo.Update(ctx, aggregates.CanvasID(canvasID), func(canvas *aggregates.Canvas) error {
		if err := fn(canvas); err != nil {
			return err
		}
		pending = canvas.GetUncommittedEvents()
		canvas.MarkEventsAsCommitted()
		return nil
	})
	if err != nil {
		return err
	}

	if len(pending) > 0 && m.eventBus != nil {
		if err := m.eventBus.PublishBatch(ctx, pending); err != nil {
			m.logger.Warn("Failed to publish canvas events",
				zap.String("canvasID", canvasID),
				zap.Error(err))
		}
	}

	return nil
}
