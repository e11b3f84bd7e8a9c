package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
)

// UpdateEdgeHandler patches edge attributes
type UpdateEdgeHandler struct {
	canvasMutator
}

// NewUpdateEdgeHandler creates a new update edge handler
func NewUpdateEdgeHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *UpdateEdgeHandler {
	return &UpdateEdgeHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the update edge command
func (h *UpdateEdgeHandler) Handle(ctx context.Context, cmd commands.UpdateEdgeCommand) error {
	edgeID, err := valueobjects.NewEdgeIDFromString(cmd.EdgeID)
	if err != nil {
		return fmt.Errorf("invalid edge ID: %w", err)
	}

	patch := entities.EdgePatch{
		Label:      cmd.Label,
		Confidence: cmd.Confidence,
	}
	if cmd.Style != nil {
		style := entities.EdgeStyle(*cmd.Style)
		patch.Style = &style
	}

	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.UpdateEdgePayload(edgeID, patch)
		return nil
	})
}

// DeleteEdgeHandler removes edges
type DeleteEdgeHandler struct {
	canvasMutator
}

// NewDeleteEdgeHandler creates a new delete edge handler
func NewDeleteEdgeHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *DeleteEdgeHandler {
	return &DeleteEdgeHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the delete edge command
func (h *DeleteEdgeHandler) Handle(ctx context.Context, cmd commands.DeleteEdgeCommand) error {
	edgeID, err := valueobjects.NewEdgeIDFromString(cmd.EdgeID)
	if err != nil {
		return fmt.Errorf("invalid edge ID: %w", err)
	}

	err = h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.DeleteEdge(edgeID)
		return nil
	})
	if err != nil {
		return err
	}

	h.logger.Info("Edge deleted",
		zap.String("canvasID", cmd.CanvasID),
		zap.String("edgeID", cmd.EdgeID))
	return nil
}
