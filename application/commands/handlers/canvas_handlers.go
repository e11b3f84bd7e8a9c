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

// SelectionHandler keeps the canvas selection in sync with the client
type SelectionHandler struct {
	canvasMutator
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *SelectionHandler {
	return &SelectionHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the select command
// IDs that no longer resolve are dropped silently
func (h *SelectionHandler) Handle(ctx context.Context, cmd commands.SelectCommand) error {
	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		switch cmd.Mode {
		case commands.SelectionClear:
			canvas.ClearSelection()
		case commands.SelectionAll:
			canvas.SelectAll()
		case commands.SelectionReplace:
			nodeIDs := make([]valueobjects.NodeID, 0, len(cmd.NodeIDs))
			for _, raw := range cmd.NodeIDs {
				id, err := valueobjects.NewNodeIDFromString(raw)
				if err != nil {
					continue
				}
				nodeIDs = append(nodeIDs, id)
			}
			edgeIDs := make([]valueobjects.EdgeID, 0, len(cmd.EdgeIDs))
			for _, raw := range cmd.EdgeIDs {
				id, err := valueobjects.NewEdgeIDFromString(raw)
				if err != nil {
					continue
				}
				edgeIDs = append(edgeIDs, id)
			}
			canvas.SelectNodes(nodeIDs)
			canvas.SelectEdges(edgeIDs)
		}
		return nil
	})
}

// UndoHandler steps canvases back through history
type UndoHandler struct {
	canvasMutator
}

// NewUndoHandler creates a new undo handler
func NewUndoHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *UndoHandler {
	return &UndoHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the undo command
// Undo at the start of history is a no-op, not an error
func (h *UndoHandler) Handle(ctx context.Context, cmd commands.UndoCommand) error {
	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.Undo()
		return nil
	})
}

// RedoHandler steps canvases forward through history
type RedoHandler struct {
	canvasMutator
}

// NewRedoHandler creates a new redo handler
func NewRedoHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *RedoHandler {
	return &RedoHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the redo command
func (h *RedoHandler) Handle(ctx context.Context, cmd commands.RedoCommand) error {
	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.Redo()
		return nil
	})
}

// HistoryMarkHandler pushes explicit history checkpoints
type HistoryMarkHandler struct {
	canvasMutator
}

// NewHistoryMarkHandler creates a new history mark handler
func NewHistoryMarkHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *HistoryMarkHandler {
	return &HistoryMarkHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the mark history command
func (h *HistoryMarkHandler) Handle(ctx context.Context, cmd commands.MarkHistoryCommand) error {
	tag := cmd.Tag
	if tag == "" {
		tag = "move"
	}
	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.PushHistory(tag)
		return nil
	})
}

// BulkOperationHandler covers the multi-node operations that act on the
// current selection: duplicate, delete, align and distribute
type BulkOperationHandler struct {
	canvasMutator
}

// NewBulkOperationHandler creates a new bulk operation handler
func NewBulkOperationHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *BulkOperationHandler {
	return &BulkOperationHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// HandleDuplicate executes the duplicate selected command
func (h *BulkOperationHandler) HandleDuplicate(ctx context.Context, cmd commands.DuplicateSelectedCommand) error {
	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.DuplicateSelected()
		return nil
	})
}

// HandleDeleteSelected executes the delete selected command
func (h *BulkOperationHandler) HandleDeleteSelected(ctx context.Context, cmd commands.DeleteSelectedCommand) error {
	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.DeleteSelected()
		return nil
	})
}

// HandleAlign executes the align selected command
func (h *BulkOperationHandler) HandleAlign(ctx context.Context, cmd commands.AlignSelectedCommand) error {
	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.AlignSelected(aggregates.AlignDirection(cmd.Direction))
		return nil
	})
}

// HandleDistribute executes the distribute selected command
func (h *BulkOperationHandler) HandleDistribute(ctx context.Context, cmd commands.DistributeSelectedCommand) error {
	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.DistributeSelected(aggregates.Orientation(cmd.Orientation))
		return nil
	})
}

// SettingsHandler changes grid snapping and visibility
type SettingsHandler struct {
	canvasMutator
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *SettingsHandler {
	return &SettingsHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the update settings command
func (h *SettingsHandler) Handle(ctx context.Context, cmd commands.UpdateSettingsCommand) error {
	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		if cmd.SnapToGrid != nil {
			canvas.SetSnapToGrid(*cmd.SnapToGrid)
		}
		if cmd.GridVisible != nil {
			canvas.SetGridVisible(*cmd.GridVisible)
		}
		if cmd.GridSize != nil {
			canvas.SetGridSize(*cmd.GridSize)
		}
		return nil
	})
}

// StrokeHandler records and erases freehand pen strokes
type StrokeHandler struct {
	canvasMutator
}

// NewStrokeHandler creates a new stroke handler
func NewStrokeHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *StrokeHandler {
	return &StrokeHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// HandleCommit executes the commit stroke command
// Strokes shorter than the minimum point count are dropped silently
func (h *StrokeHandler) HandleCommit(ctx context.Context, cmd commands.CommitStrokeCommand) error {
	if len(cmd.Points) == 0 {
		return nil
	}

	start, err := valueobjects.NewPosition(cmd.Points[0].X, cmd.Points[0].Y)
	if err != nil {
		return fmt.Errorf("invalid stroke point: %w", err)
	}

	stroke, err := entities.NewStroke(start, cmd.Color, cmd.Width, cmd.Opacity)
	if err != nil {
		return err
	}
	for _, p := range cmd.Points[1:] {
		point, err := valueobjects.NewPosition(p.X, p.Y)
		if err != nil {
			return fmt.Errorf("invalid stroke point: %w", err)
		}
		stroke.Append(point)
	}

	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.CommitStroke(stroke)
		return nil
	})
}

// HandleErase executes the erase strokes command
func (h *StrokeHandler) HandleErase(ctx context.Context, cmd commands.EraseStrokesCommand) error {
	probe, err := valueobjects.NewPosition(cmd.X, cmd.Y)
	if err != nil {
		return fmt.Errorf("invalid probe point: %w", err)
	}

	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.EraseStrokesNear(probe)
		return nil
	})
}
