package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
)

// AddNodeHandler places new nodes on a canvas
type AddNodeHandler struct {
	canvasMutator
	cfg *config.DomainConfig
}

// NewAddNodeHandler creates a new add node handler
func NewAddNodeHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *AddNodeHandler {
	return &AddNodeHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
		cfg:           cfg,
	}
}

// Handle executes the add node command
func (h *AddNodeHandler) Handle(ctx context.Context, cmd commands.AddNodeCommand) error {
	node, err := buildNode(cmd, h.cfg)
	if err != nil {
		return err
	}

	err = h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		return canvas.AddNode(node)
	})
	if err != nil {
		return err
	}

	h.logger.Info("Node added",
		zap.String("canvasID", cmd.CanvasID),
		zap.String("nodeID", cmd.NodeID),
		zap.String("kind", cmd.Kind))
	return nil
}

func buildNode(cmd commands.AddNodeCommand, cfg *config.DomainConfig) (*entities.Node, error) {
	id, err := valueobjects.NewNodeIDFromString(cmd.NodeID)
	if err != nil {
		return nil, fmt.Errorf("invalid node ID: %w", err)
	}

	position, err := valueobjects.NewPosition(cmd.X, cmd.Y)
	if err != nil {
		return nil, fmt.Errorf("invalid position: %w", err)
	}

	width, height := cmd.Width, cmd.Height
	if width <= 0 {
		width = cfg.DefaultNodeWidth
	}
	if height <= 0 {
		height = cfg.DefaultNodeHeight
	}
	size, err := valueobjects.NewSize(width, height)
	if err != nil {
		return nil, fmt.Errorf("invalid size: %w", err)
	}

	var payload valueobjects.NodePayload
	switch valueobjects.NodeKind(cmd.Kind) {
	case valueobjects.KindFile:
		payload = valueobjects.FilePayload{
			Label:        cmd.Label,
			Content:      cmd.Content,
			ThumbnailRef: cmd.ThumbnailRef,
			FileRef:      cmd.FileRef,
			Source:       cmd.Source,
			Tags:         cmd.Tags,
		}
	case valueobjects.KindNote:
		payload = valueobjects.NotePayload{
			Label:   cmd.Label,
			Content: cmd.Content,
			Tags:    cmd.Tags,
		}
	case valueobjects.KindEntity:
		payload = valueobjects.EntityPayload{
			Label:      cmd.Label,
			Content:    cmd.Content,
			EntityType: cmd.EntityType,
			Source:     cmd.Source,
			Tags:       cmd.Tags,
		}
	default:
		return nil, fmt.Errorf("unknown node kind %q", cmd.Kind)
	}

	return entities.ReconstructNode(id, payload, position, size)
}

// UpdateNodeHandler patches node content fields
type UpdateNodeHandler struct {
	canvasMutator
}

// NewUpdateNodeHandler creates a new update node handler
func NewUpdateNodeHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *UpdateNodeHandler {
	return &UpdateNodeHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the update node command
// Updates against a node that no longer exists are ignored
func (h *UpdateNodeHandler) Handle(ctx context.Context, cmd commands.UpdateNodeCommand) error {
	nodeID, err := valueobjects.NewNodeIDFromString(cmd.NodeID)
	if err != nil {
		return fmt.Errorf("invalid node ID: %w", err)
	}

	patch := valueobjects.PayloadPatch{
		Label:        cmd.Label,
		Content:      cmd.Content,
		EntityType:   cmd.EntityType,
		Tags:         cmd.Tags,
		Pinned:       cmd.Pinned,
		ThumbnailRef: cmd.ThumbnailRef,
	}

	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.UpdateNodePayload(nodeID, patch)
		return nil
	})
}

// MoveNodeHandler repositions nodes
type MoveNodeHandler struct {
	canvasMutator
}

// NewMoveNodeHandler creates a new move node handler
func NewMoveNodeHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *MoveNodeHandler {
	return &MoveNodeHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the move node command
func (h *MoveNodeHandler) Handle(ctx context.Context, cmd commands.MoveNodeCommand) error {
	nodeID, err := valueobjects.NewNodeIDFromString(cmd.NodeID)
	if err != nil {
		return fmt.Errorf("invalid node ID: %w", err)
	}

	position, err := valueobjects.NewPosition(cmd.X, cmd.Y)
	if err != nil {
		return fmt.Errorf("invalid position: %w", err)
	}

	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.MoveNode(nodeID, position)
		return nil
	})
}

// ResizeNodeHandler changes node dimensions
type ResizeNodeHandler struct {
	canvasMutator
}

// NewResizeNodeHandler creates a new resize node handler
func NewResizeNodeHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *ResizeNodeHandler {
	return &ResizeNodeHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the resize node command
func (h *ResizeNodeHandler) Handle(ctx context.Context, cmd commands.ResizeNodeCommand) error {
	nodeID, err := valueobjects.NewNodeIDFromString(cmd.NodeID)
	if err != nil {
		return fmt.Errorf("invalid node ID: %w", err)
	}

	size, err := valueobjects.NewSize(cmd.Width, cmd.Height)
	if err != nil {
		return fmt.Errorf("invalid size: %w", err)
	}

	return h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.ResizeNode(nodeID, size)
		return nil
	})
}

// DeleteNodeHandler removes nodes and every edge touching them
type DeleteNodeHandler struct {
	canvasMutator
}

// NewDeleteNodeHandler creates a new delete node handler
func NewDeleteNodeHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *DeleteNodeHandler {
	return &DeleteNodeHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
	}
}

// Handle executes the delete node command
func (h *DeleteNodeHandler) Handle(ctx context.Context, cmd commands.DeleteNodeCommand) error {
	nodeID, err := valueobjects.NewNodeIDFromString(cmd.NodeID)
	if err != nil {
		return fmt.Errorf("invalid node ID: %w", err)
	}

	err = h.mutate(ctx, cmd.CanvasID, func(canvas *aggregates.Canvas) error {
		canvas.DeleteNode(nodeID)
		return nil
	})
	if err != nil {
		return err
	}

	h.logger.Info("Node deleted",
		zap.String("canvasID", cmd.CanvasID),
		zap.String("nodeID", cmd.NodeID))
	return nil
}

// DropFileHandler turns dropped documents into file nodes
type DropFileHandler struct {
	canvasMutator
	cfg *config.DomainConfig
}

// NewDropFileHandler creates a new drop file handler
func NewDropFileHandler(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *DropFileHandler {
	return &DropFileHandler{
		canvasMutator: canvasMutator{canvasRepo: canvasRepo, eventBus: eventBus, logger: logger},
		cfg:           cfg,
	}
}

// Handle executes the drop file command
func (h *DropFileHandler) Handle(ctx context.Context, cmd commands.DropFileCommand) error {
	return (&AddNodeHandler{canvasMutator: h.canvasMutator, cfg: h.cfg}).Handle(ctx, commands.AddNodeCommand{
		CanvasID: cmd.CanvasID,
		NodeID:   cmd.NodeID,
		Kind:     string(valueobjects.KindFile),
		Label:    cmd.Name,
		Content:  cmd.Content,
		FileRef:  cmd.FileRef,
		Source:   "drop",
		X:        cmd.X,
		Y:        cmd.Y,
	})
}
