package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"naphtalai-backend/application/ports"
	"naphtalai-backend/application/queries"
	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
	"naphtalai-backend/domain/events"
	pkgerrors "naphtalai-backend/pkg/errors"
)

// CanvasService covers canvas lifecycle: creation, deletion and the
// import of previously exported documents
type CanvasService struct {
	canvasRepo ports.CanvasRepository
	eventBus   ports.EventBus
	cfg        *config.DomainConfig
	logger     *zap.Logger
}

// NewCanvasService creates a new canvas service
func NewCanvasService(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *CanvasService {
	return &CanvasService{
		canvasRepo: canvasRepo,
		eventBus:   eventBus,
		cfg:        cfg,
		logger:     logger,
	}
}

// CreateCanvas provisions an empty canvas for a user
func (s *CanvasService) CreateCanvas(ctx context.Context, userID, name string) (*aggregates.Canvas, error) {
	canvas, err := aggregates.NewCanvas(userID, name, s.cfg)
	if err != nil {
		return nil, err
	}

	if err := s.canvasRepo.Save(ctx, canvas); err != nil {
		return nil, fmt.Errorf("failed to save canvas: %w", err)
	}

	s.logger.Info("Canvas created",
		zap.String("canvasID", canvas.ID().String()),
		zap.String("userID", userID))
	return canvas, nil
}

// DeleteCanvas removes a canvas after checking ownership
func (s *CanvasService) DeleteCanvas(ctx context.Context, userID, canvasID string) error {
	err := s.canvasRepo.Read(ctx, aggregates.CanvasID(canvasID), func(canvas *aggregates.Canvas) error {
		if canvas.UserID() != userID {
			return pkgerrors.NewForbiddenError("canvas does not belong to user")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.canvasRepo.Delete(ctx, aggregates.CanvasID(canvasID)); err != nil {
		return err
	}

	s.logger.Info("Canvas deleted",
		zap.String("canvasID", canvasID),
		zap.String("userID", userID))
	return nil
}

// ImportCanvas replaces the canvas content with an exported document
// The replaced state is pushed to history first, so an import can be
// undone like any other mutation
func (s *CanvasService) ImportCanvas(ctx context.Context, canvasID string, doc queries.CanvasExport) error {
	nodes := make([]*entities.Node, 0, len(doc.Nodes))
	for _, view := range doc.Nodes {
		node, err := nodeFromView(view)
		if err != nil {
			return pkgerrors.NewValidationError(fmt.Sprintf("invalid node %q: %v", view.ID, err))
		}
		nodes = append(nodes, node)
	}

	edges := make([]*entities.Edge, 0, len(doc.Edges))
	for _, view := range doc.Edges {
		edge, err := edgeFromView(view)
		if err != nil {
			return pkgerrors.NewValidationError(fmt.Sprintf("invalid edge %q: %v", view.ID, err))
		}
		edges = append(edges, edge)
	}

	var pending []events.DomainEvent
	err := s.canvasRepo.Update(ctx, aggregates.CanvasID(canvasID), func(canvas *aggregates.Canvas) error {
		if err := canvas.ReplaceContent(nodes, edges); err != nil {
			return err
		}
		pending = canvas.GetUncommittedEvents()
		canvas.MarkEventsAsCommitted()
		return nil
	})
	if err != nil {
		return err
	}

	if len(pending) > 0 && s.eventBus != nil {
		if err := s.eventBus.PublishBatch(ctx, pending); err != nil {
			s.logger.Warn("Failed to publish import events",
				zap.String("canvasID", canvasID),
				zap.Error(err))
		}
	}

	s.logger.Info("Canvas imported",
		zap.String("canvasID", canvasID),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)))
	return nil
}

func nodeFromView(view queries.NodeView) (*entities.Node, error) {
	id, err := valueobjects.NewNodeIDFromString(view.ID)
	if err != nil {
		return nil, err
	}
	position, err := valueobjects.NewPosition(view.X, view.Y)
	if err != nil {
		return nil, err
	}
	// width and height are both zero when the node carried no explicit size
	var size valueobjects.Size
	if view.Width != 0 || view.Height != 0 {
		size, err = valueobjects.NewSize(view.Width, view.Height)
		if err != nil {
			return nil, err
		}
	}

	var payload valueobjects.NodePayload
	switch valueobjects.NodeKind(view.Kind) {
	case valueobjects.KindFile:
		payload = valueobjects.FilePayload{
			Label:        view.Label,
			Content:      view.Content,
			ThumbnailRef: view.ThumbnailRef,
			FileRef:      view.FileRef,
			Source:       view.Source,
			Tags:         view.Tags,
			Pinned:       view.Pinned,
		}
	case valueobjects.KindNote:
		payload = valueobjects.NotePayload{
			Label:   view.Label,
			Content: view.Content,
			Tags:    view.Tags,
		}
	case valueobjects.KindEntity:
		payload = valueobjects.EntityPayload{
			Label:      view.Label,
			Content:    view.Content,
			EntityType: view.EntityType,
			Source:     view.Source,
			Tags:       view.Tags,
		}
	default:
		return nil, fmt.Errorf("unknown node kind %q", view.Kind)
	}

	return entities.ReconstructNode(id, payload, position, size)
}

func edgeFromView(view queries.EdgeView) (*entities.Edge, error) {
	id, err := valueobjects.NewEdgeIDFromString(view.ID)
	if err != nil {
		return nil, err
	}
	source, err := valueobjects.NewNodeIDFromString(view.Source)
	if err != nil {
		return nil, err
	}
	target, err := valueobjects.NewNodeIDFromString(view.Target)
	if err != nil {
		return nil, err
	}

	style := entities.EdgeStyle(view.Style)
	if style == "" {
		style = entities.StyleRedString
	}

	return entities.ReconstructEdge(id, entities.EdgeSpec{
		Source:       source,
		Target:       target,
		SourceHandle: entities.HandleSide(view.SourceHandle),
		TargetHandle: entities.HandleSide(view.TargetHandle),
		Label:        view.Label,
		Style:        style,
		SemanticType: view.SemanticType,
		LogicRule:    view.LogicRule,
		Confidence:   view.Confidence,
	})
}
