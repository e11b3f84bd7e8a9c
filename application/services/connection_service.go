package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/ports"
	"naphtalai-backend/application/queries"
	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/validators"
	"naphtalai-backend/domain/core/valueobjects"
	"naphtalai-backend/domain/events"
	pkgerrors "naphtalai-backend/pkg/errors"
)

// Notice is a transient user-facing message with a display lifetime
type Notice struct {
	Message   string `json:"message"`
	TTLMillis int64  `json:"ttlMillis"`
}

// ConnectResult is the outcome of a connection attempt
// A rejected attempt is a normal result, not an error: the edge is
// absent and the notice explains why
type ConnectResult struct {
	Created bool              `json:"created"`
	Edge    *queries.EdgeView `json:"edge,omitempty"`
	Reason  string            `json:"reason,omitempty"`
	Notice  *Notice           `json:"notice,omitempty"`
}

// ConnectionService runs candidate connections through the connection
// policy and creates the edge when the policy allows it
// This bypasses the command bus because callers need the decision and
// the created edge back, not just success or failure
type ConnectionService struct {
	canvasRepo ports.CanvasRepository
	eventBus   ports.EventBus
	policy     *validators.ConnectionPolicy
	cfg        *config.DomainConfig
	logger     *zap.Logger
}

// NewConnectionService creates a new connection service
func NewConnectionService(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	policy *validators.ConnectionPolicy,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *ConnectionService {
	return &ConnectionService{
		canvasRepo: canvasRepo,
		eventBus:   eventBus,
		policy:     policy,
		cfg:        cfg,
		logger:     logger,
	}
}

// Connect validates and, when allowed, creates a connection
// Handle sides are resolved from the node centers on the dominant axis
func (s *ConnectionService) Connect(ctx context.Context, cmd commands.ConnectNodesCommand) (ConnectResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConnectResult{}, pkgerrors.NewValidationError(fmt.Sprintf("invalid command: %v", err))
	}

	edgeID, err := valueobjects.NewEdgeIDFromString(cmd.EdgeID)
	if err != nil {
		return ConnectResult{}, pkgerrors.NewValidationError(err.Error())
	}
	sourceID, err := valueobjects.NewNodeIDFromString(cmd.SourceID)
	if err != nil {
		return ConnectResult{}, pkgerrors.NewValidationError(err.Error())
	}
	targetID, err := valueobjects.NewNodeIDFromString(cmd.TargetID)
	if err != nil {
		return ConnectResult{}, pkgerrors.NewValidationError(err.Error())
	}

	style := entities.EdgeStyle(cmd.Style)
	if style == "" {
		style = entities.StyleRedString
	}

	var (
		result  ConnectResult
		pending []events.DomainEvent
	)
	err = s.canvasRepo.Update(ctx, aggregates.CanvasID(cmd.CanvasID), func(canvas *aggregates.Canvas) error {
		source, _ := canvas.FindNode(sourceID)
		target, _ := canvas.FindNode(targetID)

		decision := s.policy.Validate(source, target, canvas.Edges())
		if !decision.Valid {
			result = ConnectResult{
				Reason: decision.Reason,
				Notice: s.notice(decision.Reason),
			}
			return nil
		}

		sourceHandle := entities.HandleSide(cmd.SourceHandle)
		targetHandle := entities.HandleSide(cmd.TargetHandle)
		if !sourceHandle.IsValid() || !targetHandle.IsValid() {
			sourceHandle, targetHandle = entities.ResolveHandles(source.Center(), target.Center())
		}
		edge, err := entities.ReconstructEdge(edgeID, entities.EdgeSpec{
			Source:       sourceID,
			Target:       targetID,
			SourceHandle: sourceHandle,
			TargetHandle: targetHandle,
			Label:        decision.Semantic.Label,
			Style:        style,
			SemanticType: decision.Semantic.Type,
			LogicRule:    decision.Semantic.LogicRule,
			Confidence:   s.cfg.DefaultConfidence,
		})
		if err != nil {
			return err
		}
		if err := canvas.AddEdge(edge); err != nil {
			return err
		}

		view := queries.NewEdgeView(edge)
		result = ConnectResult{Created: true, Edge: &view}
		pending = canvas.GetUncommittedEvents()
		canvas.MarkEventsAsCommitted()
		return nil
	})
	if err != nil {
		return ConnectResult{}, err
	}

	if len(pending) > 0 && s.eventBus != nil {
		if err := s.eventBus.PublishBatch(ctx, pending); err != nil {
			s.logger.Warn("Failed to publish connection events",
				zap.String("canvasID", cmd.CanvasID),
				zap.Error(err))
		}
	}

	if result.Created {
		s.logger.Info("Connection created",
			zap.String("canvasID", cmd.CanvasID),
			zap.String("edgeID", cmd.EdgeID),
			zap.String("semanticType", result.Edge.SemanticType))
	} else {
		s.logger.Debug("Connection rejected",
			zap.String("canvasID", cmd.CanvasID),
			zap.String("reason", result.Reason))
	}

	return result, nil
}

// Preview returns the semantic descriptor a connection between two node
// kinds would receive, without touching the graph
func (s *ConnectionService) Preview(source, target valueobjects.NodeKind) validators.SemanticDescriptor {
	return s.policy.Describe(source, target)
}

func (s *ConnectionService) notice(message string) *Notice {
	return &Notice{
		Message:   message,
		TTLMillis: s.cfg.NoticeTTL.Milliseconds(),
	}
}
