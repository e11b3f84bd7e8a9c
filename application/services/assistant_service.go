package services

import (
	"context"

	"go.uber.org/zap"

	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
)

// AssistantService mediates between canvases and the external AI
// collaborator. Every method returns a result, never an error: failures
// at the AI boundary degrade to a result carrying the failure message,
// so a misbehaving provider can never corrupt graph state or bubble up
// as a request failure
type AssistantService struct {
	assistant  ports.Assistant
	canvasRepo ports.CanvasRepository
	registry   *EntityRegistryService
	logger     *zap.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(
	assistant ports.Assistant,
	canvasRepo ports.CanvasRepository,
	registry *EntityRegistryService,
	logger *zap.Logger,
) *AssistantService {
	return &AssistantService{
		assistant:  assistant,
		canvasRepo: canvasRepo,
		registry:   registry,
		logger:     logger,
	}
}

// Chat answers a free-form question with the canvas graph as context
func (s *AssistantService) Chat(ctx context.Context, canvasID, query string, docs []string) ports.AssistantResult {
	return s.assistant.Complete(ctx, ports.AssistantRequest{
		Context: docs,
		Query:   query,
		Mode:    ports.ModeChat,
		Graph:   s.summarize(ctx, canvasID),
	})
}

// SuggestConnections asks the assistant which nodes should be linked
func (s *AssistantService) SuggestConnections(ctx context.Context, canvasID, query string) ports.AssistantResult {
	return s.assistant.Complete(ctx, ports.AssistantRequest{
		Query: query,
		Mode:  ports.ModeConnect,
		Graph: s.summarize(ctx, canvasID),
	})
}

// AnalyzeSymbol asks the assistant to interpret one symbol or phrase
func (s *AssistantService) AnalyzeSymbol(ctx context.Context, canvasID, symbol string, docs []string) ports.AssistantResult {
	return s.assistant.Complete(ctx, ports.AssistantRequest{
		Context: docs,
		Query:   symbol,
		Mode:    ports.ModeAnalyzeSymbol,
		Graph:   s.summarize(ctx, canvasID),
	})
}

// ExtractEntities runs entity extraction over a document and registers
// whatever the assistant found. The canvas may have changed or vanished
// by the time the call resolves; registration is applied to whatever
// still exists and the result is returned either way
func (s *AssistantService) ExtractEntities(ctx context.Context, userID, canvasID, sourceDoc, content string) (ports.AssistantResult, []*entities.ExtractedEntity) {
	result := s.assistant.Complete(ctx, ports.AssistantRequest{
		Context: []string{content},
		Query:   "extract entities",
		Mode:    ports.ModeExtractEntities,
		Graph:   s.summarize(ctx, canvasID),
	})

	if !result.Success {
		s.logger.Warn("Entity extraction failed",
			zap.String("canvasID", canvasID),
			zap.String("error", result.ErrorMessage))
		return result, nil
	}

	registered, err := s.registry.RegisterExtraction(ctx, userID, sourceDoc, result.Entities, result.Connections)
	if err != nil {
		s.logger.Warn("Failed to register extraction",
			zap.String("userID", userID),
			zap.Error(err))
		return result, nil
	}
	return result, registered
}

// summarize builds the compact graph context for an assistant request
// A canvas that cannot be loaded yields no summary rather than an error
func (s *AssistantService) summarize(ctx context.Context, canvasID string) *ports.GraphSummary {
	if canvasID == "" {
		return nil
	}

	var summary ports.GraphSummary
	err := s.canvasRepo.Read(ctx, aggregates.CanvasID(canvasID), func(canvas *aggregates.Canvas) error {
		labels := make([]string, 0, len(canvas.Nodes()))
		for _, node := range canvas.Nodes() {
			if label := node.Payload().DisplayLabel(); label != "" {
				labels = append(labels, label)
			}
		}
		summary = ports.GraphSummary{
			NodeCount: len(canvas.Nodes()),
			EdgeCount: len(canvas.Edges()),
			Labels:    labels,
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("Skipping graph summary",
			zap.String("canvasID", canvasID),
			zap.Error(err))
		return nil
	}

	return &summary
}
