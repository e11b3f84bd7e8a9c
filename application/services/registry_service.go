package services

import (
	"context"

	"go.uber.org/zap"

	"naphtalai-backend/application/ports"
	"naphtalai-backend/application/queries"
	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
)

// EntityRegistryService maintains the per-user registry of AI-extracted
// entities and places registry entries onto canvases as entity nodes
type EntityRegistryService struct {
	registryRepo ports.EntityRegistryRepository
	canvasRepo   ports.CanvasRepository
	cfg          *config.DomainConfig
	logger       *zap.Logger
}

// NewEntityRegistryService creates a new entity registry service
func NewEntityRegistryService(
	registryRepo ports.EntityRegistryRepository,
	canvasRepo ports.CanvasRepository,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *EntityRegistryService {
	return &EntityRegistryService{
		registryRepo: registryRepo,
		canvasRepo:   canvasRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

// RegisterExtraction stores the entities and connections one extraction
// run produced. Malformed entries are skipped rather than failing the
// whole batch, since extraction output is best-effort by nature
func (s *EntityRegistryService) RegisterExtraction(
	ctx context.Context,
	userID, sourceDoc string,
	extracted []ports.ExtractedEntityData,
	connections []ports.ExtractedConnectionData,
) ([]*entities.ExtractedEntity, error) {
	registered := make([]*entities.ExtractedEntity, 0, len(extracted))
	for _, data := range extracted {
		entity, err := entities.NewExtractedEntity(data.Name, data.Type, data.Context, sourceDoc, data.Confidence)
		if err != nil {
			s.logger.Debug("Skipping malformed extracted entity",
				zap.String("name", data.Name),
				zap.Error(err))
			continue
		}
		if err := s.registryRepo.SaveEntity(ctx, userID, entity); err != nil {
			return nil, err
		}
		registered = append(registered, entity)
	}

	for _, conn := range connections {
		if conn.From == "" || conn.To == "" {
			continue
		}
		link := entities.EntityLink{
			From:         conn.From,
			To:           conn.To,
			Relationship: conn.Relationship,
			Confidence:   conn.Confidence,
		}
		if err := s.registryRepo.SaveLink(ctx, userID, link); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Extraction registered",
		zap.String("userID", userID),
		zap.String("sourceDoc", sourceDoc),
		zap.Int("entities", len(registered)),
		zap.Int("connections", len(connections)))
	return registered, nil
}

// ListEntities returns every registered entity for a user
func (s *EntityRegistryService) ListEntities(ctx context.Context, userID string) ([]*entities.ExtractedEntity, error) {
	return s.registryRepo.ListEntities(ctx, userID)
}

// ListLinks returns every registered inter-entity connection for a user
func (s *EntityRegistryService) ListLinks(ctx context.Context, userID string) ([]entities.EntityLink, error) {
	return s.registryRepo.ListLinks(ctx, userID)
}

// DeleteEntity removes a registry entry and its links
func (s *EntityRegistryService) DeleteEntity(ctx context.Context, userID, entityID string) error {
	id, err := valueobjects.NewEntityIDFromString(entityID)
	if err != nil {
		return err
	}
	return s.registryRepo.DeleteEntity(ctx, userID, id)
}

// Materialize places a registry entry onto a canvas as an entity node
// and returns the created node's read model
func (s *EntityRegistryService) Materialize(ctx context.Context, userID, canvasID, entityID string, x, y float64) (queries.NodeView, error) {
	id, err := valueobjects.NewEntityIDFromString(entityID)
	if err != nil {
		return queries.NodeView{}, err
	}

	entity, err := s.registryRepo.GetEntity(ctx, userID, id)
	if err != nil {
		return queries.NodeView{}, err
	}

	position, err := valueobjects.NewPosition(x, y)
	if err != nil {
		return queries.NodeView{}, err
	}
	size, err := valueobjects.NewSize(s.cfg.DefaultNodeWidth, s.cfg.DefaultNodeHeight)
	if err != nil {
		return queries.NodeView{}, err
	}

	node, err := entities.ReconstructNode(valueobjects.NewNodeID(), entity.ToPayload(), position, size)
	if err != nil {
		return queries.NodeView{}, err
	}

	err = s.canvasRepo.Update(ctx, aggregates.CanvasID(canvasID), func(canvas *aggregates.Canvas) error {
		return canvas.AddNode(node)
	})
	if err != nil {
		return queries.NodeView{}, err
	}

	s.logger.Info("Entity materialized",
		zap.String("canvasID", canvasID),
		zap.String("entityID", entityID),
		zap.String("nodeID", node.ID().String()))
	return queries.NewNodeView(node), nil
}
