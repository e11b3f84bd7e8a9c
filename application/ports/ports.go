package ports

import (
	"context"

	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
	"naphtalai-backend/domain/events"
)

// CanvasRepository defines the interface for canvas persistence
// This is a port in hexagonal architecture - the domain doesn't know
// about the implementation
type CanvasRepository interface {
	// Save registers a new canvas
	Save(ctx context.Context, canvas *aggregates.Canvas) error

	// Read runs a read against a canvas while holding its lock, so
	// views are never built from a canvas mid-mutation
	Read(ctx context.Context, id aggregates.CanvasID, fn func(*aggregates.Canvas) error) error

	// ReadByUser runs a read against every canvas owned by a user,
	// newest first, holding each canvas's lock in turn
	ReadByUser(ctx context.Context, userID string, fn func(*aggregates.Canvas) error) error

	// Update runs a mutation against a canvas while holding its lock,
	// serializing concurrent access the way a single UI thread would
	Update(ctx context.Context, id aggregates.CanvasID, fn func(*aggregates.Canvas) error) error

	// Delete removes a canvas
	Delete(ctx context.Context, id aggregates.CanvasID) error
}

// EntityRegistryRepository holds AI-extracted entities and their links
type EntityRegistryRepository interface {
	// SaveEntity registers an extracted entity for a user
	SaveEntity(ctx context.Context, userID string, entity *entities.ExtractedEntity) error

	// GetEntity retrieves an extracted entity by ID
	GetEntity(ctx context.Context, userID string, id valueobjects.EntityID) (*entities.ExtractedEntity, error)

	// ListEntities retrieves all extracted entities for a user
	ListEntities(ctx context.Context, userID string) ([]*entities.ExtractedEntity, error)

	// SaveLink registers an inter-entity connection
	SaveLink(ctx context.Context, userID string, link entities.EntityLink) error

	// ListLinks retrieves all inter-entity connections for a user
	ListLinks(ctx context.Context, userID string) ([]entities.EntityLink, error)

	// DeleteEntity removes an entity and its links
	DeleteEntity(ctx context.Context, userID string, id valueobjects.EntityID) error
}

// AssistantMode tags the kind of analysis requested from the assistant
type AssistantMode string

const (
	ModeChat            AssistantMode = "chat"
	ModeConnect         AssistantMode = "connect"
	ModeAnalyzeSymbol   AssistantMode = "analyze_symbol"
	ModeExtractEntities AssistantMode = "extract_entities"
)

// IsValid reports whether the mode is recognized
func (m AssistantMode) IsValid() bool {
	switch m {
	case ModeChat, ModeConnect, ModeAnalyzeSymbol, ModeExtractEntities:
		return true
	default:
		return false
	}
}

// GraphSummary is the compact graph context sent with assistant requests
type GraphSummary struct {
	NodeCount int      `json:"node_count"`
	EdgeCount int      `json:"edge_count"`
	Labels    []string `json:"labels,omitempty"`
}

// AssistantRequest is the payload for one assistant call
type AssistantRequest struct {
	Context []string       `json:"context"`
	Query   string         `json:"query"`
	Mode    AssistantMode  `json:"mode"`
	Graph   *GraphSummary  `json:"graph,omitempty"`
}

// ExtractedEntityData is one entity reported by the assistant
type ExtractedEntityData struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Context    string  `json:"context"`
	Confidence float64 `json:"confidence"`
}

// ExtractedConnectionData is one inter-entity connection reported by
// the assistant
type ExtractedConnectionData struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Relationship string  `json:"relationship"`
	Confidence   float64 `json:"confidence"`
}

// AssistantResult is the outcome of one assistant call
// Failures are carried in ErrorMessage; the boundary never propagates
// an error past the call site
type AssistantResult struct {
	Success      bool                      `json:"success"`
	Text         string                    `json:"result,omitempty"`
	Entities     []ExtractedEntityData     `json:"entities,omitempty"`
	Connections  []ExtractedConnectionData `json:"connections,omitempty"`
	ErrorMessage string                    `json:"error,omitempty"`
}

// Assistant is the external AI collaborator boundary
// Complete always resolves: failures become a result with Success false
type Assistant interface {
	Complete(ctx context.Context, req AssistantRequest) AssistantResult
}

// EventBus publishes domain events to interested consumers
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, batch []events.DomainEvent) error
}
