package entities

import (
	"time"

	"naphtalai-backend/domain/core/valueobjects"
	pkgerrors "naphtalai-backend/pkg/errors"
)

// ExtractedEntity is an entity produced by document analysis and held in
// the registry until it is materialized as a canvas node
type ExtractedEntity struct {
	id         valueobjects.EntityID
	name       string
	entityType string
	context    string
	sourceDoc  string
	confidence float64
	createdAt  time.Time
}

// NewExtractedEntity creates a registry entity with validation
func NewExtractedEntity(name, entityType, context, sourceDoc string, confidence float64) (*ExtractedEntity, error) {
	if name == "" {
		return nil, pkgerrors.NewValidationError("entity name cannot be empty")
	}
	if confidence < 0 || confidence > 1 {
		confidence = 0.5
	}
	if entityType == "" {
		entityType = "concept"
	}

	return &ExtractedEntity{
		id:         valueobjects.NewEntityID(),
		name:       name,
		entityType: entityType,
		context:    context,
		sourceDoc:  sourceDoc,
		confidence: confidence,
		createdAt:  time.Now(),
	}, nil
}

// ID returns the entity's unique identifier
func (e *ExtractedEntity) ID() valueobjects.EntityID {
	return e.id
}

// Name returns the entity name
func (e *ExtractedEntity) Name() string {
	return e.name
}

// EntityType returns the entity sub-type (person, lodge, symbol, ...)
func (e *ExtractedEntity) EntityType() string {
	return e.entityType
}

// Context returns the surrounding text the entity was extracted from
func (e *ExtractedEntity) Context() string {
	return e.context
}

// SourceDoc returns the provenance document reference
func (e *ExtractedEntity) SourceDoc() string {
	return e.sourceDoc
}

// Confidence returns the extraction confidence in [0,1]
func (e *ExtractedEntity) Confidence() float64 {
	return e.confidence
}

// CreatedAt returns when the entity was extracted
func (e *ExtractedEntity) CreatedAt() time.Time {
	return e.createdAt
}

// ToPayload converts the registry entity into an entity-kind node payload
func (e *ExtractedEntity) ToPayload() valueobjects.EntityPayload {
	return valueobjects.EntityPayload{
		Label:      e.name,
		Content:    e.context,
		EntityType: e.entityType,
		Source:     e.sourceDoc,
	}
}

// EntityLink is an inter-entity connection reported by analysis
// Endpoints are entity names as reported by the extractor; the registry
// does not require both ends to resolve to stored entities
type EntityLink struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Relationship string  `json:"relationship"`
	Confidence   float64 `json:"confidence"`
}
