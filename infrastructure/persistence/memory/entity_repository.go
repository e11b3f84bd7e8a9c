package memory

import (
	"context"
	"sort"
	"sync"

	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
	pkgerrors "naphtalai-backend/pkg/errors"
)

type userRegistry struct {
	entities map[valueobjects.EntityID]*entities.ExtractedEntity
	links    []entities.EntityLink
}

// EntityRegistryRepository is the in-memory extracted-entity store
type EntityRegistryRepository struct {
	mu    sync.RWMutex
	users map[string]*userRegistry
}

// NewEntityRegistryRepository creates a new in-memory entity registry
func NewEntityRegistryRepository() *EntityRegistryRepository {
	return &EntityRegistryRepository{
		users: make(map[string]*userRegistry),
	}
}

func (r *EntityRegistryRepository) registryFor(userID string) *userRegistry {
	registry, exists := r.users[userID]
	if !exists {
		registry = &userRegistry{
			entities: make(map[valueobjects.EntityID]*entities.ExtractedEntity),
		}
		r.users[userID] = registry
	}
	return registry
}

// SaveEntity registers an extracted entity for a user
func (r *EntityRegistryRepository) SaveEntity(ctx context.Context, userID string, entity *entities.ExtractedEntity) error {
	if entity == nil {
		return pkgerrors.NewValidationError("entity cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.registryFor(userID).entities[entity.ID()] = entity
	return nil
}

// GetEntity retrieves an extracted entity by ID
func (r *EntityRegistryRepository) GetEntity(ctx context.Context, userID string, id valueobjects.EntityID) (*entities.ExtractedEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registry, exists := r.users[userID]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("entity")
	}
	entity, exists := registry.entities[id]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("entity")
	}
	return entity, nil
}

// ListEntities retrieves all extracted entities for a user, newest first
func (r *EntityRegistryRepository) ListEntities(ctx context.Context, userID string) ([]*entities.ExtractedEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registry, exists := r.users[userID]
	if !exists {
		return nil, nil
	}

	list := make([]*entities.ExtractedEntity, 0, len(registry.entities))
	for _, entity := range registry.entities {
		list = append(list, entity)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt().After(list[j].CreatedAt())
	})
	return list, nil
}

// SaveLink registers an inter-entity connection
func (r *EntityRegistryRepository) SaveLink(ctx context.Context, userID string, link entities.EntityLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	registry := r.registryFor(userID)
	registry.links = append(registry.links, link)
	return nil
}

// ListLinks retrieves all inter-entity connections for a user
func (r *EntityRegistryRepository) ListLinks(ctx context.Context, userID string) ([]entities.EntityLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registry, exists := r.users[userID]
	if !exists {
		return nil, nil
	}
	links := make([]entities.EntityLink, len(registry.links))
	copy(links, registry.links)
	return links, nil
}

// DeleteEntity removes an entity and every link naming it
func (r *EntityRegistryRepository) DeleteEntity(ctx context.Context, userID string, id valueobjects.EntityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	registry, exists := r.users[userID]
	if !exists {
		return pkgerrors.NewNotFoundError("entity")
	}
	entity, exists := registry.entities[id]
	if !exists {
		return pkgerrors.NewNotFoundError("entity")
	}
	delete(registry.entities, id)

	name := entity.Name()
	kept := registry.links[:0]
	for _, link := range registry.links {
		if link.From != name && link.To != name {
			kept = append(kept, link)
		}
	}
	registry.links = kept
	return nil
}

var _ ports.EntityRegistryRepository = (*EntityRegistryRepository)(nil)
