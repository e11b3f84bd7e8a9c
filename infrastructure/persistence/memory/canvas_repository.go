package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/core/aggregates"
	pkgerrors "naphtalai-backend/pkg/errors"
)

// canvasRecord pairs a canvas with its own mutex so mutations against
// different canvases never contend with each other
type canvasRecord struct {
	mu     sync.Mutex
	canvas *aggregates.Canvas
}

// CanvasRepository is the in-memory canvas store
// Each canvas is mutated under its own lock, which reproduces the
// single-threaded mutation model the aggregate assumes
type CanvasRepository struct {
	mu      sync.RWMutex
	records map[aggregates.CanvasID]*canvasRecord
	logger  *zap.Logger
}

// NewCanvasRepository creates a new in-memory canvas repository
func NewCanvasRepository(logger *zap.Logger) *CanvasRepository {
	return &CanvasRepository{
		records: make(map[aggregates.CanvasID]*canvasRecord),
		logger:  logger,
	}
}

// Save registers a new canvas
func (r *CanvasRepository) Save(ctx context.Context, canvas *aggregates.Canvas) error {
	if canvas == nil {
		return pkgerrors.NewValidationError("canvas cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[canvas.ID()]; exists {
		return pkgerrors.NewConflictError("canvas already exists")
	}
	r.records[canvas.ID()] = &canvasRecord{canvas: canvas}
	return nil
}

// GetByID returns the live aggregate without holding its lock
// Callers that may run concurrently with mutations use Read instead
func (r *CanvasRepository) GetByID(ctx context.Context, id aggregates.CanvasID) (*aggregates.Canvas, error) {
	r.mu.RLock()
	record, exists := r.records[id]
	r.mu.RUnlock()

	if !exists {
		return nil, pkgerrors.NewNotFoundError("canvas")
	}
	return record.canvas, nil
}

// Read runs a read against a canvas while holding its lock
func (r *CanvasRepository) Read(ctx context.Context, id aggregates.CanvasID, fn func(*aggregates.Canvas) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	record, exists := r.records[id]
	r.mu.RUnlock()

	if !exists {
		return pkgerrors.NewNotFoundError("canvas")
	}

	record.mu.Lock()
	defer record.mu.Unlock()
	return fn(record.canvas)
}

// ReadByUser runs a read against every canvas owned by a user, newest
// first, holding each canvas's lock in turn
func (r *CanvasRepository) ReadByUser(ctx context.Context, userID string, fn func(*aggregates.Canvas) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	var owned []*canvasRecord
	for _, record := range r.records {
		owned = append(owned, record)
	}
	r.mu.RUnlock()

	var matched []*canvasRecord
	updated := make(map[*canvasRecord]time.Time)
	for _, record := range owned {
		record.mu.Lock()
		if record.canvas.UserID() == userID {
			matched = append(matched, record)
			updated[record] = record.canvas.UpdatedAt()
		}
		record.mu.Unlock()
	}

	sort.Slice(matched, func(i, j int) bool {
		return updated[matched[i]].After(updated[matched[j]])
	})

	for _, record := range matched {
		record.mu.Lock()
		err := fn(record.canvas)
		record.mu.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// Update runs a mutation against a canvas while holding its lock
func (r *CanvasRepository) Update(ctx context.Context, id aggregates.CanvasID, fn func(*aggregates.Canvas) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	record, exists := r.records[id]
	r.mu.RUnlock()

	if !exists {
		return pkgerrors.NewNotFoundError("canvas")
	}

	record.mu.Lock()
	defer record.mu.Unlock()
	return fn(record.canvas)
}

// Delete removes a canvas
func (r *CanvasRepository) Delete(ctx context.Context, id aggregates.CanvasID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return pkgerrors.NewNotFoundError("canvas")
	}
	delete(r.records, id)
	return nil
}

var _ ports.CanvasRepository = (*CanvasRepository)(nil)
