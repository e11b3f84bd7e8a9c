package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	pkgerrors "naphtalai-backend/pkg/errors"
)

// Query is a marker interface for all queries
type Query interface {
	Validate() error
}

// QueryHandler processes a specific query type and returns a result
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}

// QueryHandlerFunc adapts a function to the QueryHandler interface
type QueryHandlerFunc func(ctx context.Context, query Query) (interface{}, error)

func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (interface{}, error) {
	return f(ctx, query)
}

// QueryBus routes queries to their registered handlers
type QueryBus struct {
	handlers map[reflect.Type]QueryHandler
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewQueryBus creates a new query bus
func NewQueryBus(logger *zap.Logger) *QueryBus {
	return &QueryBus{
		handlers: make(map[reflect.Type]QueryHandler),
		logger:   logger,
	}
}

// Register binds a handler to a query type
func (b *QueryBus) Register(query Query, handler QueryHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	queryType := reflect.TypeOf(query)
	if _, exists := b.handlers[queryType]; exists {
		panic(fmt.Sprintf("handler already registered for query type %v", queryType))
	}

	b.handlers[queryType] = handler
	b.logger.Debug("Query handler registered", zap.String("query_type", queryType.String()))
}

// Ask validates the query and dispatches it to its handler
func (b *QueryBus) Ask(ctx context.Context, query Query) (interface{}, error) {
	if query == nil {
		return nil, pkgerrors.NewValidationError("query cannot be nil")
	}

	if err := query.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("invalid query: %v", err))
	}

	queryType := reflect.TypeOf(query)

	b.mu.RLock()
	handler, exists := b.handlers[queryType]
	b.mu.RUnlock()

	if !exists {
		return nil, pkgerrors.NewInternalError(
			fmt.Sprintf("no handler registered for query type %v", queryType))
	}

	result, err := handler.Handle(ctx, query)
	if err != nil {
		b.logger.Error("Query handler failed",
			zap.String("query_type", queryType.String()),
			zap.Error(err))
		return nil, err
	}

	return result, nil
}
