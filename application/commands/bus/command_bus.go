package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	pkgerrors "naphtalai-backend/pkg/errors"
)

// Command is a marker interface for all commands
type Command interface {
	// Validate performs basic validation on the command
	Validate() error
}

// CommandHandler processes a specific command type
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) error
}

// CommandHandlerFunc adapts a function to the CommandHandler interface
type CommandHandlerFunc func(ctx context.Context, cmd Command) error

func (f CommandHandlerFunc) Handle(ctx context.Context, cmd Command) error {
	return f(ctx, cmd)
}

// CommandBus routes commands to their registered handlers
type CommandBus struct {
	handlers map[reflect.Type]CommandHandler
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewCommandBus creates a new command bus
func NewCommandBus(logger *zap.Logger) *CommandBus {
	return &CommandBus{
		handlers: make(map[reflect.Type]CommandHandler),
		logger:   logger,
	}
}

// Register binds a handler to a command type
// Panics if a handler is already registered for the type, since that is
// a wiring mistake caught at startup
func (b *CommandBus) Register(cmd Command, handler CommandHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cmdType := reflect.TypeOf(cmd)
	if _, exists := b.handlers[cmdType]; exists {
		panic(fmt.Sprintf("handler already registered for command type %v", cmdType))
	}

	b.handlers[cmdType] = handler
	b.logger.Debug("Command handler registered", zap.String("command_type", cmdType.String()))
}

// Send validates the command and dispatches it to its handler
func (b *CommandBus) Send(ctx context.Context, cmd Command) error {
	if cmd == nil {
		return pkgerrors.NewValidationError("command cannot be nil")
	}

	if err := cmd.Validate(); err != nil {
		return pkgerrors.NewValidationError(fmt.Sprintf("invalid command: %v", err))
	}

	cmdType := reflect.TypeOf(cmd)

	b.mu.RLock()
	handler, exists := b.handlers[cmdType]
	b.mu.RUnlock()

	if !exists {
		return pkgerrors.NewInternalError(
			fmt.Sprintf("no handler registered for command type %v", cmdType))
	}

	b.logger.Debug("Dispatching command", zap.String("command_type", cmdType.String()))

	if err := handler.Handle(ctx, cmd); err != nil {
		b.logger.Error("Command handler failed",
			zap.String("command_type", cmdType.String()),
			zap.Error(err))
		return err
	}

	return nil
}
