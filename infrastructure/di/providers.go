package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/commands/bus"
	commandhandlers "naphtalai-backend/application/commands/handlers"
	"naphtalai-backend/application/ports"
	"naphtalai-backend/application/queries"
	querybus "naphtalai-backend/application/queries/bus"
	queryhandlers "naphtalai-backend/application/queries/handlers"
	"naphtalai-backend/application/services"
	domainconfig "naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/validators"
	"naphtalai-backend/infrastructure/ai"
	"naphtalai-backend/infrastructure/config"
	"naphtalai-backend/infrastructure/persistence/memory"
	"naphtalai-backend/interfaces/http/rest"
	"naphtalai-backend/interfaces/http/rest/handlers"
	"naphtalai-backend/interfaces/websocket"
	"naphtalai-backend/pkg/auth"
	pkgerrors "naphtalai-backend/pkg/errors"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideDomainConfig creates the canvas behavior configuration
func ProvideDomainConfig() *domainconfig.DomainConfig {
	return domainconfig.DefaultDomainConfig()
}

// ProvideCanvasRepository creates an in-memory canvas repository
func ProvideCanvasRepository(logger *zap.Logger) ports.CanvasRepository {
	return memory.NewCanvasRepository(logger)
}

// ProvideEntityRegistryRepository creates an in-memory registry repository
func ProvideEntityRegistryRepository() ports.EntityRegistryRepository {
	return memory.NewEntityRegistryRepository()
}

// ProvideHub creates the websocket hub
func ProvideHub(logger *zap.Logger) *websocket.Hub {
	return websocket.NewHub(logger)
}

// ProvideEventBus creates the event bus backed by the websocket hub
func ProvideEventBus(hub *websocket.Hub, logger *zap.Logger) ports.EventBus {
	return websocket.NewEventBus(hub, logger)
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideAssistant creates the AI completion backend. Without an API
// key the assistant degrades to a stub that reports itself unavailable
func ProvideAssistant(cfg *config.Config, logger *zap.Logger) ports.Assistant {
	if !cfg.EnableAI || cfg.OpenAIAPIKey == "" {
		return ai.NewNoopAssistant()
	}
	return ai.NewOpenAIAssistant(&ai.Config{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	}, logger)
}

// ProvideConnectionPolicy creates the connection validation policy
func ProvideConnectionPolicy(domainCfg *domainconfig.DomainConfig) *validators.ConnectionPolicy {
	return validators.NewConnectionPolicy(domainCfg)
}

// ProvideErrorHandler creates the HTTP error translator
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideCommandBus creates a command bus with all handlers registered
func ProvideCommandBus(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus(logger)

	addNode := commandhandlers.NewAddNodeHandler(canvasRepo, eventBus, domainCfg, logger)
	commandBus.Register(commands.AddNodeCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.AddNodeCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return addNode.Handle(ctx, c)
	}))

	dropFile := commandhandlers.NewDropFileHandler(canvasRepo, eventBus, domainCfg, logger)
	commandBus.Register(commands.DropFileCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.DropFileCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return dropFile.Handle(ctx, c)
	}))

	updateNode := commandhandlers.NewUpdateNodeHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.UpdateNodeCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.UpdateNodeCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return updateNode.Handle(ctx, c)
	}))

	moveNode := commandhandlers.NewMoveNodeHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.MoveNodeCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.MoveNodeCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return moveNode.Handle(ctx, c)
	}))

	resizeNode := commandhandlers.NewResizeNodeHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.ResizeNodeCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.ResizeNodeCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return resizeNode.Handle(ctx, c)
	}))

	deleteNode := commandhandlers.NewDeleteNodeHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.DeleteNodeCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.DeleteNodeCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return deleteNode.Handle(ctx, c)
	}))

	updateEdge := commandhandlers.NewUpdateEdgeHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.UpdateEdgeCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.UpdateEdgeCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return updateEdge.Handle(ctx, c)
	}))

	deleteEdge := commandhandlers.NewDeleteEdgeHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.DeleteEdgeCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.DeleteEdgeCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return deleteEdge.Handle(ctx, c)
	}))

	selection := commandhandlers.NewSelectionHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.SelectCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.SelectCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return selection.Handle(ctx, c)
	}))

	undo := commandhandlers.NewUndoHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.UndoCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.UndoCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return undo.Handle(ctx, c)
	}))

	redo := commandhandlers.NewRedoHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.RedoCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.RedoCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return redo.Handle(ctx, c)
	}))

	historyMark := commandhandlers.NewHistoryMarkHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.MarkHistoryCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.MarkHistoryCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return historyMark.Handle(ctx, c)
	}))

	bulk := commandhandlers.NewBulkOperationHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.DuplicateSelectedCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.DuplicateSelectedCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return bulk.HandleDuplicate(ctx, c)
	}))
	commandBus.Register(commands.DeleteSelectedCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.DeleteSelectedCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return bulk.HandleDeleteSelected(ctx, c)
	}))
	commandBus.Register(commands.AlignSelectedCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.AlignSelectedCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return bulk.HandleAlign(ctx, c)
	}))
	commandBus.Register(commands.DistributeSelectedCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.DistributeSelectedCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return bulk.HandleDistribute(ctx, c)
	}))

	settings := commandhandlers.NewSettingsHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.UpdateSettingsCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.UpdateSettingsCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return settings.Handle(ctx, c)
	}))

	strokes := commandhandlers.NewStrokeHandler(canvasRepo, eventBus, logger)
	commandBus.Register(commands.CommitStrokeCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.CommitStrokeCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return strokes.HandleCommit(ctx, c)
	}))
	commandBus.Register(commands.EraseStrokesCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		c, ok := cmd.(commands.EraseStrokesCommand)
		if !ok {
			return fmt.Errorf("invalid command type")
		}
		return strokes.HandleErase(ctx, c)
	}))

	return commandBus
}

// ProvideQueryBus creates a query bus with all handlers registered
func ProvideQueryBus(canvasRepo ports.CanvasRepository, logger *zap.Logger) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus(logger)
	canvasQ := queryhandlers.NewCanvasQueryHandler(canvasRepo, logger)

	queryBus.Register(queries.GetCanvasQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		q, ok := query.(queries.GetCanvasQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return canvasQ.HandleGetCanvas(ctx, q)
	}))
	queryBus.Register(queries.ListCanvasesQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		q, ok := query.(queries.ListCanvasesQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return canvasQ.HandleListCanvases(ctx, q)
	}))
	queryBus.Register(queries.ExportCanvasQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		q, ok := query.(queries.ExportCanvasQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return canvasQ.HandleExportCanvas(ctx, q)
	}))
	queryBus.Register(queries.GetHistoryQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		q, ok := query.(queries.GetHistoryQuery)
		if !ok {
			return nil, fmt.Errorf("invalid query type")
		}
		return canvasQ.HandleGetHistory(ctx, q)
	}))

	return queryBus
}

// ProvideCanvasService creates the canvas lifecycle service
func ProvideCanvasService(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.CanvasService {
	return services.NewCanvasService(canvasRepo, eventBus, domainCfg, logger)
}

// ProvideConnectionService creates the connection service
func ProvideConnectionService(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	policy *validators.ConnectionPolicy,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.ConnectionService {
	return services.NewConnectionService(canvasRepo, eventBus, policy, domainCfg, logger)
}

// ProvideInteractionService creates the interaction service
func ProvideInteractionService(
	canvasRepo ports.CanvasRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *services.InteractionService {
	return services.NewInteractionService(
		commandhandlers.NewUndoHandler(canvasRepo, eventBus, logger),
		commandhandlers.NewRedoHandler(canvasRepo, eventBus, logger),
		commandhandlers.NewSelectionHandler(canvasRepo, eventBus, logger),
		commandhandlers.NewBulkOperationHandler(canvasRepo, eventBus, logger),
		commandhandlers.NewSettingsHandler(canvasRepo, eventBus, logger),
		commandhandlers.NewStrokeHandler(canvasRepo, eventBus, logger),
		canvasRepo,
		logger,
	)
}

// ProvideEntityRegistryService creates the registry service
func ProvideEntityRegistryService(
	registryRepo ports.EntityRegistryRepository,
	canvasRepo ports.CanvasRepository,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.EntityRegistryService {
	return services.NewEntityRegistryService(registryRepo, canvasRepo, domainCfg, logger)
}

// ProvideAssistantService creates the assistant service
func ProvideAssistantService(
	assistant ports.Assistant,
	canvasRepo ports.CanvasRepository,
	registry *services.EntityRegistryService,
	logger *zap.Logger,
) *services.AssistantService {
	return services.NewAssistantService(assistant, canvasRepo, registry, logger)
}

// ProvideWebSocketServer creates the websocket upgrade server
func ProvideWebSocketServer(hub *websocket.Hub, validator *auth.JWTValidator, logger *zap.Logger) *websocket.Server {
	return websocket.NewServer(hub, validator, websocket.DefaultServerConfig(), logger)
}

// ProvideRouter assembles the HTTP router with all REST handlers
func ProvideRouter(
	cfg *config.Config,
	validator *auth.JWTValidator,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	canvases *services.CanvasService,
	connections *services.ConnectionService,
	interaction *services.InteractionService,
	registry *services.EntityRegistryService,
	assistant *services.AssistantService,
	wsServer *websocket.Server,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(
		cfg,
		validator,
		handlers.NewCanvasHandler(commandBus, queryBus, canvases, errorHandler, logger),
		handlers.NewNodeHandler(commandBus, errorHandler, logger),
		handlers.NewEdgeHandler(commandBus, connections, errorHandler, logger),
		handlers.NewInteractionHandler(commandBus, interaction, errorHandler, logger),
		handlers.NewAssistantHandler(assistant, errorHandler, logger),
		handlers.NewRegistryHandler(registry, errorHandler, logger),
		wsServer,
		logger,
	)
}
