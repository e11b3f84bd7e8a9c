//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"naphtalai-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideCanvasRepository,
	ProvideEntityRegistryRepository,
	ProvideHub,
	ProvideEventBus,
	ProvideJWTValidator,
	ProvideAssistant,
	ProvideConnectionPolicy,
	ProvideErrorHandler,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideCanvasService,
	ProvideConnectionService,
	ProvideInteractionService,
	ProvideEntityRegistryService,
	ProvideAssistantService,
	ProvideWebSocketServer,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
