package di

import (
	"go.uber.org/zap"

	"naphtalai-backend/application/commands/bus"
	"naphtalai-backend/application/ports"
	querybus "naphtalai-backend/application/queries/bus"
	"naphtalai-backend/infrastructure/config"
	"naphtalai-backend/interfaces/http/rest"
	"naphtalai-backend/interfaces/websocket"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	CanvasRepo   ports.CanvasRepository
	RegistryRepo ports.EntityRegistryRepository
	EventBus     ports.EventBus
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Hub          *websocket.Hub
	Router       *rest.Router
}
