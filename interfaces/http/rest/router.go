package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"naphtalai-backend/infrastructure/config"
	"naphtalai-backend/interfaces/http/rest/handlers"
	"naphtalai-backend/interfaces/http/rest/middleware"
	"naphtalai-backend/interfaces/websocket"
	"naphtalai-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg         *config.Config
	validator   *auth.JWTValidator
	canvases    *handlers.CanvasHandler
	nodes       *handlers.NodeHandler
	edges       *handlers.EdgeHandler
	interaction *handlers.InteractionHandler
	assistant   *handlers.AssistantHandler
	registry    *handlers.RegistryHandler
	wsServer    *websocket.Server
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	validator *auth.JWTValidator,
	canvases *handlers.CanvasHandler,
	nodes *handlers.NodeHandler,
	edges *handlers.EdgeHandler,
	interaction *handlers.InteractionHandler,
	assistant *handlers.AssistantHandler,
	registry *handlers.RegistryHandler,
	wsServer *websocket.Server,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:         cfg,
		validator:   validator,
		canvases:    canvases,
		nodes:       nodes,
		edges:       edges,
		interaction: interaction,
		assistant:   assistant,
		registry:    registry,
		wsServer:    wsServer,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// WebSocket endpoint authenticates inside the upgrade handshake
	router.Get("/ws/canvases/{canvasID}", rt.wsServer.HandleWebSocket)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		r.Route("/canvases", func(r chi.Router) {
			r.Post("/", rt.canvases.CreateCanvas)
			r.Get("/", rt.canvases.ListCanvases)

			r.Route("/{canvasID}", func(r chi.Router) {
				r.Get("/", rt.canvases.GetCanvas)
				r.Delete("/", rt.canvases.DeleteCanvas)
				r.Get("/export", rt.canvases.ExportCanvas)
				r.Post("/import", rt.canvases.ImportCanvas)
				r.Get("/history", rt.canvases.GetHistory)
				r.Post("/history/mark", rt.canvases.MarkHistory)
				r.Post("/undo", rt.canvases.Undo)
				r.Post("/redo", rt.canvases.Redo)
				r.Patch("/settings", rt.canvases.UpdateSettings)

				// Selection
				r.Put("/selection", rt.canvases.UpdateSelection)
				r.Post("/selection/duplicate", rt.canvases.DuplicateSelected)
				r.Post("/selection/delete", rt.canvases.DeleteSelected)
				r.Post("/selection/align", rt.canvases.AlignSelected)
				r.Post("/selection/distribute", rt.canvases.DistributeSelected)

				// Nodes
				r.Route("/nodes", func(r chi.Router) {
					r.Post("/", rt.nodes.CreateNode)
					r.Post("/drop", rt.nodes.DropFile)
					r.Put("/{nodeID}", rt.nodes.UpdateNode)
					r.Put("/{nodeID}/position", rt.nodes.MoveNode)
					r.Put("/{nodeID}/size", rt.nodes.ResizeNode)
					r.Delete("/{nodeID}", rt.nodes.DeleteNode)
				})

				// Edges
				r.Route("/edges", func(r chi.Router) {
					r.Post("/", rt.edges.Connect)
					r.Put("/{edgeID}", rt.edges.UpdateEdge)
					r.Delete("/{edgeID}", rt.edges.DeleteEdge)
				})

				// Interaction modes, pointer gestures and shortcuts
				r.Put("/mode", rt.interaction.SetMode)
				r.Get("/mode", rt.interaction.GetMode)
				r.Post("/pointer/down", rt.interaction.PointerDown)
				r.Post("/pointer/move", rt.interaction.PointerMove)
				r.Post("/pointer/up", rt.interaction.PointerUp)
				r.Post("/shortcut", rt.interaction.Shortcut)
				r.Post("/strokes", rt.interaction.CommitStroke)
				r.Post("/strokes/erase", rt.interaction.EraseStrokes)

				// Assistant
				r.Route("/assistant", func(r chi.Router) {
					r.Post("/chat", rt.assistant.Chat)
					r.Post("/connect", rt.assistant.SuggestConnections)
					r.Post("/analyze", rt.assistant.AnalyzeSymbol)
					r.Post("/extract", rt.assistant.ExtractEntities)
				})
			})
		})

		// Extracted-entity registry
		r.Route("/registry", func(r chi.Router) {
			r.Get("/entities", rt.registry.ListEntities)
			r.Get("/links", rt.registry.ListLinks)
			r.Delete("/entities/{entityID}", rt.registry.DeleteEntity)
			r.Post("/entities/{entityID}/materialize", rt.registry.Materialize)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
