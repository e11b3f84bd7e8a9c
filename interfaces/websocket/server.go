package websocket

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"naphtalai-backend/pkg/auth"
)

// maxWatchersPerCanvas caps how many live subscriptions one canvas
// accepts before new upgrades are refused
const maxWatchersPerCanvas = 64

// Server upgrades HTTP requests into canvas event subscriptions
type Server struct {
	hub       *Hub
	upgrader  websocket.Upgrader
	validator *auth.JWTValidator
	logger    *zap.Logger
}

// ServerConfig holds WebSocket server configuration
type ServerConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultServerConfig returns default WebSocket server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Origin checking is deferred to the reverse proxy
			return true
		},
	}
}

// NewServer creates a new WebSocket server
func NewServer(hub *Hub, validator *auth.JWTValidator, config *ServerConfig, logger *zap.Logger) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}

	return &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		validator: validator,
		logger:    logger,
	}
}

// HandleWebSocket handles WebSocket upgrade requests for one canvas
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	canvasID := chi.URLParam(r, "canvasID")
	if canvasID == "" {
		http.Error(w, "canvas ID required", http.StatusBadRequest)
		return
	}

	userID, err := s.authenticateRequest(r)
	if err != nil {
		s.logger.Warn("WebSocket authentication failed",
			zap.Error(err),
			zap.String("remoteAddr", r.RemoteAddr),
		)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if s.hub.WatcherCount(canvasID) >= maxWatchersPerCanvas {
		s.logger.Warn("Watcher limit exceeded for canvas",
			zap.String("canvasID", canvasID))
		http.Error(w, "Too many watchers", http.StatusTooManyRequests)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection",
			zap.Error(err),
			zap.String("remoteAddr", r.RemoteAddr),
		)
		return
	}

	client := NewClient(userID, canvasID, s.hub, conn, s.logger)
	client.Start()

	s.logger.Info("Canvas subscription established",
		zap.String("canvasID", canvasID),
		zap.String("userID", userID),
		zap.String("connectionID", client.GetID()),
	)
}

// authenticateRequest validates the JWT token from the request
// Browsers cannot set headers on WebSocket upgrades, so the token is
// accepted from the query string as well
func (s *Server) authenticateRequest(r *http.Request) (string, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}

	claims, err := s.validator.ValidateToken(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
