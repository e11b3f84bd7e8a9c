package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/commands/bus"
	"naphtalai-backend/pkg/auth"
	"naphtalai-backend/pkg/common"
	pkgerrors "naphtalai-backend/pkg/errors"
	"naphtalai-backend/pkg/utils"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	commandBus *bus.CommandBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(commandBus *bus.CommandBus, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{
		commandBus: commandBus,
		errors:     errors,
		logger:     logger,
	}
}

// CreateNodeRequest represents the request body for creating a node
type CreateNodeRequest struct {
	Kind         string   `json:"kind" validate:"required,oneof=file note entity"`
	Label        string   `json:"label" validate:"omitempty,max=200"`
	Content      string   `json:"content,omitempty"`
	EntityType   string   `json:"entityType,omitempty" validate:"omitempty,max=50"`
	Source       string   `json:"source,omitempty"`
	FileRef      string   `json:"fileRef,omitempty"`
	ThumbnailRef string   `json:"thumbnailRef,omitempty"`
	Tags         []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,max=50"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Width        float64  `json:"width,omitempty"`
	Height       float64  `json:"height,omitempty"`
}

// UpdateNodeRequest represents the request body for patching a node
type UpdateNodeRequest struct {
	Label        *string   `json:"label,omitempty" validate:"omitempty,max=200"`
	Content      *string   `json:"content,omitempty"`
	EntityType   *string   `json:"entityType,omitempty" validate:"omitempty,max=50"`
	Tags         *[]string `json:"tags,omitempty" validate:"omitempty,max=10,dive,max=50"`
	Pinned       *bool     `json:"pinned,omitempty"`
	ThumbnailRef *string   `json:"thumbnailRef,omitempty"`
}

// MoveNodeRequest represents the request body for moving a node
type MoveNodeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ResizeNodeRequest represents the request body for resizing a node
type ResizeNodeRequest struct {
	Width  float64 `json:"width" validate:"required,gt=0"`
	Height float64 `json:"height" validate:"required,gt=0"`
}

// DropFileRequest represents the request body for a file drop
type DropFileRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	FileRef string  `json:"fileRef,omitempty"`
	Content string  `json:"content,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// CreateNode handles POST /canvases/{canvasID}/nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req CreateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	nodeID := uuid.New().String()
	cmd := commands.AddNodeCommand{
		CanvasID:     chi.URLParam(r, "canvasID"),
		NodeID:       nodeID,
		UserID:       userCtx.UserID,
		Kind:         req.Kind,
		Label:        req.Label,
		Content:      req.Content,
		EntityType:   req.EntityType,
		Source:       req.Source,
		FileRef:      req.FileRef,
		ThumbnailRef: req.ThumbnailRef,
		Tags:         req.Tags,
		X:            req.X,
		Y:            req.Y,
		Width:        req.Width,
		Height:       req.Height,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": nodeID})
}

// UpdateNode handles PATCH /canvases/{canvasID}/nodes/{nodeID}
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var req UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	cmd := commands.UpdateNodeCommand{
		CanvasID:     chi.URLParam(r, "canvasID"),
		NodeID:       chi.URLParam(r, "nodeID"),
		Label:        req.Label,
		Content:      req.Content,
		EntityType:   req.EntityType,
		Tags:         req.Tags,
		Pinned:       req.Pinned,
		ThumbnailRef: req.ThumbnailRef,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MoveNode handles POST /canvases/{canvasID}/nodes/{nodeID}/move
func (h *NodeHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	var req MoveNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}

	cmd := commands.MoveNodeCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		NodeID:   chi.URLParam(r, "nodeID"),
		X:        req.X,
		Y:        req.Y,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResizeNode handles POST /canvases/{canvasID}/nodes/{nodeID}/resize
func (h *NodeHandler) ResizeNode(w http.ResponseWriter, r *http.Request) {
	var req ResizeNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	cmd := commands.ResizeNodeCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		NodeID:   chi.URLParam(r, "nodeID"),
		Width:    req.Width,
		Height:   req.Height,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteNode handles DELETE /canvases/{canvasID}/nodes/{nodeID}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteNodeCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		NodeID:   chi.URLParam(r, "nodeID"),
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DropFile handles POST /canvases/{canvasID}/drop
func (h *NodeHandler) DropFile(w http.ResponseWriter, r *http.Request) {
	var req DropFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	nodeID := uuid.New().String()
	cmd := commands.DropFileCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		NodeID:   nodeID,
		Name:     req.Name,
		FileRef:  req.FileRef,
		Content:  req.Content,
		X:        req.X,
		Y:        req.Y,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": nodeID})
}
