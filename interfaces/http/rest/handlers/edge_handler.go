package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/commands/bus"
	"naphtalai-backend/application/services"
	"naphtalai-backend/pkg/common"
	pkgerrors "naphtalai-backend/pkg/errors"
	"naphtalai-backend/pkg/utils"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	commandBus  *bus.CommandBus
	connections *services.ConnectionService
	errors      *pkgerrors.ErrorHandler
	logger      *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(
	commandBus *bus.CommandBus,
	connections *services.ConnectionService,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *EdgeHandler {
	return &EdgeHandler{
		commandBus:  commandBus,
		connections: connections,
		errors:      errors,
		logger:      logger,
	}
}

// ConnectRequest represents the request body for connecting two nodes
type ConnectRequest struct {
	SourceID     string `json:"sourceId" validate:"required"`
	TargetID     string `json:"targetId" validate:"required"`
	Style        string `json:"style,omitempty" validate:"omitempty,oneof=red-string golden-thread"`
	SourceHandle string `json:"sourceHandle,omitempty" validate:"omitempty,oneof=left right top bottom"`
	TargetHandle string `json:"targetHandle,omitempty" validate:"omitempty,oneof=left right top bottom"`
}

// UpdateEdgeRequest represents the request body for patching an edge
type UpdateEdgeRequest struct {
	Label      *string  `json:"label,omitempty" validate:"omitempty,max=200"`
	Style      *string  `json:"style,omitempty" validate:"omitempty,oneof=red-string golden-thread"`
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Connect handles POST /canvases/{canvasID}/edges
// A connection the rule engine rejects is a 200 with created false and
// an advisory notice, not an error status
func (h *EdgeHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	result, err := h.connections.Connect(r.Context(), commands.ConnectNodesCommand{
		CanvasID:     chi.URLParam(r, "canvasID"),
		EdgeID:       uuid.New().String(),
		SourceID:     req.SourceID,
		TargetID:     req.TargetID,
		Style:        req.Style,
		SourceHandle: req.SourceHandle,
		TargetHandle: req.TargetHandle,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	common.RespondJSON(w, status, result)
}

// UpdateEdge handles PATCH /canvases/{canvasID}/edges/{edgeID}
func (h *EdgeHandler) UpdateEdge(w http.ResponseWriter, r *http.Request) {
	var req UpdateEdgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	cmd := commands.UpdateEdgeCommand{
		CanvasID:   chi.URLParam(r, "canvasID"),
		EdgeID:     chi.URLParam(r, "edgeID"),
		Label:      req.Label,
		Style:      req.Style,
		Confidence: req.Confidence,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteEdge handles DELETE /canvases/{canvasID}/edges/{edgeID}
func (h *EdgeHandler) DeleteEdge(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteEdgeCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		EdgeID:   chi.URLParam(r, "edgeID"),
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
