package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/commands/bus"
	"naphtalai-backend/application/queries"
	querybus "naphtalai-backend/application/queries/bus"
	"naphtalai-backend/application/services"
	"naphtalai-backend/pkg/auth"
	"naphtalai-backend/pkg/common"
	pkgerrors "naphtalai-backend/pkg/errors"
	"naphtalai-backend/pkg/utils"
)

// CanvasHandler handles canvas lifecycle and canvas-wide HTTP requests
type CanvasHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	canvases   *services.CanvasService
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewCanvasHandler creates a new canvas handler
func NewCanvasHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	canvases *services.CanvasService,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *CanvasHandler {
	return &CanvasHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		canvases:   canvases,
		errors:     errors,
		logger:     logger,
	}
}

// CreateCanvasRequest represents the request body for creating a canvas
type CreateCanvasRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// SelectionRequest represents the request body for a selection change
type SelectionRequest struct {
	Mode    string   `json:"mode" validate:"required,oneof=replace clear all"`
	NodeIDs []string `json:"nodeIds,omitempty"`
	EdgeIDs []string `json:"edgeIds,omitempty"`
}

// AlignRequest represents the request body for aligning the selection
type AlignRequest struct {
	Direction string `json:"direction" validate:"required,oneof=left center right top middle bottom"`
}

// DistributeRequest represents the request body for distributing the selection
type DistributeRequest struct {
	Orientation string `json:"orientation" validate:"required,oneof=horizontal vertical"`
}

// SettingsRequest represents the request body for changing grid settings
type SettingsRequest struct {
	SnapToGrid  *bool    `json:"snapToGrid,omitempty"`
	GridVisible *bool    `json:"gridVisible,omitempty"`
	GridSize    *float64 `json:"gridSize,omitempty" validate:"omitempty,gt=0"`
}

// MarkHistoryRequest represents the optional body for a history checkpoint
type MarkHistoryRequest struct {
	Tag string `json:"tag,omitempty" validate:"omitempty,max=50"`
}

// CreateCanvas handles POST /canvases
func (h *CanvasHandler) CreateCanvas(w http.ResponseWriter, r *http.Request) {
	var req CreateCanvasRequest
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

	canvas, err := h.canvases.CreateCanvas(r.Context(), userCtx.UserID, req.Name)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, queries.NewCanvasView(canvas))
}

// ListCanvases handles GET /canvases
func (h *CanvasHandler) ListCanvases(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListCanvasesQuery{UserID: userCtx.UserID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetCanvas handles GET /canvases/{canvasID}
func (h *CanvasHandler) GetCanvas(w http.ResponseWriter, r *http.Request) {
	view, err := h.queryBus.Ask(r.Context(), queries.GetCanvasQuery{CanvasID: chi.URLParam(r, "canvasID")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, view)
}

// DeleteCanvas handles DELETE /canvases/{canvasID}
func (h *CanvasHandler) DeleteCanvas(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	if err := h.canvases.DeleteCanvas(r.Context(), userCtx.UserID, chi.URLParam(r, "canvasID")); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportCanvas handles GET /canvases/{canvasID}/export
func (h *CanvasHandler) ExportCanvas(w http.ResponseWriter, r *http.Request) {
	doc, err := h.queryBus.Ask(r.Context(), queries.ExportCanvasQuery{CanvasID: chi.URLParam(r, "canvasID")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="canvas-export.json"`)
	common.RespondJSON(w, http.StatusOK, doc)
}

// ImportCanvas handles POST /canvases/{canvasID}/import
func (h *CanvasHandler) ImportCanvas(w http.ResponseWriter, r *http.Request) {
	var doc queries.CanvasExport
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid export document: "+err.Error())
		return
	}

	if err := h.canvases.ImportCanvas(r.Context(), chi.URLParam(r, "canvasID"), doc); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetHistory handles GET /canvases/{canvasID}/history
func (h *CanvasHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	view, err := h.queryBus.Ask(r.Context(), queries.GetHistoryQuery{CanvasID: chi.URLParam(r, "canvasID")})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, view)
}

// Undo handles POST /canvases/{canvasID}/undo
func (h *CanvasHandler) Undo(w http.ResponseWriter, r *http.Request) {
	if err := h.commandBus.Send(r.Context(), commands.UndoCommand{CanvasID: chi.URLParam(r, "canvasID")}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Redo handles POST /canvases/{canvasID}/redo
func (h *CanvasHandler) Redo(w http.ResponseWriter, r *http.Request) {
	if err := h.commandBus.Send(r.Context(), commands.RedoCommand{CanvasID: chi.URLParam(r, "canvasID")}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkHistory handles POST /canvases/{canvasID}/history/mark
// Clients use it to checkpoint after a drag or resize gesture settles
func (h *CanvasHandler) MarkHistory(w http.ResponseWriter, r *http.Request) {
	var req MarkHistoryRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	cmd := commands.MarkHistoryCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		Tag:      req.Tag,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSelection handles PUT /canvases/{canvasID}/selection
func (h *CanvasHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	cmd := commands.SelectCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		Mode:     commands.SelectionMode(req.Mode),
		NodeIDs:  req.NodeIDs,
		EdgeIDs:  req.EdgeIDs,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DuplicateSelected handles POST /canvases/{canvasID}/selection/duplicate
func (h *CanvasHandler) DuplicateSelected(w http.ResponseWriter, r *http.Request) {
	if err := h.commandBus.Send(r.Context(), commands.DuplicateSelectedCommand{CanvasID: chi.URLParam(r, "canvasID")}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSelected handles POST /canvases/{canvasID}/selection/delete
func (h *CanvasHandler) DeleteSelected(w http.ResponseWriter, r *http.Request) {
	if err := h.commandBus.Send(r.Context(), commands.DeleteSelectedCommand{CanvasID: chi.URLParam(r, "canvasID")}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AlignSelected handles POST /canvases/{canvasID}/selection/align
func (h *CanvasHandler) AlignSelected(w http.ResponseWriter, r *http.Request) {
	var req AlignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	cmd := commands.AlignSelectedCommand{
		CanvasID:  chi.URLParam(r, "canvasID"),
		Direction: req.Direction,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DistributeSelected handles POST /canvases/{canvasID}/selection/distribute
func (h *CanvasHandler) DistributeSelected(w http.ResponseWriter, r *http.Request) {
	var req DistributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	cmd := commands.DistributeSelectedCommand{
		CanvasID:    chi.URLParam(r, "canvasID"),
		Orientation: req.Orientation,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateSettings handles PATCH /canvases/{canvasID}/settings
func (h *CanvasHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	cmd := commands.UpdateSettingsCommand{
		CanvasID:    chi.URLParam(r, "canvasID"),
		SnapToGrid:  req.SnapToGrid,
		GridVisible: req.GridVisible,
		GridSize:    req.GridSize,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
