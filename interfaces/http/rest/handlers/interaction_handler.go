package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/commands/bus"
	"naphtalai-backend/application/services"
	"naphtalai-backend/pkg/common"
	pkgerrors "naphtalai-backend/pkg/errors"
	"naphtalai-backend/pkg/utils"
)

// InteractionHandler exposes the interaction surface: modes, pointer
// gestures, keyboard chords and pen strokes
type InteractionHandler struct {
	commandBus  *bus.CommandBus
	interaction *services.InteractionService
	errors      *pkgerrors.ErrorHandler
	logger      *zap.Logger
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(
	commandBus *bus.CommandBus,
	interaction *services.InteractionService,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *InteractionHandler {
	return &InteractionHandler{
		commandBus:  commandBus,
		interaction: interaction,
		errors:      errors,
		logger:      logger,
	}
}

// ModeRequest represents the request body for switching interaction mode
type ModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=select draw erase"`
}

// PointerRequest represents one pointer event in canvas coordinates
type PointerRequest struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Color   string  `json:"color,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// ShortcutRequest represents the request body for a keyboard chord
type ShortcutRequest struct {
	Chord   string `json:"chord" validate:"required"`
	Editing bool   `json:"editing"`
}

// StrokeRequest represents a completed pen stroke
type StrokeRequest struct {
	Points  []commands.StrokePoint `json:"points" validate:"required,min=1"`
	Color   string                 `json:"color,omitempty"`
	Width   float64                `json:"width,omitempty"`
	Opacity float64                `json:"opacity,omitempty"`
}

// EraseRequest represents an erase click
type EraseRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SetMode handles PUT /canvases/{canvasID}/mode
func (h *InteractionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	canvasID := chi.URLParam(r, "canvasID")
	if err := h.interaction.SetMode(canvasID, services.InteractionMode(req.Mode)); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"mode":            req.Mode,
		"draggingEnabled": h.interaction.DraggingEnabled(canvasID),
	})
}

// GetMode handles GET /canvases/{canvasID}/mode
func (h *InteractionHandler) GetMode(w http.ResponseWriter, r *http.Request) {
	canvasID := chi.URLParam(r, "canvasID")
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"mode":            h.interaction.Mode(canvasID),
		"draggingEnabled": h.interaction.DraggingEnabled(canvasID),
	})
}

// PointerDown handles POST /canvases/{canvasID}/pointer/down
func (h *InteractionHandler) PointerDown(w http.ResponseWriter, r *http.Request) {
	var req PointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}

	err := h.interaction.PointerDown(r.Context(), chi.URLParam(r, "canvasID"), req.X, req.Y, req.Color, req.Width, req.Opacity)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PointerMove handles POST /canvases/{canvasID}/pointer/move
func (h *InteractionHandler) PointerMove(w http.ResponseWriter, r *http.Request) {
	var req PointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}

	h.interaction.PointerMove(chi.URLParam(r, "canvasID"), req.X, req.Y)
	w.WriteHeader(http.StatusNoContent)
}

// PointerUp handles POST /canvases/{canvasID}/pointer/up
func (h *InteractionHandler) PointerUp(w http.ResponseWriter, r *http.Request) {
	committed, err := h.interaction.PointerUp(r.Context(), chi.URLParam(r, "canvasID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]bool{"committed": committed})
}

// Shortcut handles POST /canvases/{canvasID}/shortcut
func (h *InteractionHandler) Shortcut(w http.ResponseWriter, r *http.Request) {
	var req ShortcutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	result, err := h.interaction.HandleShortcut(r.Context(), commands.ShortcutCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		Chord:    req.Chord,
		Editing:  req.Editing,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// CommitStroke handles POST /canvases/{canvasID}/strokes
func (h *InteractionHandler) CommitStroke(w http.ResponseWriter, r *http.Request) {
	var req StrokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	cmd := commands.CommitStrokeCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		Points:   req.Points,
		Color:    req.Color,
		Width:    req.Width,
		Opacity:  req.Opacity,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EraseStrokes handles POST /canvases/{canvasID}/strokes/erase
func (h *InteractionHandler) EraseStrokes(w http.ResponseWriter, r *http.Request) {
	var req EraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}

	cmd := commands.EraseStrokesCommand{
		CanvasID: chi.URLParam(r, "canvasID"),
		X:        req.X,
		Y:        req.Y,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
