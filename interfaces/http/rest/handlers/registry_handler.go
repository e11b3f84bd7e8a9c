package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"naphtalai-backend/application/services"
	"naphtalai-backend/pkg/auth"
	"naphtalai-backend/pkg/common"
	pkgerrors "naphtalai-backend/pkg/errors"
	"naphtalai-backend/pkg/utils"
)

// RegistryHandler exposes the extracted-entity registry over REST
type RegistryHandler struct {
	registry *services.EntityRegistryService
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewRegistryHandler creates a new registry handler
func NewRegistryHandler(
	registry *services.EntityRegistryService,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *RegistryHandler {
	return &RegistryHandler{
		registry: registry,
		errors:   errors,
		logger:   logger,
	}
}

// MaterializeRequest represents the request body for placing a registry
// entity onto a canvas
type MaterializeRequest struct {
	CanvasID string  `json:"canvasId" validate:"required,uuid"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// ListEntities handles GET /registry/entities
func (h *RegistryHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	list, err := h.registry.ListEntities(r.Context(), user.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"entities": list})
}

// ListLinks handles GET /registry/links
func (h *RegistryHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	links, err := h.registry.ListLinks(r.Context(), user.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"links": links})
}

// DeleteEntity handles DELETE /registry/entities/{entityID}
func (h *RegistryHandler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	if err := h.registry.DeleteEntity(r.Context(), user.UserID, chi.URLParam(r, "entityID")); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Materialize handles POST /registry/entities/{entityID}/materialize
func (h *RegistryHandler) Materialize(w http.ResponseWriter, r *http.Request) {
	var req MaterializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Authentication required")
		return
	}

	node, err := h.registry.Materialize(r.Context(), user.UserID, req.CanvasID, chi.URLParam(r, "entityID"), req.X, req.Y)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, node)
}
