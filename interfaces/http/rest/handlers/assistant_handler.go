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

// AssistantHandler exposes the AI assistant over REST
type AssistantHandler struct {
	assistant *services.AssistantService
	errors    *pkgerrors.ErrorHandler
	logger    *zap.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(
	assistant *services.AssistantService,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		errors:    errors,
		logger:    logger,
	}
}

// ChatRequest represents the request body for a chat completion
type ChatRequest struct {
	Query     string   `json:"query" validate:"required"`
	Documents []string `json:"documents,omitempty"`
}

// ConnectSuggestionRequest represents the request body for connection suggestions
type ConnectSuggestionRequest struct {
	Query string `json:"query,omitempty"`
}

// AnalyzeRequest represents the request body for symbol analysis
type AnalyzeRequest struct {
	Symbol    string   `json:"symbol" validate:"required"`
	Documents []string `json:"documents,omitempty"`
}

// ExtractRequest represents the request body for entity extraction
type ExtractRequest struct {
	SourceDoc string `json:"sourceDoc,omitempty"`
	Content   string `json:"content" validate:"required"`
}

// Chat handles POST /canvases/{canvasID}/assistant/chat
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	result := h.assistant.Chat(r.Context(), chi.URLParam(r, "canvasID"), req.Query, req.Documents)
	common.RespondJSON(w, http.StatusOK, result)
}

// SuggestConnections handles POST /canvases/{canvasID}/assistant/connect
func (h *AssistantHandler) SuggestConnections(w http.ResponseWriter, r *http.Request) {
	var req ConnectSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}

	result := h.assistant.SuggestConnections(r.Context(), chi.URLParam(r, "canvasID"), req.Query)
	common.RespondJSON(w, http.StatusOK, result)
}

// AnalyzeSymbol handles POST /canvases/{canvasID}/assistant/analyze
func (h *AssistantHandler) AnalyzeSymbol(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	result := h.assistant.AnalyzeSymbol(r.Context(), chi.URLParam(r, "canvasID"), req.Symbol, req.Documents)
	common.RespondJSON(w, http.StatusOK, result)
}

// ExtractEntities handles POST /canvases/{canvasID}/assistant/extract
func (h *AssistantHandler) ExtractEntities(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
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

	result, registered := h.assistant.ExtractEntities(r.Context(), user.UserID, chi.URLParam(r, "canvasID"), req.SourceDoc, req.Content)
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"result":     result,
		"registered": len(registered),
	})
}
