package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"naphtalai-backend/application/ports"
	"naphtalai-backend/application/queries"
	"naphtalai-backend/domain/core/aggregates"
)

// CanvasQueryHandler serves the canvas read models
// All views are built inside the repository's Read callback so a
// concurrent mutation can never be observed mid-flight
type CanvasQueryHandler struct {
	canvasRepo ports.CanvasRepository
	logger     *zap.Logger
}

// NewCanvasQueryHandler creates a new canvas query handler
func NewCanvasQueryHandler(canvasRepo ports.CanvasRepository, logger *zap.Logger) *CanvasQueryHandler {
	return &CanvasQueryHandler{
		canvasRepo: canvasRepo,
		logger:     logger,
	}
}

// HandleGetCanvas returns the full read model of one canvas
func (h *CanvasQueryHandler) HandleGetCanvas(ctx context.Context, query queries.GetCanvasQuery) (queries.CanvasView, error) {
	var view queries.CanvasView
	err := h.canvasRepo.Read(ctx, aggregates.CanvasID(query.CanvasID), func(canvas *aggregates.Canvas) error {
		view = queries.NewCanvasView(canvas)
		return nil
	})
	if err != nil {
		return queries.CanvasView{}, err
	}
	return view, nil
}

// HandleListCanvases returns the canvas summaries for one user
func (h *CanvasQueryHandler) HandleListCanvases(ctx context.Context, query queries.ListCanvasesQuery) ([]queries.CanvasSummaryView, error) {
	summaries := []queries.CanvasSummaryView{}
	err := h.canvasRepo.ReadByUser(ctx, query.UserID, func(canvas *aggregates.Canvas) error {
		summaries = append(summaries, queries.CanvasSummaryView{
			ID:        canvas.ID().String(),
			Name:      canvas.Name(),
			NodeCount: len(canvas.Nodes()),
			EdgeCount: len(canvas.Edges()),
			UpdatedAt: canvas.UpdatedAt(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// HandleExportCanvas returns the portable document for one canvas
func (h *CanvasQueryHandler) HandleExportCanvas(ctx context.Context, query queries.ExportCanvasQuery) (queries.CanvasExport, error) {
	var doc queries.CanvasExport
	err := h.canvasRepo.Read(ctx, aggregates.CanvasID(query.CanvasID), func(canvas *aggregates.Canvas) error {
		doc = queries.NewCanvasExport(canvas, time.Now())
		return nil
	})
	if err != nil {
		return queries.CanvasExport{}, err
	}
	return doc, nil
}

// HandleGetHistory returns the undo history summary of one canvas
func (h *CanvasQueryHandler) HandleGetHistory(ctx context.Context, query queries.GetHistoryQuery) (queries.HistoryView, error) {
	var view queries.HistoryView
	err := h.canvasRepo.Read(ctx, aggregates.CanvasID(query.CanvasID), func(canvas *aggregates.Canvas) error {
		view = queries.HistoryView{
			Length:  canvas.HistoryLength(),
			Index:   canvas.HistoryIndex(),
			CanUndo: canvas.CanUndo(),
			CanRedo: canvas.CanRedo(),
		}
		return nil
	})
	if err != nil {
		return queries.HistoryView{}, err
	}
	return view, nil
}
