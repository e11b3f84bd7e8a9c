package queries

import (
	"errors"
	"strings"
)

// GetCanvasQuery fetches the full read model of one canvas
type GetCanvasQuery struct {
	CanvasID string
}

func (q GetCanvasQuery) Validate() error {
	if strings.TrimSpace(q.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}

// ListCanvasesQuery fetches the canvas summaries for one user
type ListCanvasesQuery struct {
	UserID string
}

func (q ListCanvasesQuery) Validate() error {
	if strings.TrimSpace(q.UserID) == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// ExportCanvasQuery builds the portable document for one canvas
type ExportCanvasQuery struct {
	CanvasID string
}

func (q ExportCanvasQuery) Validate() error {
	if strings.TrimSpace(q.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}

// GetHistoryQuery fetches the undo history summary of one canvas
type GetHistoryQuery struct {
	CanvasID string
}

func (q GetHistoryQuery) Validate() error {
	if strings.TrimSpace(q.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}
