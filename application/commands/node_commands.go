package commands

import (
	"errors"
	"strings"

	"naphtalai-backend/domain/core/valueobjects"
)

// AddNodeCommand places a new node on a canvas
// The node ID is pre-generated by the caller so the API can return it
// without waiting for the handler
type AddNodeCommand struct {
	CanvasID     string
	NodeID       string
	UserID       string
	Kind         string
	Label        string
	Content      string
	EntityType   string
	Source       string
	FileRef      string
	ThumbnailRef string
	Tags         []string
	X            float64
	Y            float64
	Width        float64
	Height       float64
}

func (c AddNodeCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.NodeID) == "" {
		return errors.New("node ID is required")
	}
	if !valueobjects.NodeKind(c.Kind).IsValid() {
		return errors.New("unknown node kind")
	}
	return nil
}

// UpdateNodeCommand patches node content fields
// Nil pointers leave the field untouched
type UpdateNodeCommand struct {
	CanvasID     string
	NodeID       string
	Label        *string
	Content      *string
	EntityType   *string
	Tags         *[]string
	Pinned       *bool
	ThumbnailRef *string
}

func (c UpdateNodeCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.NodeID) == "" {
		return errors.New("node ID is required")
	}
	return nil
}

// MoveNodeCommand repositions a node
type MoveNodeCommand struct {
	CanvasID string
	NodeID   string
	X        float64
	Y        float64
}

func (c MoveNodeCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.NodeID) == "" {
		return errors.New("node ID is required")
	}
	return nil
}

// ResizeNodeCommand changes a node's dimensions
type ResizeNodeCommand struct {
	CanvasID string
	NodeID   string
	Width    float64
	Height   float64
}

func (c ResizeNodeCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.NodeID) == "" {
		return errors.New("node ID is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("dimensions must be positive")
	}
	return nil
}

// DeleteNodeCommand removes a node and every edge touching it
type DeleteNodeCommand struct {
	CanvasID string
	NodeID   string
}

func (c DeleteNodeCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.NodeID) == "" {
		return errors.New("node ID is required")
	}
	return nil
}

// DropFileCommand creates a file node from a dropped document
type DropFileCommand struct {
	CanvasID string
	NodeID   string
	Name     string
	FileRef  string
	Content  string
	X        float64
	Y        float64
}

func (c DropFileCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.NodeID) == "" {
		return errors.New("node ID is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("file name is required")
	}
	return nil
}
