package commands

import (
	"errors"
	"strings"
)

// ConnectNodesCommand requests a connection between two nodes
// The edge ID is pre-generated by the caller; whether an edge is
// actually created depends on the connection rules
type ConnectNodesCommand struct {
	CanvasID string
	EdgeID   string
	SourceID string
	TargetID string
	Style    string

	// Handle sides from the drag gesture, both empty when the client
	// lets the server pick anchors
	SourceHandle string
	TargetHandle string
}

func (c ConnectNodesCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.EdgeID) == "" {
		return errors.New("edge ID is required")
	}
	if strings.TrimSpace(c.SourceID) == "" {
		return errors.New("source node ID is required")
	}
	if strings.TrimSpace(c.TargetID) == "" {
		return errors.New("target node ID is required")
	}
	return nil
}

// UpdateEdgeCommand patches edge label, style or confidence
type UpdateEdgeCommand struct {
	CanvasID   string
	EdgeID     string
	Label      *string
	Style      *string
	Confidence *float64
}

func (c UpdateEdgeCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.EdgeID) == "" {
		return errors.New("edge ID is required")
	}
	if c.Confidence != nil && (*c.Confidence < 0 || *c.Confidence > 1) {
		return errors.New("confidence must be between 0 and 1")
	}
	return nil
}

// DeleteEdgeCommand removes an edge
type DeleteEdgeCommand struct {
	CanvasID string
	EdgeID   string
}

func (c DeleteEdgeCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.EdgeID) == "" {
		return errors.New("edge ID is required")
	}
	return nil
}
