package commands

import (
	"errors"
	"strings"
)

// StrokePoint is one sampled point of a pen gesture
type StrokePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CommitStrokeCommand records a completed pen stroke
// Strokes with fewer than two points are discarded by the canvas,
// which is not an error
type CommitStrokeCommand struct {
	CanvasID string
	Points   []StrokePoint
	Color    string
	Width    float64
	Opacity  float64
}

func (c CommitStrokeCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}

// EraseStrokesCommand removes strokes near a probe point
type EraseStrokesCommand struct {
	CanvasID string
	X        float64
	Y        float64
}

func (c EraseStrokesCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}
