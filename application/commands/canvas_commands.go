package commands

import (
	"errors"
	"strings"

	"naphtalai-backend/domain/core/aggregates"
)

// SelectionMode chooses how a selection command is applied
type SelectionMode string

const (
	SelectionReplace SelectionMode = "replace"
	SelectionClear   SelectionMode = "clear"
	SelectionAll     SelectionMode = "all"
)

// SelectCommand replaces, clears or extends the current selection
type SelectCommand struct {
	CanvasID string
	Mode     SelectionMode
	NodeIDs  []string
	EdgeIDs  []string
}

func (c SelectCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	switch c.Mode {
	case SelectionReplace, SelectionClear, SelectionAll:
		return nil
	default:
		return errors.New("unknown selection mode")
	}
}

// UndoCommand steps the canvas one history entry back
type UndoCommand struct {
	CanvasID string
}

func (c UndoCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}

// RedoCommand steps the canvas one history entry forward
type RedoCommand struct {
	CanvasID string
}

func (c RedoCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}

// MarkHistoryCommand pushes an explicit history checkpoint
// Moves and resizes do not checkpoint on their own, so clients that
// want drag-end granularity mark one after the gesture settles
type MarkHistoryCommand struct {
	CanvasID string
	Tag      string
}

func (c MarkHistoryCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}

// DuplicateSelectedCommand clones the selected nodes at an offset
type DuplicateSelectedCommand struct {
	CanvasID string
}

func (c DuplicateSelectedCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}

// DeleteSelectedCommand removes every selected node and edge
type DeleteSelectedCommand struct {
	CanvasID string
}

func (c DeleteSelectedCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	return nil
}

// AlignSelectedCommand lines up the selected nodes along one edge or axis
type AlignSelectedCommand struct {
	CanvasID  string
	Direction string
}

func (c AlignSelectedCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	switch aggregates.AlignDirection(c.Direction) {
	case aggregates.AlignLeft, aggregates.AlignCenter, aggregates.AlignRight,
		aggregates.AlignTop, aggregates.AlignMiddle, aggregates.AlignBottom:
		return nil
	default:
		return errors.New("unknown align direction")
	}
}

// DistributeSelectedCommand spaces the selected nodes evenly
type DistributeSelectedCommand struct {
	CanvasID    string
	Orientation string
}

func (c DistributeSelectedCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	switch aggregates.Orientation(c.Orientation) {
	case aggregates.Horizontal, aggregates.Vertical:
		return nil
	default:
		return errors.New("unknown orientation")
	}
}

// ShortcutCommand asks the interaction surface to run the action bound
// to a keyboard chord. Editing reports whether a text-input-like
// element has focus, which suppresses every binding
type ShortcutCommand struct {
	CanvasID string
	Chord    string
	Editing  bool
}

func (c ShortcutCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if strings.TrimSpace(c.Chord) == "" {
		return errors.New("chord is required")
	}
	return nil
}

// UpdateSettingsCommand changes grid snapping and visibility
// Nil pointers leave the setting untouched
type UpdateSettingsCommand struct {
	CanvasID    string
	SnapToGrid  *bool
	GridVisible *bool
	GridSize    *float64
}

func (c UpdateSettingsCommand) Validate() error {
	if strings.TrimSpace(c.CanvasID) == "" {
		return errors.New("canvas ID is required")
	}
	if c.GridSize != nil && *c.GridSize <= 0 {
		return errors.New("grid size must be positive")
	}
	return nil
}
