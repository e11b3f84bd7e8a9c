package services

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/commands/handlers"
	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/core/aggregates"
	pkgerrors "naphtalai-backend/pkg/errors"
)

// InteractionMode gates how pointer events are interpreted on a canvas
type InteractionMode string

const (
	ModeSelect InteractionMode = "select"
	ModeDraw   InteractionMode = "draw"
	ModeErase  InteractionMode = "erase"
)

// IsValid reports whether the mode is recognized
func (m InteractionMode) IsValid() bool {
	switch m {
	case ModeSelect, ModeDraw, ModeErase:
		return true
	default:
		return false
	}
}

// ShortcutAction names the operation a chord is bound to
type ShortcutAction string

const (
	ActionUndo           ShortcutAction = "undo"
	ActionRedo           ShortcutAction = "redo"
	ActionSelectAll      ShortcutAction = "select_all"
	ActionClearSelection ShortcutAction = "clear_selection"
	ActionDeleteSelected ShortcutAction = "delete_selected"
	ActionDuplicate      ShortcutAction = "duplicate"
	ActionToggleSnap     ShortcutAction = "toggle_snap"
	ActionToggleGrid     ShortcutAction = "toggle_grid"
)

// ShortcutResult reports whether a chord was handled and what ran
type ShortcutResult struct {
	Handled bool           `json:"handled"`
	Action  ShortcutAction `json:"action,omitempty"`
}

// defaultBindings is the fixed chord table
// Redo has two chord variants to match both common conventions
var defaultBindings = map[string]ShortcutAction{
	"ctrl+z":       ActionUndo,
	"ctrl+shift+z": ActionRedo,
	"ctrl+y":       ActionRedo,
	"ctrl+a":       ActionSelectAll,
	"escape":       ActionClearSelection,
	"delete":       ActionDeleteSelected,
	"backspace":    ActionDeleteSelected,
	"ctrl+d":       ActionDuplicate,
	"alt+s":        ActionToggleSnap,
	"alt+g":        ActionToggleGrid,
}

type strokeGesture struct {
	points  []commands.StrokePoint
	color   string
	width   float64
	opacity float64
}

// InteractionService is the event-to-intent translation layer: it owns
// per-canvas interaction modes, assembles freehand pen gestures, and
// runs the keyboard chord table. It owns no graph data itself
type InteractionService struct {
	mu       sync.Mutex
	modes    map[string]InteractionMode
	gestures map[string]*strokeGesture

	undoHandler      *handlers.UndoHandler
	redoHandler      *handlers.RedoHandler
	selectionHandler *handlers.SelectionHandler
	bulkHandler      *handlers.BulkOperationHandler
	settingsHandler  *handlers.SettingsHandler
	strokeHandler    *handlers.StrokeHandler
	canvasRepo       ports.CanvasRepository
	logger           *zap.Logger
}

// NewInteractionService creates a new interaction service
func NewInteractionService(
	undoHandler *handlers.UndoHandler,
	redoHandler *handlers.RedoHandler,
	selectionHandler *handlers.SelectionHandler,
	bulkHandler *handlers.BulkOperationHandler,
	settingsHandler *handlers.SettingsHandler,
	strokeHandler *handlers.StrokeHandler,
	canvasRepo ports.CanvasRepository,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		modes:            make(map[string]InteractionMode),
		gestures:         make(map[string]*strokeGesture),
		undoHandler:      undoHandler,
		redoHandler:      redoHandler,
		selectionHandler: selectionHandler,
		bulkHandler:      bulkHandler,
		settingsHandler:  settingsHandler,
		strokeHandler:    strokeHandler,
		canvasRepo:       canvasRepo,
		logger:           logger,
	}
}

// SetMode switches the interaction mode for a canvas
// Leaving draw mode abandons any uncommitted gesture
func (s *InteractionService) SetMode(canvasID string, mode InteractionMode) error {
	if !mode.IsValid() {
		return pkgerrors.NewValidationError("unknown interaction mode")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[canvasID] = mode
	if mode != ModeDraw {
		delete(s.gestures, canvasID)
	}
	return nil
}

// Mode returns the current interaction mode for a canvas
func (s *InteractionService) Mode(canvasID string) InteractionMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode, ok := s.modes[canvasID]; ok {
		return mode
	}
	return ModeSelect
}

// DraggingEnabled reports whether pointer events may drive node
// dragging and canvas panning. Drawing and erasing exclude dragging
// entirely
func (s *InteractionService) DraggingEnabled(canvasID string) bool {
	return s.Mode(canvasID) == ModeSelect
}

// PointerDown routes a press according to the current mode: in draw
// mode it opens a gesture, in erase mode it erases strokes near the
// point, in select mode it is a no-op here
func (s *InteractionService) PointerDown(ctx context.Context, canvasID string, x, y float64, color string, width, opacity float64) error {
	switch s.Mode(canvasID) {
	case ModeDraw:
		s.mu.Lock()
		s.gestures[canvasID] = &strokeGesture{
			points:  []commands.StrokePoint{{X: x, Y: y}},
			color:   color,
			width:   width,
			opacity: opacity,
		}
		s.mu.Unlock()
		return nil
	case ModeErase:
		return s.strokeHandler.HandleErase(ctx, commands.EraseStrokesCommand{
			CanvasID: canvasID,
			X:        x,
			Y:        y,
		})
	default:
		return nil
	}
}

// PointerMove appends a point to the open gesture, if any
func (s *InteractionService) PointerMove(canvasID string, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gesture, ok := s.gestures[canvasID]; ok {
		gesture.points = append(gesture.points, commands.StrokePoint{X: x, Y: y})
	}
}

// PointerUp closes the open gesture and commits it as a stroke
// Gestures with a single point are discarded
func (s *InteractionService) PointerUp(ctx context.Context, canvasID string) (bool, error) {
	s.mu.Lock()
	gesture, ok := s.gestures[canvasID]
	delete(s.gestures, canvasID)
	s.mu.Unlock()

	if !ok || len(gesture.points) < 2 {
		return false, nil
	}

	err := s.strokeHandler.HandleCommit(ctx, commands.CommitStrokeCommand{
		CanvasID: canvasID,
		Points:   gesture.points,
		Color:    gesture.color,
		Width:    gesture.width,
		Opacity:  gesture.opacity,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// HandleShortcut runs the action bound to a chord
// Chords are suppressed entirely while a text input has focus, and
// unbound chords are reported as unhandled rather than failing
func (s *InteractionService) HandleShortcut(ctx context.Context, cmd commands.ShortcutCommand) (ShortcutResult, error) {
	if err := cmd.Validate(); err != nil {
		return ShortcutResult{}, pkgerrors.NewValidationError(err.Error())
	}

	if cmd.Editing {
		return ShortcutResult{}, nil
	}

	action, ok := defaultBindings[strings.ToLower(cmd.Chord)]
	if !ok {
		return ShortcutResult{}, nil
	}

	var err error
	switch action {
	case ActionUndo:
		err = s.undoHandler.Handle(ctx, commands.UndoCommand{CanvasID: cmd.CanvasID})
	case ActionRedo:
		err = s.redoHandler.Handle(ctx, commands.RedoCommand{CanvasID: cmd.CanvasID})
	case ActionSelectAll:
		err = s.selectionHandler.Handle(ctx, commands.SelectCommand{
			CanvasID: cmd.CanvasID,
			Mode:     commands.SelectionAll,
		})
	case ActionClearSelection:
		err = s.selectionHandler.Handle(ctx, commands.SelectCommand{
			CanvasID: cmd.CanvasID,
			Mode:     commands.SelectionClear,
		})
	case ActionDeleteSelected:
		err = s.bulkHandler.HandleDeleteSelected(ctx, commands.DeleteSelectedCommand{CanvasID: cmd.CanvasID})
	case ActionDuplicate:
		err = s.bulkHandler.HandleDuplicate(ctx, commands.DuplicateSelectedCommand{CanvasID: cmd.CanvasID})
	case ActionToggleSnap:
		err = s.toggleSetting(ctx, cmd.CanvasID, true)
	case ActionToggleGrid:
		err = s.toggleSetting(ctx, cmd.CanvasID, false)
	}
	if err != nil {
		return ShortcutResult{}, err
	}

	s.logger.Debug("Shortcut handled",
		zap.String("canvasID", cmd.CanvasID),
		zap.String("chord", cmd.Chord),
		zap.String("action", string(action)))
	return ShortcutResult{Handled: true, Action: action}, nil
}

func (s *InteractionService) toggleSetting(ctx context.Context, canvasID string, snap bool) error {
	cmd := commands.UpdateSettingsCommand{CanvasID: canvasID}
	err := s.canvasRepo.Read(ctx, aggregates.CanvasID(canvasID), func(canvas *aggregates.Canvas) error {
		if snap {
			next := !canvas.SnapToGrid()
			cmd.SnapToGrid = &next
		} else {
			next := !canvas.GridVisible()
			cmd.GridVisible = &next
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.settingsHandler.Handle(ctx, cmd)
}
