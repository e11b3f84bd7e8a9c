package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/commands/handlers"
	"naphtalai-backend/infrastructure/persistence/memory"
)

func newInteractionService(repo *memory.CanvasRepository) *InteractionService {
	logger := zap.NewNop()
	bus := nopEventBus{}
	return NewInteractionService(
		handlers.NewUndoHandler(repo, bus, logger),
		handlers.NewRedoHandler(repo, bus, logger),
		handlers.NewSelectionHandler(repo, bus, logger),
		handlers.NewBulkOperationHandler(repo, bus, logger),
		handlers.NewSettingsHandler(repo, bus, logger),
		handlers.NewStrokeHandler(repo, bus, logger),
		repo,
		logger,
	)
}

func TestInteractionServiceModes(t *testing.T) {
	repo := memory.NewCanvasRepository(zap.NewNop())
	svc := newInteractionService(repo)

	t.Run("defaults to select with dragging enabled", func(t *testing.T) {
		assert.Equal(t, ModeSelect, svc.Mode("canvas-1"))
		assert.True(t, svc.DraggingEnabled("canvas-1"))
	})

	t.Run("draw and erase disable dragging", func(t *testing.T) {
		require.NoError(t, svc.SetMode("canvas-1", ModeDraw))
		assert.False(t, svc.DraggingEnabled("canvas-1"))

		require.NoError(t, svc.SetMode("canvas-1", ModeErase))
		assert.False(t, svc.DraggingEnabled("canvas-1"))
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		assert.Error(t, svc.SetMode("canvas-1", InteractionMode("lasso")))
	})

	t.Run("modes are tracked per canvas", func(t *testing.T) {
		require.NoError(t, svc.SetMode("canvas-a", ModeDraw))
		assert.Equal(t, ModeDraw, svc.Mode("canvas-a"))
		assert.Equal(t, ModeSelect, svc.Mode("canvas-b"))
	})
}

func TestInteractionServiceDrawGesture(t *testing.T) {
	ctx := context.Background()

	t.Run("commits a multi-point gesture as a stroke", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)
		canvasID := string(canvas.ID())

		require.NoError(t, svc.SetMode(canvasID, ModeDraw))
		require.NoError(t, svc.PointerDown(ctx, canvasID, 10, 10, "#1d4ed8", 2, 1))
		svc.PointerMove(canvasID, 15, 12)
		svc.PointerMove(canvasID, 22, 18)

		committed, err := svc.PointerUp(ctx, canvasID)
		require.NoError(t, err)
		assert.True(t, committed)

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		require.Len(t, stored.Strokes(), 1)
		assert.Len(t, stored.Strokes()[0].Points(), 3)
	})

	t.Run("commits an unstyled gesture with pen defaults", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)
		canvasID := string(canvas.ID())

		require.NoError(t, svc.SetMode(canvasID, ModeDraw))
		require.NoError(t, svc.PointerDown(ctx, canvasID, 10, 10, "", 0, 0))
		svc.PointerMove(canvasID, 20, 20)

		committed, err := svc.PointerUp(ctx, canvasID)
		require.NoError(t, err)
		assert.True(t, committed)

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		require.Len(t, stored.Strokes(), 1)
		assert.Positive(t, stored.Strokes()[0].Width())
		assert.Positive(t, stored.Strokes()[0].Opacity())
	})

	t.Run("discards a single-point gesture", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)
		canvasID := string(canvas.ID())

		require.NoError(t, svc.SetMode(canvasID, ModeDraw))
		require.NoError(t, svc.PointerDown(ctx, canvasID, 10, 10, "#1d4ed8", 2, 1))

		committed, err := svc.PointerUp(ctx, canvasID)
		require.NoError(t, err)
		assert.False(t, committed)

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Empty(t, stored.Strokes())
	})

	t.Run("leaving draw mode abandons the open gesture", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)
		canvasID := string(canvas.ID())

		require.NoError(t, svc.SetMode(canvasID, ModeDraw))
		require.NoError(t, svc.PointerDown(ctx, canvasID, 10, 10, "#1d4ed8", 2, 1))
		svc.PointerMove(canvasID, 20, 20)
		require.NoError(t, svc.SetMode(canvasID, ModeSelect))

		committed, err := svc.PointerUp(ctx, canvasID)
		require.NoError(t, err)
		assert.False(t, committed)
	})

	t.Run("pointer up without a gesture is a no-op", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		svc := newInteractionService(repo)

		committed, err := svc.PointerUp(ctx, "canvas-1")
		require.NoError(t, err)
		assert.False(t, committed)
	})
}

func TestInteractionServiceEraseMode(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCanvasRepository(zap.NewNop())
	canvas, _, _ := seedCanvas(t, repo)
	svc := newInteractionService(repo)
	canvasID := string(canvas.ID())

	require.NoError(t, svc.SetMode(canvasID, ModeDraw))
	require.NoError(t, svc.PointerDown(ctx, canvasID, 100, 100, "#111111", 2, 1))
	svc.PointerMove(canvasID, 105, 100)
	_, err := svc.PointerUp(ctx, canvasID)
	require.NoError(t, err)

	require.NoError(t, svc.SetMode(canvasID, ModeErase))
	require.NoError(t, svc.PointerDown(ctx, canvasID, 102, 101, "", 0, 0))

	stored, err := repo.GetByID(ctx, canvas.ID())
	require.NoError(t, err)
	assert.Empty(t, stored.Strokes())
}

func TestInteractionServiceShortcuts(t *testing.T) {
	ctx := context.Background()

	t.Run("suppressed while editing text", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)

		result, err := svc.HandleShortcut(ctx, commands.ShortcutCommand{
			CanvasID: string(canvas.ID()),
			Chord:    "ctrl+z",
			Editing:  true,
		})
		require.NoError(t, err)
		assert.False(t, result.Handled)
	})

	t.Run("unbound chord reports unhandled", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)

		result, err := svc.HandleShortcut(ctx, commands.ShortcutCommand{
			CanvasID: string(canvas.ID()),
			Chord:    "ctrl+q",
		})
		require.NoError(t, err)
		assert.False(t, result.Handled)
	})

	t.Run("undo chord steps history back", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)

		before := len(canvas.Nodes())
		require.Greater(t, before, 0)

		result, err := svc.HandleShortcut(ctx, commands.ShortcutCommand{
			CanvasID: string(canvas.ID()),
			Chord:    "ctrl+z",
		})
		require.NoError(t, err)
		assert.True(t, result.Handled)
		assert.Equal(t, ActionUndo, result.Action)

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Less(t, len(stored.Nodes()), before)
	})

	t.Run("chords are case insensitive", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)

		result, err := svc.HandleShortcut(ctx, commands.ShortcutCommand{
			CanvasID: string(canvas.ID()),
			Chord:    "CTRL+Z",
		})
		require.NoError(t, err)
		assert.True(t, result.Handled)
	})

	t.Run("alt+s toggles snapping", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)
		wasSnapping := canvas.SnapToGrid()

		result, err := svc.HandleShortcut(ctx, commands.ShortcutCommand{
			CanvasID: string(canvas.ID()),
			Chord:    "alt+s",
		})
		require.NoError(t, err)
		assert.True(t, result.Handled)
		assert.Equal(t, ActionToggleSnap, result.Action)

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Equal(t, !wasSnapping, stored.SnapToGrid())
	})

	t.Run("select all then delete empties the canvas", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, repo)
		svc := newInteractionService(repo)
		canvasID := string(canvas.ID())

		_, err := svc.HandleShortcut(ctx, commands.ShortcutCommand{CanvasID: canvasID, Chord: "ctrl+a"})
		require.NoError(t, err)
		result, err := svc.HandleShortcut(ctx, commands.ShortcutCommand{CanvasID: canvasID, Chord: "delete"})
		require.NoError(t, err)
		assert.Equal(t, ActionDeleteSelected, result.Action)

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Empty(t, stored.Nodes())
	})
}
