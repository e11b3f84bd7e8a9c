package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
)

func newTestCanvas(t *testing.T) *Canvas {
	t.Helper()
	canvas, err := NewCanvas("user-1", "Test Board", config.DefaultDomainConfig())
	require.NoError(t, err)
	return canvas
}

func addNote(t *testing.T, canvas *Canvas, label string, x, y float64) *entities.Node {
	t.Helper()
	pos, err := valueobjects.NewPosition(x, y)
	require.NoError(t, err)
	node, err := entities.NewNode(valueobjects.NotePayload{Label: label}, pos)
	require.NoError(t, err)
	require.NoError(t, canvas.AddNode(node))
	return node
}

func addEdgeBetween(t *testing.T, canvas *Canvas, source, target *entities.Node) *entities.Edge {
	t.Helper()
	edge, err := entities.NewEdge(entities.EdgeSpec{
		Source:     source.ID(),
		Target:     target.ID(),
		Confidence: 1,
	})
	require.NoError(t, err)
	require.NoError(t, canvas.AddEdge(edge))
	return edge
}

func TestNewCanvas(t *testing.T) {
	t.Run("requires a user", func(t *testing.T) {
		_, err := NewCanvas("", "Board", nil)
		assert.Error(t, err)
	})

	t.Run("empty name falls back to the default", func(t *testing.T) {
		canvas, err := NewCanvas("user-1", "", config.DefaultDomainConfig())
		require.NoError(t, err)
		assert.Equal(t, "Research Canvas", canvas.Name())
	})

	t.Run("starts with an init history entry", func(t *testing.T) {
		canvas := newTestCanvas(t)
		assert.Equal(t, 1, canvas.HistoryLength())
		assert.False(t, canvas.CanUndo())
		assert.False(t, canvas.CanRedo())
	})
}

func TestDeleteNodeCascades(t *testing.T) {
	canvas := newTestCanvas(t)
	a := addNote(t, canvas, "a", 0, 0)
	b := addNote(t, canvas, "b", 100, 0)
	c := addNote(t, canvas, "c", 200, 0)
	addEdgeBetween(t, canvas, a, b)
	survivor := addEdgeBetween(t, canvas, b, c)

	canvas.DeleteNode(a.ID())

	assert.Len(t, canvas.Nodes(), 2)
	edges := canvas.Edges()
	require.Len(t, edges, 1)
	assert.True(t, edges[0].ID().Equals(survivor.ID()))
}

func TestUndoRedo(t *testing.T) {
	canvas := newTestCanvas(t)
	a := addNote(t, canvas, "a", 0, 0)
	addNote(t, canvas, "b", 100, 0)

	require.True(t, canvas.Undo())
	assert.Len(t, canvas.Nodes(), 1)

	require.True(t, canvas.Redo())
	assert.Len(t, canvas.Nodes(), 2)
	assert.False(t, canvas.CanRedo())

	t.Run("restored state does not alias the snapshot", func(t *testing.T) {
		canvas.Undo()
		restored, ok := canvas.FindNode(a.ID())
		require.True(t, ok)

		moved, _ := valueobjects.NewPosition(999, 999)
		restored.MoveTo(moved)

		canvas.Undo()
		canvas.Redo()
		again, ok := canvas.FindNode(a.ID())
		require.True(t, ok)
		assert.Equal(t, 0.0, again.Position().X())
	})

	t.Run("undo at the start is a no-op", func(t *testing.T) {
		for canvas.CanUndo() {
			canvas.Undo()
		}
		assert.False(t, canvas.Undo())
	})
}

func TestHistorySnapshotsExcludeSelection(t *testing.T) {
	canvas := newTestCanvas(t)
	a := addNote(t, canvas, "a", 0, 0)
	b := addNote(t, canvas, "b", 100, 0)
	edge := addEdgeBetween(t, canvas, a, b)

	canvas.SelectNodes([]valueobjects.NodeID{a.ID()})
	canvas.SelectEdges([]valueobjects.EdgeID{edge.ID()})

	// the snapshot pushed here is taken while "a" and the edge are selected
	addNote(t, canvas, "c", 200, 0)

	canvas.ClearSelection()
	require.True(t, canvas.Undo())
	require.True(t, canvas.Redo())

	assert.Empty(t, canvas.SelectedNodeIDs())
	assert.Empty(t, canvas.SelectedEdgeIDs())
	for _, node := range canvas.Nodes() {
		assert.False(t, node.Selected())
	}
	for _, e := range canvas.Edges() {
		assert.False(t, e.Selected())
	}
}

func TestHistoryTruncationOnBranch(t *testing.T) {
	canvas := newTestCanvas(t)
	addNote(t, canvas, "a", 0, 0)
	addNote(t, canvas, "b", 100, 0)

	canvas.Undo()
	require.True(t, canvas.CanRedo())

	// a new mutation after undo discards the redo branch
	addNote(t, canvas, "c", 200, 0)
	assert.False(t, canvas.CanRedo())
}

func TestHistoryCapacity(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	canvas, err := NewCanvas("user-1", "Board", cfg)
	require.NoError(t, err)

	for i := 0; i < cfg.HistoryCapacity+20; i++ {
		canvas.PushHistory("noop")
	}

	assert.Equal(t, cfg.HistoryCapacity, canvas.HistoryLength())
	assert.Equal(t, cfg.HistoryCapacity-1, canvas.HistoryIndex())
}

func TestDuplicateSelected(t *testing.T) {
	canvas := newTestCanvas(t)
	a := addNote(t, canvas, "a", 10, 20)
	b := addNote(t, canvas, "b", 100, 20)
	addEdgeBetween(t, canvas, a, b)

	canvas.SelectNodes([]valueobjects.NodeID{a.ID(), b.ID()})
	canvas.DuplicateSelected()

	assert.Len(t, canvas.Nodes(), 4)
	// relationships are not copied along with the nodes
	assert.Len(t, canvas.Edges(), 1)

	// the copies replace the selection, offset by the configured delta
	selected := canvas.SelectedNodeIDs()
	require.Len(t, selected, 2)
	for _, id := range selected {
		assert.False(t, id.Equals(a.ID()))
		assert.False(t, id.Equals(b.ID()))
	}

	copyOfA, ok := canvas.FindNode(selected[0])
	require.True(t, ok)
	assert.Equal(t, 50.0, copyOfA.Position().X())
	assert.Equal(t, 60.0, copyOfA.Position().Y())
}

func TestDeleteSelected(t *testing.T) {
	canvas := newTestCanvas(t)
	a := addNote(t, canvas, "a", 0, 0)
	b := addNote(t, canvas, "b", 100, 0)
	c := addNote(t, canvas, "c", 200, 0)
	addEdgeBetween(t, canvas, a, b)
	addEdgeBetween(t, canvas, b, c)

	canvas.SelectNodes([]valueobjects.NodeID{b.ID()})
	canvas.DeleteSelected()

	assert.Len(t, canvas.Nodes(), 2)
	assert.Empty(t, canvas.Edges())
	assert.Empty(t, canvas.SelectedNodeIDs())
}

func TestAlignSelected(t *testing.T) {
	canvas := newTestCanvas(t)
	a := addNote(t, canvas, "a", 10, 5)
	b := addNote(t, canvas, "b", 50, 45)
	c := addNote(t, canvas, "c", 90, 25)

	canvas.SelectNodes([]valueobjects.NodeID{a.ID(), b.ID(), c.ID()})
	canvas.AlignSelected(AlignLeft)

	for _, node := range canvas.Nodes() {
		assert.Equal(t, 10.0, node.Position().X())
	}

	t.Run("middle aligns the vertical center", func(t *testing.T) {
		canvas.AlignSelected(AlignMiddle)
		for _, node := range canvas.Nodes() {
			assert.Equal(t, 25.0, node.Position().Y())
		}
	})

	t.Run("fewer than two selected is a no-op", func(t *testing.T) {
		canvas.SelectNodes([]valueobjects.NodeID{a.ID()})
		before := a.Position()
		canvas.AlignSelected(AlignRight)
		assert.True(t, before.Equals(a.Position()))
	})
}

func TestDistributeSelected(t *testing.T) {
	canvas := newTestCanvas(t)
	a := addNote(t, canvas, "a", 0, 0)
	b := addNote(t, canvas, "b", 3, 50)
	c := addNote(t, canvas, "c", 10, 100)

	canvas.SelectNodes([]valueobjects.NodeID{a.ID(), b.ID(), c.ID()})
	canvas.DistributeSelected(Horizontal)

	assert.Equal(t, 0.0, a.Position().X())
	assert.Equal(t, 5.0, b.Position().X())
	assert.Equal(t, 10.0, c.Position().X())

	t.Run("fewer than three selected is a no-op", func(t *testing.T) {
		canvas.SelectNodes([]valueobjects.NodeID{a.ID(), b.ID()})
		canvas.DistributeSelected(Horizontal)
		assert.Equal(t, 5.0, b.Position().X())
	})
}

func TestMoveNodeSnapsWhenEnabled(t *testing.T) {
	canvas := newTestCanvas(t)
	a := addNote(t, canvas, "a", 0, 0)

	canvas.SetSnapToGrid(true)
	target, _ := valueobjects.NewPosition(13, 27)
	canvas.MoveNode(a.ID(), target)

	assert.Equal(t, 20.0, a.Position().X())
	assert.Equal(t, 20.0, a.Position().Y())
}

func TestSelectionFiltersStaleIDs(t *testing.T) {
	canvas := newTestCanvas(t)
	a := addNote(t, canvas, "a", 0, 0)
	addNote(t, canvas, "b", 100, 0)

	canvas.SelectNodes([]valueobjects.NodeID{a.ID()})
	canvas.Undo() // back before b was added
	canvas.Undo() // back before a was added

	assert.Empty(t, canvas.SelectedNodeIDs())
}

func TestStrokes(t *testing.T) {
	canvas := newTestCanvas(t)

	start, _ := valueobjects.NewPosition(0, 0)
	stroke, err := entities.NewStroke(start, "", 2, 1)
	require.NoError(t, err)

	t.Run("single-point stroke is discarded", func(t *testing.T) {
		assert.False(t, canvas.CommitStroke(stroke))
		assert.Empty(t, canvas.Strokes())
	})

	next, _ := valueobjects.NewPosition(10, 10)
	stroke.Append(next)

	t.Run("committed once long enough", func(t *testing.T) {
		assert.True(t, canvas.CommitStroke(stroke))
		assert.Len(t, canvas.Strokes(), 1)
	})

	t.Run("strokes sit outside undo history", func(t *testing.T) {
		for canvas.CanUndo() {
			canvas.Undo()
		}
		assert.Len(t, canvas.Strokes(), 1)
	})

	t.Run("erase removes strokes within the radius", func(t *testing.T) {
		probe, _ := valueobjects.NewPosition(15, 15)
		assert.Equal(t, 1, canvas.EraseStrokesNear(probe))
		assert.Empty(t, canvas.Strokes())
	})

	t.Run("erase misses distant strokes", func(t *testing.T) {
		second, err := entities.NewStroke(start, "", 2, 1)
		require.NoError(t, err)
		second.Append(next)
		require.True(t, canvas.CommitStroke(second))

		probe, _ := valueobjects.NewPosition(500, 500)
		assert.Equal(t, 0, canvas.EraseStrokesNear(probe))
		assert.Len(t, canvas.Strokes(), 1)
	})
}

func TestReplaceContent(t *testing.T) {
	canvas := newTestCanvas(t)
	addNote(t, canvas, "old", 0, 0)

	pos, _ := valueobjects.NewPosition(5, 5)
	imported, err := entities.NewNode(valueobjects.NotePayload{Label: "imported"}, pos)
	require.NoError(t, err)

	t.Run("rejects dangling edges", func(t *testing.T) {
		edge, err := entities.NewEdge(entities.EdgeSpec{
			Source:     imported.ID(),
			Target:     valueobjects.NewNodeID(),
			Confidence: 1,
		})
		require.NoError(t, err)

		err = canvas.ReplaceContent([]*entities.Node{imported}, []*entities.Edge{edge})
		assert.Error(t, err)
	})

	t.Run("swaps content and clears selection", func(t *testing.T) {
		require.NoError(t, canvas.ReplaceContent([]*entities.Node{imported}, nil))
		require.Len(t, canvas.Nodes(), 1)
		assert.True(t, canvas.Nodes()[0].ID().Equals(imported.ID()))
		assert.Empty(t, canvas.SelectedNodeIDs())
		assert.NoError(t, canvas.Validate())
	})
}
