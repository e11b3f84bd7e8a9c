package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"naphtalai-backend/application/queries"
	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/infrastructure/persistence/memory"
	pkgerrors "naphtalai-backend/pkg/errors"
)

func newCanvasService(repo *memory.CanvasRepository) *CanvasService {
	return NewCanvasService(repo, nopEventBus{}, config.DefaultDomainConfig(), zap.NewNop())
}

func seedEdge(t *testing.T, canvas *aggregates.Canvas, source, target *entities.Node) *entities.Edge {
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

func TestCanvasServiceLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and persists a canvas", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		svc := newCanvasService(repo)

		canvas, err := svc.CreateCanvas(ctx, "user-1", "Field Notes")
		require.NoError(t, err)
		assert.Equal(t, "Field Notes", canvas.Name())

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Equal(t, "user-1", stored.UserID())
	})

	t.Run("rejects creation without a user", func(t *testing.T) {
		svc := newCanvasService(memory.NewCanvasRepository(zap.NewNop()))

		_, err := svc.CreateCanvas(ctx, "", "Board")
		assert.Error(t, err)
	})

	t.Run("owner can delete", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		svc := newCanvasService(repo)

		canvas, err := svc.CreateCanvas(ctx, "user-1", "Board")
		require.NoError(t, err)
		require.NoError(t, svc.DeleteCanvas(ctx, "user-1", string(canvas.ID())))

		_, err = repo.GetByID(ctx, canvas.ID())
		assert.Error(t, err)
	})

	t.Run("deletion by another user is forbidden", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		svc := newCanvasService(repo)

		canvas, err := svc.CreateCanvas(ctx, "user-1", "Board")
		require.NoError(t, err)

		err = svc.DeleteCanvas(ctx, "user-2", string(canvas.ID()))
		var appErr *pkgerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, pkgerrors.ErrorTypeForbidden, appErr.Type)

		_, err = repo.GetByID(ctx, canvas.ID())
		assert.NoError(t, err)
	})
}

func TestCanvasServiceImport(t *testing.T) {
	ctx := context.Background()

	t.Run("export then import round trips the graph", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		source, first, second := seedCanvas(t, repo)
		seedEdge(t, source, first, second)
		doc := queries.NewCanvasExport(source, time.Now())

		svc := newCanvasService(repo)
		target, err := svc.CreateCanvas(ctx, "user-1", "Copy")
		require.NoError(t, err)

		require.NoError(t, svc.ImportCanvas(ctx, string(target.ID()), doc))

		stored, err := repo.GetByID(ctx, target.ID())
		require.NoError(t, err)
		assert.Len(t, stored.Nodes(), 2)
		assert.Len(t, stored.Edges(), 1)
		assert.True(t, stored.CanUndo())
	})

	t.Run("import can be undone", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		source, _, _ := seedCanvas(t, repo)
		doc := queries.NewCanvasExport(source, time.Now())

		svc := newCanvasService(repo)
		target, err := svc.CreateCanvas(ctx, "user-1", "Copy")
		require.NoError(t, err)
		require.NoError(t, svc.ImportCanvas(ctx, string(target.ID()), doc))

		err = repo.Update(ctx, target.ID(), func(canvas *aggregates.Canvas) error {
			canvas.Undo()
			return nil
		})
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, target.ID())
		require.NoError(t, err)
		assert.Empty(t, stored.Nodes())
	})

	t.Run("rejects a document with a dangling edge", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		source, first, second := seedCanvas(t, repo)
		seedEdge(t, source, first, second)

		doc := queries.NewCanvasExport(source, time.Now())
		doc.Nodes = doc.Nodes[:1]

		svc := newCanvasService(repo)
		target, err := svc.CreateCanvas(ctx, "user-1", "Copy")
		require.NoError(t, err)

		err = svc.ImportCanvas(ctx, string(target.ID()), doc)
		assert.Error(t, err)
	})

	t.Run("rejects a node with a malformed ID", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		svc := newCanvasService(repo)
		target, err := svc.CreateCanvas(ctx, "user-1", "Copy")
		require.NoError(t, err)

		err = svc.ImportCanvas(ctx, string(target.ID()), queries.CanvasExport{
			Nodes: []queries.NodeView{{ID: "not-a-uuid", Kind: "note", Label: "n"}},
		})
		var appErr *pkgerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, pkgerrors.ErrorTypeValidation, appErr.Type)
	})

	t.Run("import into a missing canvas fails", func(t *testing.T) {
		svc := newCanvasService(memory.NewCanvasRepository(zap.NewNop()))

		err := svc.ImportCanvas(ctx, "missing", queries.CanvasExport{})
		assert.Error(t, err)
	})
}
