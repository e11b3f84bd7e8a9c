package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"naphtalai-backend/application/queries"
	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
	pkgerrors "naphtalai-backend/pkg/errors"
)

func newCanvas(t *testing.T, userID string) *aggregates.Canvas {
	t.Helper()
	canvas, err := aggregates.NewCanvas(userID, "Board", config.DefaultDomainConfig())
	require.NoError(t, err)
	return canvas
}

func TestCanvasRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCanvasRepository(zap.NewNop())

	canvas := newCanvas(t, "user-1")
	require.NoError(t, repo.Save(ctx, canvas))

	t.Run("duplicate save conflicts", func(t *testing.T) {
		err := repo.Save(ctx, canvas)
		require.Error(t, err)
		var appErr *pkgerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, pkgerrors.ErrorTypeConflict, appErr.Type)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Equal(t, canvas.ID(), got.ID())
	})

	t.Run("missing canvas is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, aggregates.NewCanvasID())
		require.Error(t, err)
		var appErr *pkgerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, pkgerrors.ErrorTypeNotFound, appErr.Type)
	})

	t.Run("read holds the canvas lock", func(t *testing.T) {
		var name string
		err := repo.Read(ctx, canvas.ID(), func(c *aggregates.Canvas) error {
			name = c.Name()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Board", name)
	})

	t.Run("read of a missing canvas fails", func(t *testing.T) {
		err := repo.Read(ctx, aggregates.NewCanvasID(), func(c *aggregates.Canvas) error {
			t.Fatal("callback must not run")
			return nil
		})
		assert.Error(t, err)
	})

	t.Run("read by user newest first", func(t *testing.T) {
		time.Sleep(2 * time.Millisecond)
		newer := newCanvas(t, "user-1")
		require.NoError(t, repo.Save(ctx, newer))
		require.NoError(t, repo.Save(ctx, newCanvas(t, "someone-else")))

		var ids []aggregates.CanvasID
		err := repo.ReadByUser(ctx, "user-1", func(c *aggregates.Canvas) error {
			ids = append(ids, c.ID())
			return nil
		})
		require.NoError(t, err)
		require.Len(t, ids, 2)
		assert.Equal(t, newer.ID(), ids[0])
	})

	t.Run("update runs the mutation", func(t *testing.T) {
		err := repo.Update(ctx, canvas.ID(), func(c *aggregates.Canvas) error {
			c.SetSnapToGrid(true)
			return nil
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.True(t, got.SnapToGrid())
	})

	t.Run("update of a missing canvas fails", func(t *testing.T) {
		err := repo.Update(ctx, aggregates.NewCanvasID(), func(c *aggregates.Canvas) error {
			return nil
		})
		assert.Error(t, err)
	})

	t.Run("update honors cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := repo.Update(cancelled, canvas.ID(), func(c *aggregates.Canvas) error {
			t.Fatal("mutation must not run")
			return nil
		})
		assert.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, canvas.ID()))
		_, err := repo.GetByID(ctx, canvas.ID())
		assert.Error(t, err)
		assert.Error(t, repo.Delete(ctx, canvas.ID()))
	})
}

// Exercised with -race: a mutation and a view build against the same
// canvas must serialize through the record lock
func TestCanvasRepositoryConcurrentReadDuringUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewCanvasRepository(zap.NewNop())

	canvas := newCanvas(t, "user-1")
	require.NoError(t, repo.Save(ctx, canvas))
	id := canvas.ID()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			err := repo.Update(ctx, id, func(c *aggregates.Canvas) error {
				pos, err := valueobjects.NewPosition(float64(i), float64(i))
				if err != nil {
					return err
				}
				node, err := entities.NewNode(valueobjects.NotePayload{Label: "n"}, pos)
				if err != nil {
					return err
				}
				return c.AddNode(node)
			})
			assert.NoError(t, err)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			err := repo.Read(ctx, id, func(c *aggregates.Canvas) error {
				view := queries.NewCanvasView(c)
				assert.Equal(t, len(view.Nodes), len(c.Nodes()))
				return nil
			})
			assert.NoError(t, err)
		}
	}()

	wg.Wait()

	err := repo.Read(ctx, id, func(c *aggregates.Canvas) error {
		assert.Len(t, c.Nodes(), 200)
		return nil
	})
	require.NoError(t, err)
}

func TestEntityRegistryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEntityRegistryRepository()

	crane, err := entities.NewExtractedEntity("Abigail Crane", "person", "letter author", "letters.pdf", 0.9)
	require.NoError(t, err)
	creek, err := entities.NewExtractedEntity("Hollow Creek", "place", "", "letters.pdf", 0.8)
	require.NoError(t, err)

	require.NoError(t, repo.SaveEntity(ctx, "user-1", crane))
	require.NoError(t, repo.SaveEntity(ctx, "user-1", creek))
	require.NoError(t, repo.SaveLink(ctx, "user-1", entities.EntityLink{
		From:         "Abigail Crane",
		To:           "Hollow Creek",
		Relationship: "lived_in",
		Confidence:   0.7,
	}))

	t.Run("get entity", func(t *testing.T) {
		got, err := repo.GetEntity(ctx, "user-1", crane.ID())
		require.NoError(t, err)
		assert.Equal(t, "Abigail Crane", got.Name())
	})

	t.Run("entities are scoped per user", func(t *testing.T) {
		_, err := repo.GetEntity(ctx, "user-2", crane.ID())
		assert.Error(t, err)

		list, err := repo.ListEntities(ctx, "user-2")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("list entities", func(t *testing.T) {
		list, err := repo.ListEntities(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("delete removes the entity and its links", func(t *testing.T) {
		require.NoError(t, repo.DeleteEntity(ctx, "user-1", crane.ID()))

		list, err := repo.ListEntities(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Hollow Creek", list[0].Name())

		links, err := repo.ListLinks(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
