package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/config"
	"naphtalai-backend/infrastructure/persistence/memory"
)

func newRegistryService(canvasRepo *memory.CanvasRepository) *EntityRegistryService {
	return NewEntityRegistryService(
		memory.NewEntityRegistryRepository(),
		canvasRepo,
		config.DefaultDomainConfig(),
		zap.NewNop(),
	)
}

func TestRegisterExtraction(t *testing.T) {
	ctx := context.Background()

	t.Run("stores entities and links", func(t *testing.T) {
		svc := newRegistryService(memory.NewCanvasRepository(zap.NewNop()))

		registered, err := svc.RegisterExtraction(ctx, "user-1", "notes.txt",
			[]ports.ExtractedEntityData{
				{Name: "Ada Lovelace", Type: "person", Context: "wrote the first program", Confidence: 0.9},
				{Name: "Analytical Engine", Type: "artifact", Confidence: 0.8},
			},
			[]ports.ExtractedConnectionData{
				{From: "Ada Lovelace", To: "Analytical Engine", Relationship: "programmed", Confidence: 0.85},
			})
		require.NoError(t, err)
		assert.Len(t, registered, 2)

		entities, err := svc.ListEntities(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, entities, 2)

		links, err := svc.ListLinks(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "Ada Lovelace", links[0].From)
		assert.Equal(t, "programmed", links[0].Relationship)
	})

	t.Run("skips malformed entries instead of failing the batch", func(t *testing.T) {
		svc := newRegistryService(memory.NewCanvasRepository(zap.NewNop()))

		registered, err := svc.RegisterExtraction(ctx, "user-1", "notes.txt",
			[]ports.ExtractedEntityData{
				{Name: "", Type: "person", Confidence: 0.9},
				{Name: "Valid Entry", Type: "concept", Confidence: 0.7},
			},
			[]ports.ExtractedConnectionData{
				{From: "", To: "Valid Entry", Relationship: "mentions"},
			})
		require.NoError(t, err)
		require.Len(t, registered, 1)
		assert.Equal(t, "Valid Entry", registered[0].Name())

		links, err := svc.ListLinks(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}

func TestMaterialize(t *testing.T) {
	ctx := context.Background()

	t.Run("places a registry entry as an entity node", func(t *testing.T) {
		canvasRepo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, canvasRepo)
		svc := newRegistryService(canvasRepo)

		registered, err := svc.RegisterExtraction(ctx, "user-1", "notes.txt",
			[]ports.ExtractedEntityData{{Name: "Ada Lovelace", Type: "person", Confidence: 0.9}}, nil)
		require.NoError(t, err)
		require.Len(t, registered, 1)

		view, err := svc.Materialize(ctx, "user-1", string(canvas.ID()), registered[0].ID().String(), 120, 80)
		require.NoError(t, err)
		assert.Equal(t, "entity", view.Kind)
		assert.Equal(t, "Ada Lovelace", view.Label)
		assert.Equal(t, float64(120), view.X)
		assert.Equal(t, float64(80), view.Y)

		stored, err := canvasRepo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Len(t, stored.Nodes(), 3)
	})

	t.Run("entity must belong to the requesting user", func(t *testing.T) {
		canvasRepo := memory.NewCanvasRepository(zap.NewNop())
		canvas, _, _ := seedCanvas(t, canvasRepo)
		svc := newRegistryService(canvasRepo)

		registered, err := svc.RegisterExtraction(ctx, "user-1", "notes.txt",
			[]ports.ExtractedEntityData{{Name: "Ada Lovelace", Type: "person", Confidence: 0.9}}, nil)
		require.NoError(t, err)

		_, err = svc.Materialize(ctx, "user-2", string(canvas.ID()), registered[0].ID().String(), 0, 0)
		assert.Error(t, err)
	})

	t.Run("rejects a malformed entity ID", func(t *testing.T) {
		canvasRepo := memory.NewCanvasRepository(zap.NewNop())
		svc := newRegistryService(canvasRepo)

		_, err := svc.Materialize(ctx, "user-1", "canvas", "not-a-uuid", 0, 0)
		assert.Error(t, err)
	})
}

func TestDeleteEntityRemovesLinks(t *testing.T) {
	ctx := context.Background()
	svc := newRegistryService(memory.NewCanvasRepository(zap.NewNop()))

	registered, err := svc.RegisterExtraction(ctx, "user-1", "notes.txt",
		[]ports.ExtractedEntityData{
			{Name: "Ada Lovelace", Type: "person", Confidence: 0.9},
			{Name: "Charles Babbage", Type: "person", Confidence: 0.9},
		},
		[]ports.ExtractedConnectionData{
			{From: "Ada Lovelace", To: "Charles Babbage", Relationship: "collaborated_with"},
		})
	require.NoError(t, err)
	require.Len(t, registered, 2)

	require.NoError(t, svc.DeleteEntity(ctx, "user-1", registered[0].ID().String()))

	entities, err := svc.ListEntities(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, entities, 1)

	links, err := svc.ListLinks(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, links)
}
