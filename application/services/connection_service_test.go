package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"naphtalai-backend/application/commands"
	"naphtalai-backend/application/ports"
	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/validators"
	"naphtalai-backend/domain/core/valueobjects"
	"naphtalai-backend/domain/events"
	"naphtalai-backend/infrastructure/persistence/memory"
)

type nopEventBus struct{}

func (nopEventBus) Publish(ctx context.Context, event events.DomainEvent) error { return nil }
func (nopEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	return nil
}

var _ ports.EventBus = nopEventBus{}

func seedCanvas(t *testing.T, repo *memory.CanvasRepository) (*aggregates.Canvas, *entities.Node, *entities.Node) {
	t.Helper()
	canvas, err := aggregates.NewCanvas("user-1", "Board", config.DefaultDomainConfig())
	require.NoError(t, err)

	first := seedNote(t, canvas, "first", 0, 0)
	second := seedNote(t, canvas, "second", 500, 0)
	require.NoError(t, repo.Save(context.Background(), canvas))
	return canvas, first, second
}

func seedNote(t *testing.T, canvas *aggregates.Canvas, label string, x, y float64) *entities.Node {
	t.Helper()
	pos, err := valueobjects.NewPosition(x, y)
	require.NoError(t, err)
	node, err := entities.NewNode(valueobjects.NotePayload{Label: label}, pos)
	require.NoError(t, err)
	require.NoError(t, canvas.AddNode(node))
	return node
}

func newConnectionService(repo *memory.CanvasRepository) *ConnectionService {
	return newConnectionServiceWithConfig(repo, config.DefaultDomainConfig())
}

func newConnectionServiceWithConfig(repo *memory.CanvasRepository, cfg *config.DomainConfig) *ConnectionService {
	return NewConnectionService(
		repo,
		nopEventBus{},
		validators.NewConnectionPolicy(cfg),
		cfg,
		zap.NewNop(),
	)
}

func TestConnectionServiceConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an edge between two notes", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, first, second := seedCanvas(t, repo)
		svc := newConnectionService(repo)

		result, err := svc.Connect(ctx, commands.ConnectNodesCommand{
			CanvasID: string(canvas.ID()),
			EdgeID:   uuid.NewString(),
			SourceID: first.ID().String(),
			TargetID: second.ID().String(),
		})
		require.NoError(t, err)
		assert.True(t, result.Created)
		require.NotNil(t, result.Edge)
		assert.Equal(t, "expands_on", result.Edge.SemanticType)
		assert.Equal(t, first.ID().String(), result.Edge.Source)
		assert.Equal(t, second.ID().String(), result.Edge.Target)
		// second sits to the right of first, so the handles face each other
		assert.Equal(t, string(entities.HandleRight), result.Edge.SourceHandle)
		assert.Equal(t, string(entities.HandleLeft), result.Edge.TargetHandle)
		assert.Nil(t, result.Notice)

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Len(t, stored.Edges(), 1)
	})

	t.Run("keeps the handles the gesture supplied", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, first, second := seedCanvas(t, repo)
		svc := newConnectionService(repo)

		result, err := svc.Connect(ctx, commands.ConnectNodesCommand{
			CanvasID:     string(canvas.ID()),
			EdgeID:       uuid.NewString(),
			SourceID:     first.ID().String(),
			TargetID:     second.ID().String(),
			SourceHandle: "top",
			TargetHandle: "bottom",
		})
		require.NoError(t, err)
		require.True(t, result.Created)
		assert.Equal(t, "top", result.Edge.SourceHandle)
		assert.Equal(t, "bottom", result.Edge.TargetHandle)
	})

	t.Run("rejects a duplicate pair with a notice", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, first, second := seedCanvas(t, repo)
		svc := newConnectionService(repo)

		_, err := svc.Connect(ctx, commands.ConnectNodesCommand{
			CanvasID: string(canvas.ID()),
			EdgeID:   uuid.NewString(),
			SourceID: first.ID().String(),
			TargetID: second.ID().String(),
		})
		require.NoError(t, err)

		// reversed direction still names the same unordered pair
		result, err := svc.Connect(ctx, commands.ConnectNodesCommand{
			CanvasID: string(canvas.ID()),
			EdgeID:   uuid.NewString(),
			SourceID: second.ID().String(),
			TargetID: first.ID().String(),
		})
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Nil(t, result.Edge)
		assert.Equal(t, "connection already exists", result.Reason)
		require.NotNil(t, result.Notice)
		assert.Equal(t, int64(2600), result.Notice.TTLMillis)

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Len(t, stored.Edges(), 1)
	})

	t.Run("new edges carry the configured confidence", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, first, second := seedCanvas(t, repo)
		cfg := config.DefaultDomainConfig()
		cfg.DefaultConfidence = 0.8
		svc := newConnectionServiceWithConfig(repo, cfg)

		result, err := svc.Connect(ctx, commands.ConnectNodesCommand{
			CanvasID: string(canvas.ID()),
			EdgeID:   uuid.NewString(),
			SourceID: first.ID().String(),
			TargetID: second.ID().String(),
		})
		require.NoError(t, err)
		require.True(t, result.Created)
		assert.Equal(t, 0.8, result.Edge.Confidence)
	})

	t.Run("duplicate pairs pass when the config allows them", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, first, second := seedCanvas(t, repo)
		cfg := config.DefaultDomainConfig()
		cfg.AllowDuplicateEdges = true
		svc := newConnectionServiceWithConfig(repo, cfg)

		for i := 0; i < 2; i++ {
			result, err := svc.Connect(ctx, commands.ConnectNodesCommand{
				CanvasID: string(canvas.ID()),
				EdgeID:   uuid.NewString(),
				SourceID: first.ID().String(),
				TargetID: second.ID().String(),
			})
			require.NoError(t, err)
			assert.True(t, result.Created)
		}

		stored, err := repo.GetByID(ctx, canvas.ID())
		require.NoError(t, err)
		assert.Len(t, stored.Edges(), 2)
	})

	t.Run("rejects self links", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, first, _ := seedCanvas(t, repo)
		svc := newConnectionService(repo)

		result, err := svc.Connect(ctx, commands.ConnectNodesCommand{
			CanvasID: string(canvas.ID()),
			EdgeID:   uuid.NewString(),
			SourceID: first.ID().String(),
			TargetID: first.ID().String(),
		})
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, "self-links disabled", result.Reason)
		require.NotNil(t, result.Notice)
	})

	t.Run("rejects an endpoint that does not resolve", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		canvas, first, _ := seedCanvas(t, repo)
		svc := newConnectionService(repo)

		result, err := svc.Connect(ctx, commands.ConnectNodesCommand{
			CanvasID: string(canvas.ID()),
			EdgeID:   uuid.NewString(),
			SourceID: first.ID().String(),
			TargetID: uuid.NewString(),
		})
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, "missing metadata", result.Reason)
	})

	t.Run("validates the command", func(t *testing.T) {
		repo := memory.NewCanvasRepository(zap.NewNop())
		svc := newConnectionService(repo)

		_, err := svc.Connect(ctx, commands.ConnectNodesCommand{})
		assert.Error(t, err)
	})
}

func TestConnectionServicePreview(t *testing.T) {
	svc := newConnectionService(memory.NewCanvasRepository(zap.NewNop()))

	semantic := svc.Preview(valueobjects.KindFile, valueobjects.KindEntity)
	assert.Equal(t, "mentions", semantic.Type)

	fallback := svc.Preview(valueobjects.NodeKind("unknown"), valueobjects.KindNote)
	assert.Equal(t, "related_to", fallback.Type)
}
