package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
)

func makeNode(t *testing.T, payload valueobjects.NodePayload) *entities.Node {
	t.Helper()
	pos, err := valueobjects.NewPosition(0, 0)
	require.NoError(t, err)
	node, err := entities.NewNode(payload, pos)
	require.NoError(t, err)
	return node
}

func TestConnectionPolicyValidate(t *testing.T) {
	policy := NewConnectionPolicy(nil)

	file := makeNode(t, valueobjects.FilePayload{Label: "dossier.pdf"})
	entity := makeNode(t, valueobjects.EntityPayload{Label: "J. Moriarty", EntityType: "person"})
	note := makeNode(t, valueobjects.NotePayload{Label: "observations"})

	t.Run("missing metadata", func(t *testing.T) {
		decision := policy.Validate(nil, entity, nil)
		assert.False(t, decision.Valid)
		assert.Equal(t, "missing metadata", decision.Reason)
		// the semantic triple is populated even on rejection
		assert.Equal(t, "related_to", decision.Semantic.Type)
	})

	t.Run("self-links disabled", func(t *testing.T) {
		decision := policy.Validate(file, file, nil)
		assert.False(t, decision.Valid)
		assert.Equal(t, "self-links disabled", decision.Reason)
	})

	t.Run("file mentions entity", func(t *testing.T) {
		decision := policy.Validate(file, entity, nil)
		require.True(t, decision.Valid)
		assert.Equal(t, "mentions", decision.Semantic.Type)
		assert.Equal(t, "mentions", decision.Semantic.Label)
	})

	t.Run("entity derived from file", func(t *testing.T) {
		decision := policy.Validate(entity, file, nil)
		require.True(t, decision.Valid)
		assert.Equal(t, "derived_from", decision.Semantic.Type)
	})

	t.Run("note annotates file", func(t *testing.T) {
		decision := policy.Validate(note, file, nil)
		require.True(t, decision.Valid)
		assert.Equal(t, "annotates", decision.Semantic.Type)
	})

	t.Run("duplicate pair rejected regardless of direction", func(t *testing.T) {
		edge, err := entities.NewEdge(entities.EdgeSpec{
			Source:     file.ID(),
			Target:     entity.ID(),
			Confidence: 1,
		})
		require.NoError(t, err)
		existing := []*entities.Edge{edge}

		decision := policy.Validate(file, entity, existing)
		assert.False(t, decision.Valid)
		assert.Equal(t, "connection already exists", decision.Reason)

		reversed := policy.Validate(entity, file, existing)
		assert.False(t, reversed.Valid)
		assert.Equal(t, "connection already exists", reversed.Reason)
	})
}

func TestConnectionPolicyToggles(t *testing.T) {
	file := makeNode(t, valueobjects.FilePayload{Label: "dossier.pdf"})
	entity := makeNode(t, valueobjects.EntityPayload{Label: "J. Moriarty", EntityType: "person"})

	t.Run("self links pass when the config allows them", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.AllowSelfConnections = true
		policy := NewConnectionPolicy(cfg)

		decision := policy.Validate(file, file, nil)
		assert.True(t, decision.Valid)
		assert.Equal(t, "references", decision.Semantic.Type)
	})

	t.Run("duplicate pairs pass when the config allows them", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.AllowDuplicateEdges = true
		policy := NewConnectionPolicy(cfg)

		edge, err := entities.NewEdge(entities.EdgeSpec{
			Source:     file.ID(),
			Target:     entity.ID(),
			Confidence: 1,
		})
		require.NoError(t, err)

		decision := policy.Validate(file, entity, []*entities.Edge{edge})
		assert.True(t, decision.Valid)
	})
}

func TestConnectionPolicyDescribe(t *testing.T) {
	policy := NewConnectionPolicy(nil)

	t.Run("known pair", func(t *testing.T) {
		desc := policy.Describe(valueobjects.KindNote, valueobjects.KindNote)
		assert.Equal(t, "expands_on", desc.Type)
	})

	t.Run("unknown pair falls back to the general relationship", func(t *testing.T) {
		desc := policy.Describe(valueobjects.NodeKind("unknown"), valueobjects.KindFile)
		assert.Equal(t, "related_to", desc.Type)
		assert.Equal(t, "related", desc.Label)
		assert.Equal(t, "general analytical relationship", desc.LogicRule)
	})
}
