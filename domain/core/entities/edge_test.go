package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naphtalai-backend/domain/core/valueobjects"
)

func TestNewEdge(t *testing.T) {
	source := valueobjects.NewNodeID()
	target := valueobjects.NewNodeID()

	t.Run("defaults style to red-string", func(t *testing.T) {
		edge, err := NewEdge(EdgeSpec{Source: source, Target: target, Confidence: 0.8})
		require.NoError(t, err)
		assert.Equal(t, StyleRedString, edge.Style())
	})

	t.Run("rejects self loop", func(t *testing.T) {
		_, err := NewEdge(EdgeSpec{Source: source, Target: source})
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range confidence", func(t *testing.T) {
		_, err := NewEdge(EdgeSpec{Source: source, Target: target, Confidence: 1.5})
		assert.Error(t, err)
	})
}

func TestEdgeConnectsPair(t *testing.T) {
	a := valueobjects.NewNodeID()
	b := valueobjects.NewNodeID()
	c := valueobjects.NewNodeID()

	edge, err := NewEdge(EdgeSpec{Source: a, Target: b, Confidence: 1})
	require.NoError(t, err)

	assert.True(t, edge.ConnectsPair(a, b))
	assert.True(t, edge.ConnectsPair(b, a))
	assert.False(t, edge.ConnectsPair(a, c))
}

func TestEdgeApplyPatch(t *testing.T) {
	edge, err := NewEdge(EdgeSpec{
		Source:     valueobjects.NewNodeID(),
		Target:     valueobjects.NewNodeID(),
		Label:      "mentions",
		Confidence: 1,
	})
	require.NoError(t, err)

	label := "confirmed link"
	style := StyleGoldenThread
	confidence := 0.4
	edge.ApplyPatch(EdgePatch{Label: &label, Style: &style, Confidence: &confidence})

	assert.Equal(t, "confirmed link", edge.Label())
	assert.Equal(t, StyleGoldenThread, edge.Style())
	assert.Equal(t, 0.4, edge.Confidence())

	t.Run("out-of-range confidence is ignored", func(t *testing.T) {
		bad := 3.0
		edge.ApplyPatch(EdgePatch{Confidence: &bad})
		assert.Equal(t, 0.4, edge.Confidence())
	})
}

func TestResolveHandles(t *testing.T) {
	pos := func(x, y float64) valueobjects.Position {
		p, err := valueobjects.NewPosition(x, y)
		require.NoError(t, err)
		return p
	}

	tests := []struct {
		name         string
		source       valueobjects.Position
		target       valueobjects.Position
		wantSource   HandleSide
		wantTarget   HandleSide
	}{
		{"target to the right", pos(0, 0), pos(100, 10), HandleRight, HandleLeft},
		{"target to the left", pos(100, 10), pos(0, 0), HandleLeft, HandleRight},
		{"target below", pos(0, 0), pos(10, 100), HandleBottom, HandleTop},
		{"target above", pos(10, 100), pos(0, 0), HandleTop, HandleBottom},
		{"diagonal tie goes horizontal", pos(0, 0), pos(50, 50), HandleRight, HandleLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sourceHandle, targetHandle := ResolveHandles(tt.source, tt.target)
			assert.Equal(t, tt.wantSource, sourceHandle)
			assert.Equal(t, tt.wantTarget, targetHandle)
		})
	}
}

func TestNewStrokeDefaults(t *testing.T) {
	start, _ := valueobjects.NewPosition(0, 0)

	t.Run("unstyled stroke gets pen defaults", func(t *testing.T) {
		stroke, err := NewStroke(start, "", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, "#c9a227", stroke.Color())
		assert.Equal(t, 2.0, stroke.Width())
		assert.Equal(t, 1.0, stroke.Opacity())
	})

	t.Run("explicit styling is kept", func(t *testing.T) {
		stroke, err := NewStroke(start, "#1d4ed8", 4, 0.5)
		require.NoError(t, err)
		assert.Equal(t, "#1d4ed8", stroke.Color())
		assert.Equal(t, 4.0, stroke.Width())
		assert.Equal(t, 0.5, stroke.Opacity())
	})

	t.Run("out-of-range opacity is rejected", func(t *testing.T) {
		_, err := NewStroke(start, "", 2, 1.5)
		assert.Error(t, err)
		_, err = NewStroke(start, "", 2, -0.1)
		assert.Error(t, err)
	})
}

func TestStrokeHitsWithin(t *testing.T) {
	start, _ := valueobjects.NewPosition(0, 0)
	stroke, err := NewStroke(start, "#c9a227", 2, 1)
	require.NoError(t, err)

	far, _ := valueobjects.NewPosition(100, 100)
	stroke.Append(far)

	probe, _ := valueobjects.NewPosition(10, 0)
	assert.True(t, stroke.HitsWithin(probe, 20))
	assert.False(t, stroke.HitsWithin(probe, 5))
}
