package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	t.Run("accepts finite coordinates", func(t *testing.T) {
		p, err := NewPosition(12.5, -300)
		require.NoError(t, err)
		assert.Equal(t, 12.5, p.X())
		assert.Equal(t, -300.0, p.Y())
	})

	t.Run("rejects NaN", func(t *testing.T) {
		_, err := NewPosition(math.NaN(), 0)
		assert.Error(t, err)
	})

	t.Run("rejects infinity", func(t *testing.T) {
		_, err := NewPosition(0, math.Inf(1))
		assert.Error(t, err)
	})
}

func TestPositionSnap(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		grid     float64
		wantX    float64
		wantY    float64
	}{
		{"rounds down", 8, 9, 20, 0, 20},
		{"rounds up", 12, 31, 20, 20, 40},
		{"midpoint rounds away from zero", 10, 30, 20, 20, 40},
		{"already aligned", 40, 60, 20, 40, 60},
		{"negative coordinates", -12, -31, 20, -20, -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPosition(tt.x, tt.y)
			require.NoError(t, err)

			snapped := p.Snap(tt.grid)
			assert.Equal(t, tt.wantX, snapped.X())
			assert.Equal(t, tt.wantY, snapped.Y())
		})
	}

	t.Run("snapping is idempotent", func(t *testing.T) {
		p, _ := NewPosition(13.7, 46.2)
		once := p.Snap(20)
		twice := once.Snap(20)
		assert.True(t, once.Equals(twice))
	})

	t.Run("non-positive grid size leaves position unchanged", func(t *testing.T) {
		p, _ := NewPosition(13.7, 46.2)
		assert.True(t, p.Equals(p.Snap(0)))
		assert.True(t, p.Equals(p.Snap(-5)))
	})
}

func TestPositionDistanceTo(t *testing.T) {
	a, _ := NewPosition(0, 0)
	b, _ := NewPosition(3, 4)
	assert.Equal(t, 5.0, a.DistanceTo(b))
	assert.Equal(t, 5.0, b.DistanceTo(a))
}

func TestComputeBounds(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, ok := ComputeBounds(nil)
		assert.False(t, ok)
	})

	t.Run("covers all positions", func(t *testing.T) {
		p1, _ := NewPosition(10, 50)
		p2, _ := NewPosition(-20, 5)
		p3, _ := NewPosition(40, 30)

		bounds, ok := ComputeBounds([]Position{p1, p2, p3})
		require.True(t, ok)
		assert.Equal(t, -20.0, bounds.MinX)
		assert.Equal(t, 40.0, bounds.MaxX)
		assert.Equal(t, 5.0, bounds.MinY)
		assert.Equal(t, 50.0, bounds.MaxY)
		assert.Equal(t, 10.0, bounds.CenterX())
		assert.Equal(t, 27.5, bounds.CenterY())
	})
}

func TestDistributeAxis(t *testing.T) {
	t.Run("evenly spaces interior coordinates", func(t *testing.T) {
		out := DistributeAxis([]float64{0, 3, 10})
		assert.Equal(t, []float64{0, 5, 10}, out)
	})

	t.Run("extremes keep their coordinates", func(t *testing.T) {
		out := DistributeAxis([]float64{-10, 0, 2, 50})
		assert.Equal(t, -10.0, out[0])
		assert.Equal(t, 50.0, out[3])
		assert.Equal(t, 10.0, out[1])
		assert.Equal(t, 30.0, out[2])
	})

	t.Run("fewer than three returned unchanged", func(t *testing.T) {
		assert.Equal(t, []float64{1, 2}, DistributeAxis([]float64{1, 2}))
	})
}
