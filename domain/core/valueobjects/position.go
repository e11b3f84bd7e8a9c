package valueobjects

import (
	"math"

	pkgerrors "naphtalai-backend/pkg/errors"
)

// Position is a value object representing node coordinates on the canvas
type Position struct {
	x float64
	y float64
}

// NewPosition creates a position with validation
func NewPosition(x, y float64) (Position, error) {
	if !isValidCoordinate(x) || !isValidCoordinate(y) {
		return Position{}, pkgerrors.NewValidationError("invalid coordinates: must be finite numbers")
	}
	return Position{x: x, y: y}, nil
}

// X returns the X coordinate
func (p Position) X() float64 {
	return p.x
}

// Y returns the Y coordinate
func (p Position) Y() float64 {
	return p.y
}

// Snap rounds each axis to the nearest multiple of gridSize
// Snapping is idempotent; a non-positive grid size leaves the position unchanged
func (p Position) Snap(gridSize float64) Position {
	if gridSize <= 0 {
		return p
	}
	return Position{
		x: math.Round(p.x/gridSize) * gridSize,
		y: math.Round(p.y/gridSize) * gridSize,
	}
}

// DistanceTo calculates the Euclidean distance to another position
func (p Position) DistanceTo(other Position) float64 {
	dx := p.x - other.x
	dy := p.y - other.y
	return math.Sqrt(dx*dx + dy*dy)
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	const epsilon = 1e-9
	return math.Abs(p.x-other.x) < epsilon &&
		math.Abs(p.y-other.y) < epsilon
}

// Translate moves the position by the given offsets
func (p Position) Translate(dx, dy float64) (Position, error) {
	return NewPosition(p.x+dx, p.y+dy)
}

// WithX returns a copy with a replaced X coordinate
func (p Position) WithX(x float64) Position {
	return Position{x: x, y: p.y}
}

// WithY returns a copy with a replaced Y coordinate
func (p Position) WithY(y float64) Position {
	return Position{x: p.x, y: y}
}

// isValidCoordinate checks if a coordinate is a valid finite number
func isValidCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
