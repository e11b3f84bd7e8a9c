package entities

import (
	"naphtalai-backend/domain/core/valueobjects"
	pkgerrors "naphtalai-backend/pkg/errors"
)

// Stroke is an ordered list of canvas points from one freehand pen gesture
// Strokes live beside the node/edge graph and are not covered by undo
type Stroke struct {
	id      valueobjects.StrokeID
	points  []valueobjects.Position
	color   string
	width   float64
	opacity float64
}

// NewStroke starts a stroke from its first point
// Unstyled gestures carry zero width and opacity, so those fall back to
// the pen defaults the same way color does
func NewStroke(start valueobjects.Position, color string, width, opacity float64) (*Stroke, error) {
	if opacity < 0 || opacity > 1 {
		return nil, pkgerrors.NewValidationError("stroke opacity must be in [0,1]")
	}
	if width <= 0 {
		width = 2
	}
	if opacity == 0 {
		opacity = 1
	}
	if color == "" {
		color = "#c9a227"
	}

	return &Stroke{
		id:      valueobjects.NewStrokeID(),
		points:  []valueobjects.Position{start},
		color:   color,
		width:   width,
		opacity: opacity,
	}, nil
}

// ID returns the stroke's unique identifier
func (s *Stroke) ID() valueobjects.StrokeID {
	return s.id
}

// Points returns a copy of the stroke's points
func (s *Stroke) Points() []valueobjects.Position {
	points := make([]valueobjects.Position, len(s.points))
	copy(points, s.points)
	return points
}

// Color returns the stroke color
func (s *Stroke) Color() string {
	return s.color
}

// Width returns the stroke width
func (s *Stroke) Width() float64 {
	return s.width
}

// Opacity returns the stroke opacity
func (s *Stroke) Opacity() float64 {
	return s.opacity
}

// Append adds a point to the stroke
func (s *Stroke) Append(point valueobjects.Position) {
	s.points = append(s.points, point)
}

// PointCount returns the number of captured points
func (s *Stroke) PointCount() int {
	return len(s.points)
}

// HitsWithin reports whether any point of the stroke lies within the
// given radius of the probe point
func (s *Stroke) HitsWithin(probe valueobjects.Position, radius float64) bool {
	for _, p := range s.points {
		if p.DistanceTo(probe) <= radius {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the stroke
func (s *Stroke) Clone() *Stroke {
	return &Stroke{
		id:      s.id,
		points:  s.Points(),
		color:   s.color,
		width:   s.width,
		opacity: s.opacity,
	}
}
