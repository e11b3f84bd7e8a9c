package valueobjects

// Bounds describes the per-axis extent of a set of positions
type Bounds struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// CenterX returns the horizontal center of the bounds
func (b Bounds) CenterX() float64 {
	return (b.MinX + b.MaxX) / 2
}

// CenterY returns the vertical center of the bounds
func (b Bounds) CenterY() float64 {
	return (b.MinY + b.MaxY) / 2
}

// ComputeBounds returns the bounding box of the given positions
// The second return value is false when the input is empty
func ComputeBounds(positions []Position) (Bounds, bool) {
	if len(positions) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		MinX: positions[0].X(),
		MaxX: positions[0].X(),
		MinY: positions[0].Y(),
		MaxY: positions[0].Y(),
	}

	for _, p := range positions[1:] {
		if p.X() < b.MinX {
			b.MinX = p.X()
		}
		if p.X() > b.MaxX {
			b.MaxX = p.X()
		}
		if p.Y() < b.MinY {
			b.MinY = p.Y()
		}
		if p.Y() > b.MaxY {
			b.MaxY = p.Y()
		}
	}

	return b, true
}

// DistributeAxis evenly spaces coordinates sorted along one axis
// The first and last coordinates keep their values; intermediates are
// interpolated by rank. Inputs with fewer than 3 coordinates are returned
// unchanged; callers are expected to guard before mutating anything
func DistributeAxis(sorted []float64) []float64 {
	out := make([]float64, len(sorted))
	copy(out, sorted)

	if len(sorted) < 3 {
		return out
	}

	first := sorted[0]
	last := sorted[len(sorted)-1]
	step := (last - first) / float64(len(sorted)-1)

	for i := 1; i < len(sorted)-1; i++ {
		out[i] = first + step*float64(i)
	}

	return out
}
