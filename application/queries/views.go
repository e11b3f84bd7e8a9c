package queries

import (
	"time"

	"naphtalai-backend/domain/core/aggregates"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
)

// NodeView is the read model for a single node
type NodeView struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Label        string   `json:"label"`
	Content      string   `json:"content,omitempty"`
	EntityType   string   `json:"entityType,omitempty"`
	Source       string   `json:"source,omitempty"`
	FileRef      string   `json:"fileRef,omitempty"`
	ThumbnailRef string   `json:"thumbnailRef,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Pinned       bool     `json:"pinned,omitempty"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Selected     bool     `json:"selected"`
}

// EdgeView is the read model for a single edge
type EdgeView struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	SourceHandle string  `json:"sourceHandle"`
	TargetHandle string  `json:"targetHandle"`
	Label        string  `json:"label"`
	Style        string  `json:"style"`
	SemanticType string  `json:"semanticType"`
	LogicRule    string  `json:"logicRule,omitempty"`
	Confidence   float64 `json:"confidence"`
	Selected     bool    `json:"selected"`
}

// StrokeView is the read model for a freehand pen stroke
type StrokeView struct {
	ID      string       `json:"id"`
	Points  []PointView  `json:"points"`
	Color   string       `json:"color"`
	Width   float64      `json:"width"`
	Opacity float64      `json:"opacity"`
}

// PointView is one sampled stroke point
type PointView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CanvasSettingsView is the read model for canvas grid settings
type CanvasSettingsView struct {
	SnapToGrid  bool    `json:"snapToGrid"`
	GridVisible bool    `json:"gridVisible"`
	GridSize    float64 `json:"gridSize"`
}

// HistoryView summarizes the undo history state of a canvas
type HistoryView struct {
	Length  int  `json:"length"`
	Index   int  `json:"index"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// CanvasView is the full read model for a canvas
type CanvasView struct {
	ID        string             `json:"id"`
	UserID    string             `json:"userId"`
	Name      string             `json:"name"`
	Nodes     []NodeView         `json:"nodes"`
	Edges     []EdgeView         `json:"edges"`
	Strokes   []StrokeView       `json:"strokes"`
	Settings  CanvasSettingsView `json:"settings"`
	History   HistoryView        `json:"history"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CanvasSummaryView is the compact listing read model
type CanvasSummaryView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	NodeCount int       `json:"nodeCount"`
	EdgeCount int       `json:"edgeCount"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanvasExport is the portable canvas document
// ExportedAt is serialized in ISO-8601 via time.Time's JSON encoding
type CanvasExport struct {
	Nodes      []NodeView `json:"nodes"`
	Edges      []EdgeView `json:"edges"`
	ExportedAt time.Time  `json:"exportedAt"`
}

// NewNodeView maps a node entity to its read model
func NewNodeView(node *entities.Node) NodeView {
	view := NodeView{
		ID:       node.ID().String(),
		Kind:     string(node.Kind()),
		Label:    node.Payload().DisplayLabel(),
		X:        node.Position().X(),
		Y:        node.Position().Y(),
		Width:    node.Size().Width(),
		Height:   node.Size().Height(),
		Selected: node.Selected(),
	}

	switch p := node.Payload().(type) {
	case valueobjects.FilePayload:
		view.Content = p.Content
		view.Source = p.Source
		view.FileRef = p.FileRef
		view.ThumbnailRef = p.ThumbnailRef
		view.Tags = p.Tags
		view.Pinned = p.Pinned
	case valueobjects.NotePayload:
		view.Content = p.Content
		view.Tags = p.Tags
	case valueobjects.EntityPayload:
		view.Content = p.Content
		view.EntityType = p.EntityType
		view.Source = p.Source
		view.Tags = p.Tags
	}

	return view
}

// NewEdgeView maps an edge entity to its read model
func NewEdgeView(edge *entities.Edge) EdgeView {
	return EdgeView{
		ID:           edge.ID().String(),
		Source:       edge.Source().String(),
		Target:       edge.Target().String(),
		SourceHandle: string(edge.SourceHandle()),
		TargetHandle: string(edge.TargetHandle()),
		Label:        edge.Label(),
		Style:        string(edge.Style()),
		SemanticType: edge.SemanticType(),
		LogicRule:    edge.LogicRule(),
		Confidence:   edge.Confidence(),
		Selected:     edge.Selected(),
	}
}

// NewStrokeView maps a stroke entity to its read model
func NewStrokeView(stroke *entities.Stroke) StrokeView {
	points := make([]PointView, 0, stroke.PointCount())
	for _, p := range stroke.Points() {
		points = append(points, PointView{X: p.X(), Y: p.Y()})
	}
	return StrokeView{
		ID:      stroke.ID().String(),
		Points:  points,
		Color:   stroke.Color(),
		Width:   stroke.Width(),
		Opacity: stroke.Opacity(),
	}
}

// NewCanvasView maps a canvas aggregate to its full read model
func NewCanvasView(canvas *aggregates.Canvas) CanvasView {
	nodes := make([]NodeView, 0, len(canvas.Nodes()))
	for _, node := range canvas.Nodes() {
		nodes = append(nodes, NewNodeView(node))
	}
	edges := make([]EdgeView, 0, len(canvas.Edges()))
	for _, edge := range canvas.Edges() {
		edges = append(edges, NewEdgeView(edge))
	}
	strokes := make([]StrokeView, 0, len(canvas.Strokes()))
	for _, stroke := range canvas.Strokes() {
		strokes = append(strokes, NewStrokeView(stroke))
	}

	return CanvasView{
		ID:      canvas.ID().String(),
		UserID:  canvas.UserID(),
		Name:    canvas.Name(),
		Nodes:   nodes,
		Edges:   edges,
		Strokes: strokes,
		Settings: CanvasSettingsView{
			SnapToGrid:  canvas.SnapToGrid(),
			GridVisible: canvas.GridVisible(),
			GridSize:    canvas.GridSize(),
		},
		History: HistoryView{
			Length:  canvas.HistoryLength(),
			Index:   canvas.HistoryIndex(),
			CanUndo: canvas.CanUndo(),
			CanRedo: canvas.CanRedo(),
		},
		CreatedAt: canvas.CreatedAt(),
		UpdatedAt: canvas.UpdatedAt(),
	}
}

// NewCanvasExport maps a canvas aggregate to its portable document
func NewCanvasExport(canvas *aggregates.Canvas, now time.Time) CanvasExport {
	view := NewCanvasView(canvas)
	return CanvasExport{
		Nodes:      view.Nodes,
		Edges:      view.Edges,
		ExportedAt: now.UTC(),
	}
}
