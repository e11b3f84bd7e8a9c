package aggregates

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
	"naphtalai-backend/domain/events"
)

// CanvasID represents a unique canvas identifier
type CanvasID string

// NewCanvasID creates a new random CanvasID
func NewCanvasID() CanvasID {
	return CanvasID(uuid.New().String())
}

// String returns the string representation
func (id CanvasID) String() string {
	return string(id)
}

// AlignDirection names an alignment target for selected nodes
type AlignDirection string

const (
	AlignLeft   AlignDirection = "left"
	AlignCenter AlignDirection = "center"
	AlignRight  AlignDirection = "right"
	AlignTop    AlignDirection = "top"
	AlignMiddle AlignDirection = "middle"
	AlignBottom AlignDirection = "bottom"
)

// IsValid reports whether the direction is recognized
func (d AlignDirection) IsValid() bool {
	switch d {
	case AlignLeft, AlignCenter, AlignRight, AlignTop, AlignMiddle, AlignBottom:
		return true
	default:
		return false
	}
}

// Orientation names the axis for distribution
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// IsValid reports whether the orientation is recognized
func (o Orientation) IsValid() bool {
	return o == Horizontal || o == Vertical
}

// Canvas is the aggregate root for the research canvas graph
// It is the sole mutator of nodes, edges, selection, and history
//
// All mutations are synchronous and atomic with respect to their caller;
// the aggregate carries no lock of its own and relies on the repository
// layer to serialize access per canvas
type Canvas struct {
	id      CanvasID
	userID  string
	name    string
	nodes   []*entities.Node
	edges   []*entities.Edge
	strokes []*entities.Stroke

	selectedNodes map[valueobjects.NodeID]struct{}
	selectedEdges map[valueobjects.EdgeID]struct{}

	history      []historyEntry
	historyIndex int

	snapToGrid  bool
	gridVisible bool
	gridSize    float64

	cfg       *config.DomainConfig
	createdAt time.Time
	updatedAt time.Time
	events    []events.DomainEvent
}

// NewCanvas creates a new canvas aggregate with an initial history entry
func NewCanvas(userID, name string, cfg *config.DomainConfig) (*Canvas, error) {
	if userID == "" {
		return nil, errors.New("userID required")
	}
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if name == "" {
		name = cfg.DefaultCanvasName
	}

	now := time.Now()
	canvas := &Canvas{
		id:            NewCanvasID(),
		userID:        userID,
		name:          name,
		selectedNodes: make(map[valueobjects.NodeID]struct{}),
		selectedEdges: make(map[valueobjects.EdgeID]struct{}),
		snapToGrid:    false,
		gridVisible:   true,
		gridSize:      cfg.DefaultGridSize,
		cfg:           cfg,
		createdAt:     now,
		updatedAt:     now,
	}

	canvas.PushHistory("init")
	return canvas, nil
}

// ID returns the canvas's unique identifier
func (c *Canvas) ID() CanvasID {
	return c.id
}

// UserID returns the owner's ID
func (c *Canvas) UserID() string {
	return c.userID
}

// Name returns the canvas name
func (c *Canvas) Name() string {
	return c.name
}

// CreatedAt returns when the canvas was created
func (c *Canvas) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns when the canvas was last updated
func (c *Canvas) UpdatedAt() time.Time {
	return c.updatedAt
}

// Nodes returns the live node list
// The slice is a copy; the nodes themselves are the live entities
func (c *Canvas) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, len(c.nodes))
	copy(nodes, c.nodes)
	return nodes
}

// Edges returns the live edge list
func (c *Canvas) Edges() []*entities.Edge {
	edges := make([]*entities.Edge, len(c.edges))
	copy(edges, c.edges)
	return edges
}

// Strokes returns the live stroke list
func (c *Canvas) Strokes() []*entities.Stroke {
	strokes := make([]*entities.Stroke, len(c.strokes))
	copy(strokes, c.strokes)
	return strokes
}

// FindNode retrieves a node by ID
func (c *Canvas) FindNode(id valueobjects.NodeID) (*entities.Node, bool) {
	for _, node := range c.nodes {
		if node.ID().Equals(id) {
			return node, true
		}
	}
	return nil, false
}

// FindEdge retrieves an edge by ID
func (c *Canvas) FindEdge(id valueobjects.EdgeID) (*entities.Edge, bool) {
	for _, edge := range c.edges {
		if edge.ID().Equals(id) {
			return edge, true
		}
	}
	return nil, false
}

// Node operations

// AddNode appends a node and pushes an add_node history entry
func (c *Canvas) AddNode(node *entities.Node) error {
	if err := c.appendNode(node); err != nil {
		return err
	}

	c.addEvent(events.NewNodeAdded(c.id.String(), node.ID().String(), string(node.Kind())))
	c.PushHistory("add_node")
	return nil
}

// AddNodes appends several nodes atomically under one history entry
func (c *Canvas) AddNodes(nodes []*entities.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	for _, node := range nodes {
		if err := c.appendNode(node); err != nil {
			return err
		}
		c.addEvent(events.NewNodeAdded(c.id.String(), node.ID().String(), string(node.Kind())))
	}
	c.PushHistory("add_nodes")
	return nil
}

func (c *Canvas) appendNode(node *entities.Node) error {
	if node == nil {
		return errors.New("node cannot be nil")
	}
	if _, exists := c.FindNode(node.ID()); exists {
		return errors.New("node already exists on canvas")
	}
	if len(c.nodes) >= c.cfg.MaxNodesPerCanvas {
		return errors.New("maximum nodes reached")
	}

	c.nodes = append(c.nodes, node)
	c.updatedAt = time.Now()
	return nil
}

// UpdateNodePayload shallow-merges a partial payload update
// Fine-grained edits are intentionally excluded from undo granularity,
// so no history entry is pushed. Unknown IDs are tolerated as no-ops
func (c *Canvas) UpdateNodePayload(id valueobjects.NodeID, patch valueobjects.PayloadPatch) {
	node, ok := c.FindNode(id)
	if !ok {
		return
	}
	node.ApplyPatch(patch)
	c.updatedAt = time.Now()
}

// MoveNode replaces a node's position, snapping to the grid when enabled
// Continuous drags would flood history, so no entry is pushed per move;
// callers wanting drag-end granularity push explicitly
func (c *Canvas) MoveNode(id valueobjects.NodeID, position valueobjects.Position) {
	node, ok := c.FindNode(id)
	if !ok {
		return
	}
	if c.snapToGrid {
		position = position.Snap(c.gridSize)
	}
	node.MoveTo(position)
	c.updatedAt = time.Now()
}

// ResizeNode replaces a node's dimensions; no history entry
func (c *Canvas) ResizeNode(id valueobjects.NodeID, size valueobjects.Size) {
	node, ok := c.FindNode(id)
	if !ok {
		return
	}
	node.Resize(size)
	c.updatedAt = time.Now()
}

// DeleteNode removes a node, cascades to its incident edges, drops it
// from the selection, and pushes a delete_node history entry
// Unknown IDs are tolerated as no-ops
func (c *Canvas) DeleteNode(id valueobjects.NodeID) {
	if _, ok := c.FindNode(id); !ok {
		return
	}

	cascaded := c.removeNodeCascading(id)
	c.addEvent(events.NewNodeRemoved(c.id.String(), id.String(), cascaded))
	c.PushHistory("delete_node")
}

// removeNodeCascading removes the node, its incident edges, and its
// selection entries; returns the number of edges removed
func (c *Canvas) removeNodeCascading(id valueobjects.NodeID) int {
	kept := c.nodes[:0]
	for _, node := range c.nodes {
		if !node.ID().Equals(id) {
			kept = append(kept, node)
		}
	}
	c.nodes = kept

	cascaded := 0
	keptEdges := c.edges[:0]
	for _, edge := range c.edges {
		if edge.Touches(id) {
			cascaded++
			delete(c.selectedEdges, edge.ID())
			continue
		}
		keptEdges = append(keptEdges, edge)
	}
	c.edges = keptEdges

	delete(c.selectedNodes, id)
	c.updatedAt = time.Now()
	return cascaded
}

// Edge operations

// AddEdge appends a validated edge and pushes an add_edge history entry
// Callers are expected to have run the connection policy already; the
// store trusts its caller and does not re-validate semantics
func (c *Canvas) AddEdge(edge *entities.Edge) error {
	if edge == nil {
		return errors.New("edge cannot be nil")
	}
	if _, exists := c.FindEdge(edge.ID()); exists {
		return errors.New("edge already exists on canvas")
	}
	if len(c.edges) >= c.cfg.MaxEdgesPerCanvas {
		return errors.New("maximum edges reached")
	}

	c.edges = append(c.edges, edge)
	c.updatedAt = time.Now()

	c.addEvent(events.NewEdgeAdded(
		c.id.String(),
		edge.ID().String(),
		edge.Source().String(),
		edge.Target().String(),
		edge.SemanticType(),
	))
	c.PushHistory("add_edge")
	return nil
}

// UpdateEdgePayload shallow-merges a partial edge update; no history
func (c *Canvas) UpdateEdgePayload(id valueobjects.EdgeID, patch entities.EdgePatch) {
	edge, ok := c.FindEdge(id)
	if !ok {
		return
	}
	edge.ApplyPatch(patch)
	c.updatedAt = time.Now()
}

// DeleteEdge removes an edge and pushes a delete_edge history entry
func (c *Canvas) DeleteEdge(id valueobjects.EdgeID) {
	if _, ok := c.FindEdge(id); !ok {
		return
	}

	kept := c.edges[:0]
	for _, edge := range c.edges {
		if !edge.ID().Equals(id) {
			kept = append(kept, edge)
		}
	}
	c.edges = kept
	delete(c.selectedEdges, id)
	c.updatedAt = time.Now()

	c.addEvent(events.NewEdgeRemoved(c.id.String(), id.String()))
	c.PushHistory("delete_edge")
}

// Selection operations
// Selection is ephemeral: it never touches history and is replaced on
// every selection-changing interaction

// SelectNodes replaces the node selection
func (c *Canvas) SelectNodes(ids []valueobjects.NodeID) {
	for _, node := range c.nodes {
		node.SetSelected(false)
	}
	c.selectedNodes = make(map[valueobjects.NodeID]struct{}, len(ids))
	for _, id := range ids {
		if node, ok := c.FindNode(id); ok {
			c.selectedNodes[id] = struct{}{}
			node.SetSelected(true)
		}
	}
}

// SelectEdges replaces the edge selection
func (c *Canvas) SelectEdges(ids []valueobjects.EdgeID) {
	for _, edge := range c.edges {
		edge.SetSelected(false)
	}
	c.selectedEdges = make(map[valueobjects.EdgeID]struct{}, len(ids))
	for _, id := range ids {
		if edge, ok := c.FindEdge(id); ok {
			c.selectedEdges[id] = struct{}{}
			edge.SetSelected(true)
		}
	}
}

// ClearSelection empties both selection sets
func (c *Canvas) ClearSelection() {
	c.SelectNodes(nil)
	c.SelectEdges(nil)
}

// SelectAll selects every node and edge
func (c *Canvas) SelectAll() {
	nodeIDs := make([]valueobjects.NodeID, 0, len(c.nodes))
	for _, node := range c.nodes {
		nodeIDs = append(nodeIDs, node.ID())
	}
	edgeIDs := make([]valueobjects.EdgeID, 0, len(c.edges))
	for _, edge := range c.edges {
		edgeIDs = append(edgeIDs, edge.ID())
	}
	c.SelectNodes(nodeIDs)
	c.SelectEdges(edgeIDs)
}

// SelectedNodeIDs returns the selected node IDs filtered against the
// live node set; stale hints left behind by undo/redo are dropped
func (c *Canvas) SelectedNodeIDs() []valueobjects.NodeID {
	ids := make([]valueobjects.NodeID, 0, len(c.selectedNodes))
	for _, node := range c.nodes {
		if _, ok := c.selectedNodes[node.ID()]; ok {
			ids = append(ids, node.ID())
		}
	}
	return ids
}

// SelectedEdgeIDs returns the selected edge IDs filtered against the
// live edge set
func (c *Canvas) SelectedEdgeIDs() []valueobjects.EdgeID {
	ids := make([]valueobjects.EdgeID, 0, len(c.selectedEdges))
	for _, edge := range c.edges {
		if _, ok := c.selectedEdges[edge.ID()]; ok {
			ids = append(ids, edge.ID())
		}
	}
	return ids
}

// Bulk operations

// DuplicateSelected deep-copies every selected node with a fresh ID and
// a fixed offset, replaces the selection with the copies, and pushes a
// duplicate history entry. Edges are not duplicated: copying a node does
// not copy its relationships
func (c *Canvas) DuplicateSelected() {
	selected := c.selectedNodesInOrder()
	if len(selected) == 0 {
		return
	}

	copies := make([]*entities.Node, 0, len(selected))
	newIDs := make([]valueobjects.NodeID, 0, len(selected))
	for _, node := range selected {
		dup := node.Duplicate(c.cfg.DuplicateOffsetX, c.cfg.DuplicateOffsetY)
		copies = append(copies, dup)
		newIDs = append(newIDs, dup.ID())
	}

	for _, dup := range copies {
		if err := c.appendNode(dup); err != nil {
			continue
		}
		c.addEvent(events.NewNodeAdded(c.id.String(), dup.ID().String(), string(dup.Kind())))
	}

	c.SelectNodes(newIDs)
	c.SelectEdges(nil)
	c.PushHistory("duplicate")
}

// DeleteSelected removes every selected node and edge plus any edge
// incident to a deleted node, clears both selections, and pushes a
// delete_selected history entry
func (c *Canvas) DeleteSelected() {
	nodeIDs := c.SelectedNodeIDs()
	edgeIDs := c.SelectedEdgeIDs()
	if len(nodeIDs) == 0 && len(edgeIDs) == 0 {
		return
	}

	for _, id := range edgeIDs {
		kept := c.edges[:0]
		for _, edge := range c.edges {
			if !edge.ID().Equals(id) {
				kept = append(kept, edge)
			}
		}
		c.edges = kept
	}

	for _, id := range nodeIDs {
		c.removeNodeCascading(id)
	}

	c.selectedNodes = make(map[valueobjects.NodeID]struct{})
	c.selectedEdges = make(map[valueobjects.EdgeID]struct{})
	c.updatedAt = time.Now()
	c.PushHistory("delete_selected")
}

// AlignSelected snaps every selected node's relevant axis to the
// bounding-box target for the direction; a no-op below 2 selected nodes
func (c *Canvas) AlignSelected(direction AlignDirection) {
	selected := c.selectedNodesInOrder()
	if len(selected) < 2 || !direction.IsValid() {
		return
	}

	positions := make([]valueobjects.Position, len(selected))
	for i, node := range selected {
		positions[i] = node.Position()
	}
	bounds, _ := valueobjects.ComputeBounds(positions)

	for _, node := range selected {
		p := node.Position()
		switch direction {
		case AlignLeft:
			p = p.WithX(bounds.MinX)
		case AlignCenter:
			p = p.WithX(bounds.CenterX())
		case AlignRight:
			p = p.WithX(bounds.MaxX)
		case AlignTop:
			p = p.WithY(bounds.MinY)
		case AlignMiddle:
			p = p.WithY(bounds.CenterY())
		case AlignBottom:
			p = p.WithY(bounds.MaxY)
		}
		node.MoveTo(p)
	}

	c.updatedAt = time.Now()
	c.PushHistory("align")
}

// DistributeSelected evenly spaces selected nodes along one axis; the
// extremes keep their coordinates. A no-op below 3 selected nodes
func (c *Canvas) DistributeSelected(orientation Orientation) {
	selected := c.selectedNodesInOrder()
	if len(selected) < 3 || !orientation.IsValid() {
		return
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if orientation == Horizontal {
			return selected[i].Position().X() < selected[j].Position().X()
		}
		return selected[i].Position().Y() < selected[j].Position().Y()
	})

	coords := make([]float64, len(selected))
	for i, node := range selected {
		if orientation == Horizontal {
			coords[i] = node.Position().X()
		} else {
			coords[i] = node.Position().Y()
		}
	}

	spaced := valueobjects.DistributeAxis(coords)
	for i, node := range selected {
		p := node.Position()
		if orientation == Horizontal {
			p = p.WithX(spaced[i])
		} else {
			p = p.WithY(spaced[i])
		}
		node.MoveTo(p)
	}

	c.updatedAt = time.Now()
	c.PushHistory("distribute")
}

// selectedNodesInOrder returns the selected live nodes in node-list order
func (c *Canvas) selectedNodesInOrder() []*entities.Node {
	selected := make([]*entities.Node, 0, len(c.selectedNodes))
	for _, node := range c.nodes {
		if _, ok := c.selectedNodes[node.ID()]; ok {
			selected = append(selected, node)
		}
	}
	return selected
}

// Stroke operations
// Strokes sit outside the node/edge graph and outside undo history

// CommitStroke appends a finished stroke; strokes with fewer than the
// minimum number of points are discarded
func (c *Canvas) CommitStroke(stroke *entities.Stroke) bool {
	if stroke == nil || stroke.PointCount() < c.cfg.MinStrokePoints {
		return false
	}
	c.strokes = append(c.strokes, stroke)
	c.updatedAt = time.Now()
	c.addEvent(events.NewStrokeCommitted(c.id.String(), stroke.ID().String(), stroke.PointCount()))
	return true
}

// EraseStrokesNear removes every stroke with at least one point within
// the configured radius of the probe point; returns the removed count
func (c *Canvas) EraseStrokesNear(probe valueobjects.Position) int {
	removed := 0
	kept := c.strokes[:0]
	for _, stroke := range c.strokes {
		if stroke.HitsWithin(probe, c.cfg.EraseRadius) {
			removed++
			continue
		}
		kept = append(kept, stroke)
	}
	c.strokes = kept

	if removed > 0 {
		c.updatedAt = time.Now()
		c.addEvent(events.NewStrokesErased(c.id.String(), removed))
	}
	return removed
}

// Settings

// SnapToGrid reports whether grid snapping is enabled
func (c *Canvas) SnapToGrid() bool {
	return c.snapToGrid
}

// SetSnapToGrid toggles grid snapping
func (c *Canvas) SetSnapToGrid(enabled bool) {
	c.snapToGrid = enabled
}

// GridVisible reports whether the grid overlay is shown
func (c *Canvas) GridVisible() bool {
	return c.gridVisible
}

// SetGridVisible toggles the grid overlay
func (c *Canvas) SetGridVisible(visible bool) {
	c.gridVisible = visible
}

// GridSize returns the grid cell size
func (c *Canvas) GridSize() float64 {
	return c.gridSize
}

// SetGridSize replaces the grid cell size; non-positive values are ignored
func (c *Canvas) SetGridSize(size float64) {
	if size > 0 {
		c.gridSize = size
	}
}

// Import

// ReplaceContent swaps the canvas's nodes and edges for an imported
// snapshot after checking referential integrity, clears selection, and
// pushes an import history entry
func (c *Canvas) ReplaceContent(nodes []*entities.Node, edges []*entities.Edge) error {
	seen := make(map[valueobjects.NodeID]struct{}, len(nodes))
	for _, node := range nodes {
		if node == nil {
			return errors.New("imported node cannot be nil")
		}
		if _, dup := seen[node.ID()]; dup {
			return errors.New("imported snapshot contains duplicate node IDs")
		}
		seen[node.ID()] = struct{}{}
	}
	for _, edge := range edges {
		if edge == nil {
			return errors.New("imported edge cannot be nil")
		}
		if _, ok := seen[edge.Source()]; !ok {
			return errors.New("imported edge references a missing source node")
		}
		if _, ok := seen[edge.Target()]; !ok {
			return errors.New("imported edge references a missing target node")
		}
	}

	c.nodes = nodes
	c.edges = edges
	c.selectedNodes = make(map[valueobjects.NodeID]struct{})
	c.selectedEdges = make(map[valueobjects.EdgeID]struct{})
	c.updatedAt = time.Now()

	c.addEvent(events.NewCanvasImported(c.id.String(), len(nodes), len(edges)))
	c.PushHistory("import")
	return nil
}

// Validate ensures graph invariants hold
func (c *Canvas) Validate() error {
	seen := make(map[valueobjects.NodeID]struct{}, len(c.nodes))
	for _, node := range c.nodes {
		if _, dup := seen[node.ID()]; dup {
			return errors.New("duplicate node ID")
		}
		seen[node.ID()] = struct{}{}
	}

	for _, edge := range c.edges {
		if _, ok := seen[edge.Source()]; !ok {
			return errors.New("edge references non-existent source node")
		}
		if _, ok := seen[edge.Target()]; !ok {
			return errors.New("edge references non-existent target node")
		}
	}

	return nil
}

// Domain events

// GetUncommittedEvents returns all uncommitted domain events
func (c *Canvas) GetUncommittedEvents() []events.DomainEvent {
	out := make([]events.DomainEvent, len(c.events))
	copy(out, c.events)
	return out
}

// MarkEventsAsCommitted clears all uncommitted events
func (c *Canvas) MarkEventsAsCommitted() {
	c.events = nil
}

func (c *Canvas) addEvent(event events.DomainEvent) {
	c.events = append(c.events, event)
}
