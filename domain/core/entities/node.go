package entities

import (
	"time"

	"naphtalai-backend/domain/core/valueobjects"
	pkgerrors "naphtalai-backend/pkg/errors"
)

// Node is a positioned, typed visual entity on the canvas
// This is a rich domain model with encapsulated business logic
type Node struct {
	id        valueobjects.NodeID
	payload   valueobjects.NodePayload
	position  valueobjects.Position
	size      valueobjects.Size // zero when the node has no explicit size
	selected  bool
	createdAt time.Time
	updatedAt time.Time
}

// NewNode creates a new node with validation
func NewNode(payload valueobjects.NodePayload, position valueobjects.Position) (*Node, error) {
	if payload == nil {
		return nil, pkgerrors.NewValidationError("payload cannot be nil")
	}
	if !payload.Kind().IsValid() {
		return nil, pkgerrors.NewValidationError("unrecognized node kind")
	}

	now := time.Now()
	return &Node{
		id:        valueobjects.NewNodeID(),
		payload:   payload.ClonePayload(),
		position:  position,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructNode recreates a node from exported data with a preserved ID
func ReconstructNode(
	id valueobjects.NodeID,
	payload valueobjects.NodePayload,
	position valueobjects.Position,
	size valueobjects.Size,
) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("node ID cannot be empty")
	}
	if payload == nil {
		return nil, pkgerrors.NewValidationError("payload cannot be nil")
	}
	if !payload.Kind().IsValid() {
		return nil, pkgerrors.NewValidationError("unrecognized node kind")
	}

	now := time.Now()
	return &Node{
		id:        id,
		payload:   payload.ClonePayload(),
		position:  position,
		size:      size,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ID returns the node's unique identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Kind returns the node's kind
func (n *Node) Kind() valueobjects.NodeKind {
	return n.payload.Kind()
}

// Payload returns the node's kind-specific data
func (n *Node) Payload() valueobjects.NodePayload {
	return n.payload.ClonePayload()
}

// Position returns the node's position
func (n *Node) Position() valueobjects.Position {
	return n.position
}

// Size returns the node's explicit size; zero when unset
func (n *Node) Size() valueobjects.Size {
	return n.size
}

// Selected returns the node's visual selection flag
func (n *Node) Selected() bool {
	return n.selected
}

// Center returns the visual center point of the node
// Nodes without an explicit size are treated as points
func (n *Node) Center() valueobjects.Position {
	if n.size.IsZero() {
		return n.position
	}
	center, _ := valueobjects.NewPosition(
		n.position.X()+n.size.Width()/2,
		n.position.Y()+n.size.Height()/2,
	)
	return center
}

// MoveTo moves the node to a new position
func (n *Node) MoveTo(position valueobjects.Position) {
	if position.Equals(n.position) {
		return
	}
	n.position = position
	n.updatedAt = time.Now()
}

// Resize replaces the node's dimensions
func (n *Node) Resize(size valueobjects.Size) {
	if size.Equals(n.size) {
		return
	}
	n.size = size
	n.updatedAt = time.Now()
}

// ApplyPatch shallow-merges a partial payload update into the node
func (n *Node) ApplyPatch(patch valueobjects.PayloadPatch) {
	n.payload = patch.Apply(n.payload)
	n.updatedAt = time.Now()
}

// SetSelected sets the visual selection flag
func (n *Node) SetSelected(selected bool) {
	n.selected = selected
}

// CreatedAt returns when the node was created
func (n *Node) CreatedAt() time.Time {
	return n.createdAt
}

// UpdatedAt returns when the node was last updated
func (n *Node) UpdatedAt() time.Time {
	return n.updatedAt
}

// Clone returns a deep copy of the node, preserving its identity
// Used for history snapshots so stored state never aliases live state
// The selection flag is ephemeral and never enters a snapshot
func (n *Node) Clone() *Node {
	return &Node{
		id:        n.id,
		payload:   n.payload.ClonePayload(),
		position:  n.position,
		size:      n.size,
		createdAt: n.createdAt,
		updatedAt: n.updatedAt,
	}
}

// Duplicate returns a copy with a fresh identity, offset by the given
// deltas, with the selection flag cleared. Relationships are not copied
func (n *Node) Duplicate(dx, dy float64) *Node {
	position, err := n.position.Translate(dx, dy)
	if err != nil {
		position = n.position
	}

	now := time.Now()
	return &Node{
		id:        valueobjects.NewNodeID(),
		payload:   n.payload.ClonePayload(),
		position:  position,
		size:      n.size,
		selected:  false,
		createdAt: now,
		updatedAt: now,
	}
}
