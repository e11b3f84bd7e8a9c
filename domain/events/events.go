package events

import (
	"time"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

func newBase(canvasID, eventType string) BaseEvent {
	return BaseEvent{
		AggregateID: canvasID,
		EventType:   eventType,
		Timestamp:   time.Now(),
	}
}

// NodeAdded is raised when a node is placed on the canvas
type NodeAdded struct {
	BaseEvent
	NodeID string `json:"node_id"`
	Kind   string `json:"kind"`
}

// NewNodeAdded creates a NodeAdded event
func NewNodeAdded(canvasID, nodeID, kind string) NodeAdded {
	return NodeAdded{
		BaseEvent: newBase(canvasID, "canvas.node_added"),
		NodeID:    nodeID,
		Kind:      kind,
	}
}

// NodeRemoved is raised when a node is deleted, after edge cascade
type NodeRemoved struct {
	BaseEvent
	NodeID        string `json:"node_id"`
	CascadedEdges int    `json:"cascaded_edges"`
}

// NewNodeRemoved creates a NodeRemoved event
func NewNodeRemoved(canvasID, nodeID string, cascadedEdges int) NodeRemoved {
	return NodeRemoved{
		BaseEvent:     newBase(canvasID, "canvas.node_removed"),
		NodeID:        nodeID,
		CascadedEdges: cascadedEdges,
	}
}

// EdgeAdded is raised when a validated connection is committed
type EdgeAdded struct {
	BaseEvent
	EdgeID       string `json:"edge_id"`
	SourceID     string `json:"source_id"`
	TargetID     string `json:"target_id"`
	SemanticType string `json:"semantic_type"`
}

// NewEdgeAdded creates an EdgeAdded event
func NewEdgeAdded(canvasID, edgeID, sourceID, targetID, semanticType string) EdgeAdded {
	return EdgeAdded{
		BaseEvent:    newBase(canvasID, "canvas.edge_added"),
		EdgeID:       edgeID,
		SourceID:     sourceID,
		TargetID:     targetID,
		SemanticType: semanticType,
	}
}

// EdgeRemoved is raised when a connection is deleted
type EdgeRemoved struct {
	BaseEvent
	EdgeID string `json:"edge_id"`
}

// NewEdgeRemoved creates an EdgeRemoved event
func NewEdgeRemoved(canvasID, edgeID string) EdgeRemoved {
	return EdgeRemoved{
		BaseEvent: newBase(canvasID, "canvas.edge_removed"),
		EdgeID:    edgeID,
	}
}

// HistoryChanged is raised on every history push, undo, or redo
type HistoryChanged struct {
	BaseEvent
	Action    string `json:"action"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

// NewHistoryChanged creates a HistoryChanged event
func NewHistoryChanged(canvasID, action string, nodeCount, edgeCount int) HistoryChanged {
	return HistoryChanged{
		BaseEvent: newBase(canvasID, "canvas.history_changed"),
		Action:    action,
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}
}

// StrokeCommitted is raised when a freehand stroke is committed
type StrokeCommitted struct {
	BaseEvent
	StrokeID   string `json:"stroke_id"`
	PointCount int    `json:"point_count"`
}

// NewStrokeCommitted creates a StrokeCommitted event
func NewStrokeCommitted(canvasID, strokeID string, pointCount int) StrokeCommitted {
	return StrokeCommitted{
		BaseEvent:  newBase(canvasID, "canvas.stroke_committed"),
		StrokeID:   strokeID,
		PointCount: pointCount,
	}
}

// StrokesErased is raised when an erase gesture removes strokes
type StrokesErased struct {
	BaseEvent
	Removed int `json:"removed"`
}

// NewStrokesErased creates a StrokesErased event
func NewStrokesErased(canvasID string, removed int) StrokesErased {
	return StrokesErased{
		BaseEvent: newBase(canvasID, "canvas.strokes_erased"),
		Removed:   removed,
	}
}

// CanvasImported is raised when a snapshot import replaces canvas content
type CanvasImported struct {
	BaseEvent
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// NewCanvasImported creates a CanvasImported event
func NewCanvasImported(canvasID string, nodeCount, edgeCount int) CanvasImported {
	return CanvasImported{
		BaseEvent: newBase(canvasID, "canvas.imported"),
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}
}
