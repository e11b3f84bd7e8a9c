package entities

import (
	"math"
	"time"

	"naphtalai-backend/domain/core/valueobjects"
	pkgerrors "naphtalai-backend/pkg/errors"
)

// HandleSide is one of the four cardinal anchor points on a node's
// boundary where an edge visually attaches
type HandleSide string

const (
	HandleLeft   HandleSide = "left"
	HandleRight  HandleSide = "right"
	HandleTop    HandleSide = "top"
	HandleBottom HandleSide = "bottom"
)

// IsValid reports whether the handle names a cardinal anchor
func (h HandleSide) IsValid() bool {
	switch h {
	case HandleLeft, HandleRight, HandleTop, HandleBottom:
		return true
	default:
		return false
	}
}

// EdgeStyle is the visual style tag of a connection
type EdgeStyle string

const (
	StyleRedString    EdgeStyle = "red-string"
	StyleGoldenThread EdgeStyle = "golden-thread"
)

// Edge is a directed, semantically-labeled link between two nodes
type Edge struct {
	id           valueobjects.EdgeID
	source       valueobjects.NodeID
	target       valueobjects.NodeID
	sourceHandle HandleSide
	targetHandle HandleSide
	label        string
	style        EdgeStyle
	semanticType string
	logicRule    string
	confidence   float64
	selected     bool
	createdAt    time.Time
}

// EdgeSpec carries the attributes for a new edge
type EdgeSpec struct {
	Source       valueobjects.NodeID
	Target       valueobjects.NodeID
	SourceHandle HandleSide
	TargetHandle HandleSide
	Label        string
	Style        EdgeStyle
	SemanticType string
	LogicRule    string
	Confidence   float64
}

// NewEdge creates a new edge with validation
func NewEdge(spec EdgeSpec) (*Edge, error) {
	if spec.Source.IsZero() || spec.Target.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be empty")
	}
	if spec.Source.Equals(spec.Target) {
		return nil, pkgerrors.NewValidationError("edge cannot connect a node to itself")
	}
	if spec.Confidence < 0 || spec.Confidence > 1 {
		return nil, pkgerrors.NewValidationError("confidence must be in [0,1]")
	}
	if spec.Style == "" {
		spec.Style = StyleRedString
	}

	return &Edge{
		id:           valueobjects.NewEdgeID(),
		source:       spec.Source,
		target:       spec.Target,
		sourceHandle: spec.SourceHandle,
		targetHandle: spec.TargetHandle,
		label:        spec.Label,
		style:        spec.Style,
		semanticType: spec.SemanticType,
		logicRule:    spec.LogicRule,
		confidence:   spec.Confidence,
		createdAt:    time.Now(),
	}, nil
}

// ReconstructEdge recreates an edge from exported data with a preserved ID
func ReconstructEdge(id valueobjects.EdgeID, spec EdgeSpec) (*Edge, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("edge ID cannot be empty")
	}
	edge, err := NewEdge(spec)
	if err != nil {
		return nil, err
	}
	edge.id = id
	return edge, nil
}

// ID returns the edge's unique identifier
func (e *Edge) ID() valueobjects.EdgeID {
	return e.id
}

// Source returns the source node ID
func (e *Edge) Source() valueobjects.NodeID {
	return e.source
}

// Target returns the target node ID
func (e *Edge) Target() valueobjects.NodeID {
	return e.target
}

// SourceHandle returns the anchor on the source node
func (e *Edge) SourceHandle() HandleSide {
	return e.sourceHandle
}

// TargetHandle returns the anchor on the target node
func (e *Edge) TargetHandle() HandleSide {
	return e.targetHandle
}

// Label returns the label text
func (e *Edge) Label() string {
	return e.label
}

// Style returns the visual style tag
func (e *Edge) Style() EdgeStyle {
	return e.style
}

// SemanticType returns the semantic type tag
func (e *Edge) SemanticType() string {
	return e.semanticType
}

// LogicRule returns the human-readable rationale for the connection
func (e *Edge) LogicRule() string {
	return e.logicRule
}

// Confidence returns the confidence score in [0,1]
func (e *Edge) Confidence() float64 {
	return e.confidence
}

// Selected returns the edge's visual selection flag
func (e *Edge) Selected() bool {
	return e.selected
}

// SetSelected sets the visual selection flag
func (e *Edge) SetSelected(selected bool) {
	e.selected = selected
}

// CreatedAt returns when the edge was created
func (e *Edge) CreatedAt() time.Time {
	return e.createdAt
}

// Touches reports whether the edge is incident to the given node
func (e *Edge) Touches(nodeID valueobjects.NodeID) bool {
	return e.source.Equals(nodeID) || e.target.Equals(nodeID)
}

// ConnectsPair reports whether the edge links the given unordered pair
func (e *Edge) ConnectsPair(a, b valueobjects.NodeID) bool {
	return (e.source.Equals(a) && e.target.Equals(b)) ||
		(e.source.Equals(b) && e.target.Equals(a))
}

// EdgePatch is a partial edge update; nil fields are left untouched
type EdgePatch struct {
	Label        *string
	Style        *EdgeStyle
	SemanticType *string
	LogicRule    *string
	Confidence   *float64
}

// ApplyPatch shallow-merges a partial update into the edge
func (e *Edge) ApplyPatch(patch EdgePatch) {
	if patch.Label != nil {
		e.label = *patch.Label
	}
	if patch.Style != nil {
		e.style = *patch.Style
	}
	if patch.SemanticType != nil {
		e.semanticType = *patch.SemanticType
	}
	if patch.LogicRule != nil {
		e.logicRule = *patch.LogicRule
	}
	if patch.Confidence != nil && *patch.Confidence >= 0 && *patch.Confidence <= 1 {
		e.confidence = *patch.Confidence
	}
}

// Clone returns a deep copy of the edge, preserving its identity
// The selection flag is ephemeral and never enters a snapshot
func (e *Edge) Clone() *Edge {
	clone := *e
	clone.selected = false
	return &clone
}

// ResolveHandles picks facing anchors for two node centers when the
// connect gesture supplied none: horizontal when |dx| >= |dy|, else
// vertical, with the source anchor facing the target
func ResolveHandles(sourceCenter, targetCenter valueobjects.Position) (HandleSide, HandleSide) {
	dx := targetCenter.X() - sourceCenter.X()
	dy := targetCenter.Y() - sourceCenter.Y()

	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return HandleRight, HandleLeft
		}
		return HandleLeft, HandleRight
	}

	if dy >= 0 {
		return HandleBottom, HandleTop
	}
	return HandleTop, HandleBottom
}
