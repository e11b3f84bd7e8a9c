package validators

import (
	"fmt"

	"naphtalai-backend/domain/config"
	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
)

// SemanticDescriptor is the semantic triple assigned to a new edge based
// on the ordered kind-pair of its endpoints
type SemanticDescriptor struct {
	Type      string
	Label     string
	LogicRule string
}

// ConnectionDecision is the outcome of validating a candidate connection
// The semantic descriptor is populated on every path, valid or not, so
// callers can always read a semantic triple
type ConnectionDecision struct {
	Valid    bool
	Reason   string
	Semantic SemanticDescriptor
}

type kindPair struct {
	source valueobjects.NodeKind
	target valueobjects.NodeKind
}

// ConnectionPolicy decides which node kinds may be linked and what
// semantic metadata a new edge receives. It is pure and never mutates
// the graph
type ConnectionPolicy struct {
	allowed         map[valueobjects.NodeKind]map[valueobjects.NodeKind]bool
	semantics       map[kindPair]SemanticDescriptor
	fallback        SemanticDescriptor
	allowSelf       bool
	allowDuplicates bool
}

// NewConnectionPolicy builds the default policy
// Every kind currently permits every kind; the allow table exists so a
// future restriction is a data change, not a code change. The self-link
// and duplicate-pair toggles come from the domain config
func NewConnectionPolicy(cfg *config.DomainConfig) *ConnectionPolicy {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	kinds := []valueobjects.NodeKind{
		valueobjects.KindFile,
		valueobjects.KindEntity,
		valueobjects.KindNote,
	}

	allowed := make(map[valueobjects.NodeKind]map[valueobjects.NodeKind]bool, len(kinds))
	for _, source := range kinds {
		allowed[source] = map[valueobjects.NodeKind]bool{
			valueobjects.KindFile:   true,
			valueobjects.KindEntity: true,
			valueobjects.KindNote:   true,
		}
	}

	semantics := map[kindPair]SemanticDescriptor{
		{valueobjects.KindFile, valueobjects.KindFile}: {
			Type:      "references",
			Label:     "references",
			LogicRule: "a document cites or reproduces another document",
		},
		{valueobjects.KindFile, valueobjects.KindEntity}: {
			Type:      "mentions",
			Label:     "mentions",
			LogicRule: "document evidence references an extracted entity",
		},
		{valueobjects.KindFile, valueobjects.KindNote}: {
			Type:      "discussed_in",
			Label:     "discussed in",
			LogicRule: "a research note comments on the document",
		},
		{valueobjects.KindEntity, valueobjects.KindFile}: {
			Type:      "derived_from",
			Label:     "derived from",
			LogicRule: "entity was extracted from the document",
		},
		{valueobjects.KindEntity, valueobjects.KindEntity}: {
			Type:      "associated_with",
			Label:     "associated",
			LogicRule: "two entities share a documented association",
		},
		{valueobjects.KindEntity, valueobjects.KindNote}: {
			Type:      "described_in",
			Label:     "described in",
			LogicRule: "a note elaborates on the entity",
		},
		{valueobjects.KindNote, valueobjects.KindFile}: {
			Type:      "annotates",
			Label:     "annotates",
			LogicRule: "analyst note annotates a source document",
		},
		{valueobjects.KindNote, valueobjects.KindEntity}: {
			Type:      "concerns",
			Label:     "concerns",
			LogicRule: "note records observations about an entity",
		},
		{valueobjects.KindNote, valueobjects.KindNote}: {
			Type:      "expands_on",
			Label:     "expands on",
			LogicRule: "a note builds on an earlier note",
		},
	}

	return &ConnectionPolicy{
		allowed:   allowed,
		semantics: semantics,
		fallback: SemanticDescriptor{
			Type:      "related_to",
			Label:     "related",
			LogicRule: "general analytical relationship",
		},
		allowSelf:       cfg.AllowSelfConnections,
		allowDuplicates: cfg.AllowDuplicateEdges,
	}
}

// Validate decides whether a new edge between source and target is legal
// Checks short-circuit in order: metadata, self-link, allow table,
// duplicate unordered pair
func (p *ConnectionPolicy) Validate(source, target *entities.Node, existing []*entities.Edge) ConnectionDecision {
	if source == nil || target == nil ||
		!source.Kind().IsValid() || !target.Kind().IsValid() {
		return p.reject("missing metadata")
	}

	if !p.allowSelf && source.ID().Equals(target.ID()) {
		return p.reject("self-links disabled")
	}

	if !p.allowed[source.Kind()][target.Kind()] {
		return p.reject(fmt.Sprintf(
			"connections from %s to %s are not allowed",
			source.Kind(), target.Kind(),
		))
	}

	if !p.allowDuplicates {
		for _, edge := range existing {
			if edge.ConnectsPair(source.ID(), target.ID()) {
				return p.reject("connection already exists")
			}
		}
	}

	return ConnectionDecision{
		Valid:    true,
		Semantic: p.Describe(source.Kind(), target.Kind()),
	}
}

// Describe returns the semantic descriptor for an ordered kind pair,
// falling back to the general relationship when the pair is absent
func (p *ConnectionPolicy) Describe(source, target valueobjects.NodeKind) SemanticDescriptor {
	if desc, ok := p.semantics[kindPair{source, target}]; ok {
		return desc
	}
	return p.fallback
}

func (p *ConnectionPolicy) reject(reason string) ConnectionDecision {
	return ConnectionDecision{
		Valid:    false,
		Reason:   reason,
		Semantic: p.fallback,
	}
}
