package config

import "time"

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Canvas constraints
	MaxNodesPerCanvas int
	MaxEdgesPerCanvas int
	DefaultCanvasName string

	// History
	HistoryCapacity int

	// Layout
	DefaultGridSize   float64
	DuplicateOffsetX  float64
	DuplicateOffsetY  float64
	DefaultNodeWidth  float64
	DefaultNodeHeight float64

	// Drawing
	EraseRadius     float64
	MinStrokePoints int

	// Connection rules
	AllowSelfConnections bool
	AllowDuplicateEdges  bool
	DefaultConfidence    float64

	// Advisory notices
	NoticeTTL time.Duration
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxNodesPerCanvas: 10000,
		MaxEdgesPerCanvas: 50000,
		DefaultCanvasName: "Research Canvas",

		HistoryCapacity: 50,

		DefaultGridSize:   20,
		DuplicateOffsetX:  40,
		DuplicateOffsetY:  40,
		DefaultNodeWidth:  240,
		DefaultNodeHeight: 160,

		EraseRadius:     20,
		MinStrokePoints: 2,

		AllowSelfConnections: false,
		AllowDuplicateEdges:  false,
		DefaultConfidence:    1.0,

		NoticeTTL: 2600 * time.Millisecond,
	}
}
