package aggregates

import (
	"time"

	"naphtalai-backend/domain/core/entities"
	"naphtalai-backend/domain/core/valueobjects"
	"naphtalai-backend/domain/events"
)

// historyEntry is an immutable deep snapshot of the graph at a discrete,
// named mutation event. Snapshots never alias live state
type historyEntry struct {
	nodes  []*entities.Node
	edges  []*entities.Edge
	action string
	at     time.Time
}

// HistoryInfo describes one history entry for inspection
type HistoryInfo struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
}

// PushHistory deep-clones the current nodes and edges, truncates any
// entries past the current index, appends the snapshot, and caps the
// list at the configured capacity by dropping the oldest entry
func (c *Canvas) PushHistory(action string) {
	entry := historyEntry{
		nodes:  cloneNodes(c.nodes),
		edges:  cloneEdges(c.edges),
		action: action,
		at:     time.Now(),
	}

	if c.historyIndex < len(c.history)-1 {
		c.history = c.history[:c.historyIndex+1]
	}

	c.history = append(c.history, entry)
	if len(c.history) > c.cfg.HistoryCapacity {
		c.history = c.history[len(c.history)-c.cfg.HistoryCapacity:]
	}
	c.historyIndex = len(c.history) - 1

	c.addEvent(events.NewHistoryChanged(c.id.String(), action, len(c.nodes), len(c.edges)))
}

// Undo restores the previous history snapshot; a no-op at the start
// Returns whether a restore happened
func (c *Canvas) Undo() bool {
	if !c.CanUndo() {
		return false
	}
	c.historyIndex--
	c.restore(c.history[c.historyIndex])
	c.addEvent(events.NewHistoryChanged(c.id.String(), "undo", len(c.nodes), len(c.edges)))
	return true
}

// Redo restores the next history snapshot; a no-op at the end
func (c *Canvas) Redo() bool {
	if !c.CanRedo() {
		return false
	}
	c.historyIndex++
	c.restore(c.history[c.historyIndex])
	c.addEvent(events.NewHistoryChanged(c.id.String(), "redo", len(c.nodes), len(c.edges)))
	return true
}

// CanUndo reports whether an earlier snapshot exists
func (c *Canvas) CanUndo() bool {
	return c.historyIndex > 0
}

// CanRedo reports whether a later snapshot exists
func (c *Canvas) CanRedo() bool {
	return c.historyIndex < len(c.history)-1
}

// HistoryLength returns the number of stored snapshots
func (c *Canvas) HistoryLength() int {
	return len(c.history)
}

// HistoryIndex returns the index of the current snapshot
func (c *Canvas) HistoryIndex() int {
	return c.historyIndex
}

// HistoryEntries describes the stored snapshots, oldest first
func (c *Canvas) HistoryEntries() []HistoryInfo {
	out := make([]HistoryInfo, len(c.history))
	for i, entry := range c.history {
		out[i] = HistoryInfo{
			Action:    entry.action,
			Timestamp: entry.at,
			NodeCount: len(entry.nodes),
			EdgeCount: len(entry.edges),
		}
	}
	return out
}

// restore replaces live state with deep clones of a stored snapshot so
// later mutations cannot corrupt the stored entry. Selection never
// survives a restore since snapshots do not carry it
func (c *Canvas) restore(entry historyEntry) {
	c.nodes = cloneNodes(entry.nodes)
	c.edges = cloneEdges(entry.edges)
	c.selectedNodes = map[valueobjects.NodeID]struct{}{}
	c.selectedEdges = map[valueobjects.EdgeID]struct{}{}
	c.updatedAt = time.Now()
}

func cloneNodes(nodes []*entities.Node) []*entities.Node {
	out := make([]*entities.Node, len(nodes))
	for i, node := range nodes {
		out[i] = node.Clone()
	}
	return out
}

func cloneEdges(edges []*entities.Edge) []*entities.Edge {
	out := make([]*entities.Edge, len(edges))
	for i, edge := range edges {
		out[i] = edge.Clone()
	}
	return out
}
