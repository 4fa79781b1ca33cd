package routing

import (
	"log"
	"sort"
)

// NodeID identifies a graph vertex. Base graph ids are dense, starting at 0.
type NodeID int64

// Mode is the travel mode of an edge or segment.
type Mode int

const (
	Walk Mode = iota
	Bus
)

func (m Mode) String() string {
	switch m {
	case Walk:
		return "walk"
	case Bus:
		return "bus"
	default:
		return "unknown"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Edge is a directed connection. It is either a BusEdge or a WalkEdge.
type Edge interface {
	Target() NodeID
	// Distance is the base cost of the edge in meters.
	Distance() float64
	Mode() Mode
	isEdge()
}

// BusEdge is one hop along a line, tagged with the positions of its
// endpoints in the line's stop sequence.
type BusEdge struct {
	To        NodeID
	Meters    float64
	Line      string
	FromIndex int
	ToIndex   int
}

func (e BusEdge) Target() NodeID    { return e.To }
func (e BusEdge) Distance() float64 { return e.Meters }
func (e BusEdge) Mode() Mode        { return Bus }
func (BusEdge) isEdge()             {}

// WalkEdge connects a query portal with a nearby node.
type WalkEdge struct {
	To     NodeID
	Meters float64
}

func (e WalkEdge) Target() NodeID    { return e.To }
func (e WalkEdge) Distance() float64 { return e.Meters }
func (e WalkEdge) Mode() Mode        { return Walk }
func (WalkEdge) isEdge()             {}

// Node is a vertex and its representative coordinate.
type Node struct {
	ID NodeID
	Coordinate
}

// LineIndex maps a node to the smallest position it occupies on each line
// that serves it.
type LineIndex map[NodeID]map[string]int

// Position returns the minimal stop-sequence index of node on line.
func (li LineIndex) Position(node NodeID, line string) (int, bool) {
	lines, ok := li[node]
	if !ok {
		return 0, false
	}
	idx, ok := lines[line]
	return idx, ok
}

func (li LineIndex) add(node NodeID, line string, idx int) {
	lines, ok := li[node]
	if !ok {
		lines = make(map[string]int)
		li[node] = lines
	}
	if cur, seen := lines[line]; !seen || idx < cur {
		lines[line] = idx
	}
}

// Graph is the immutable base network built from the line dataset. It is
// safe for concurrent readers once BuildGraph returns.
type Graph struct {
	nodes     []Coordinate
	adj       [][]Edge
	lines     map[string][]NodeID
	lineIndex LineIndex
	index     *latIndex
	edgeCount int
}

// BuildGraph clusters every line's stops and links consecutive stops with a
// pair of bus edges. Lines are processed in ascending id order so the
// resulting node ids do not depend on map iteration.
func BuildGraph(lines map[string][]Coordinate, toleranceM float64) *Graph {
	ids := make([]string, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	clusterer := NewStopClusterer(toleranceM)
	g := &Graph{
		lines:     make(map[string][]NodeID, len(lines)),
		lineIndex: make(LineIndex),
	}

	stops := 0
	for _, line := range ids {
		seq := make([]NodeID, 0, len(lines[line]))
		for _, p := range lines[line] {
			seq = append(seq, clusterer.Assign(p))
		}
		g.lines[line] = seq
		stops += len(seq)
	}

	g.nodes = clusterer.Nodes()
	g.index = clusterer.index
	g.adj = make([][]Edge, len(g.nodes))

	for _, line := range ids {
		seq := g.lines[line]
		for i, nid := range seq {
			g.lineIndex.add(nid, line, i)
		}
		for i := 0; i+1 < len(seq); i++ {
			a, b := seq[i], seq[i+1]
			d := Distance(g.nodes[a], g.nodes[b])
			g.adj[a] = append(g.adj[a], BusEdge{To: b, Meters: d, Line: line, FromIndex: i, ToIndex: i + 1})
			g.adj[b] = append(g.adj[b], BusEdge{To: a, Meters: d, Line: line, FromIndex: i + 1, ToIndex: i})
			g.edgeCount += 2
		}
	}

	log.Printf("Built graph: %d lines, %d stops clustered into %d nodes, %d edges",
		len(ids), stops, len(g.nodes), g.edgeCount)
	return g
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) EdgeCount() int { return g.edgeCount }

// Coordinate returns the representative coordinate of a base node.
func (g *Graph) Coordinate(id NodeID) Coordinate { return g.nodes[id] }

// Edges returns the outgoing edges of a base node. Callers must not modify
// the returned slice.
func (g *Graph) Edges(id NodeID) []Edge {
	if id < 0 || int(id) >= len(g.adj) {
		return nil
	}
	return g.adj[id]
}

// Nodes lists every base node in id order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, c := range g.nodes {
		out[i] = Node{ID: NodeID(i), Coordinate: c}
	}
	return out
}

// Line returns the clustered node sequence of a line.
func (g *Graph) Line(id string) ([]NodeID, bool) {
	seq, ok := g.lines[id]
	return seq, ok
}

func (g *Graph) LineIndex() LineIndex { return g.lineIndex }

// nodesWithin calls fn for every base node within radiusM of p.
func (g *Graph) nodesWithin(p Coordinate, radiusM float64, fn func(id NodeID, d float64)) {
	g.index.band(p.Lat, radiusM, func(id NodeID) bool {
		if d := Distance(p, g.nodes[id]); d <= radiusM {
			fn(id, d)
		}
		return true
	})
}
