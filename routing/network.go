package routing

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// NetworkStats summarises the connectivity of a base graph.
type NetworkStats struct {
	Nodes            int `json:"nodes"`
	Edges            int `json:"edges"`
	Lines            int `json:"lines"`
	InertLines       int `json:"inertLines"`
	Components       int `json:"components"`
	LargestComponent int `json:"largestComponent"`
}

// ComputeNetworkStats counts the connected components of the bus network.
// Stops in different components can only be joined by a walk that fits in
// one portal radius, so many components usually point at a clustering
// tolerance that is too tight.
func ComputeNetworkStats(g *Graph) NetworkStats {
	ug := simple.NewUndirectedGraph()
	for i := range g.nodes {
		ug.AddNode(simple.Node(i))
	}
	for u, edges := range g.adj {
		for _, e := range edges {
			v := int64(e.Target())
			if int64(u) >= v || ug.HasEdgeBetween(int64(u), v) {
				continue
			}
			ug.SetEdge(ug.NewEdge(simple.Node(u), simple.Node(v)))
		}
	}

	stats := NetworkStats{
		Nodes: g.NodeCount(),
		Edges: g.EdgeCount(),
		Lines: len(g.lines),
	}
	for _, seq := range g.lines {
		if len(seq) < 2 {
			stats.InertLines++
		}
	}
	for _, c := range topo.ConnectedComponents(ug) {
		stats.Components++
		if len(c) > stats.LargestComponent {
			stats.LargestComponent = len(c)
		}
	}
	return stats
}
