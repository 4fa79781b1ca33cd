package routing

import "sort"

// overlay layers request-local portal nodes over the shared base graph.
// Portal ids continue after the last base node; they are only meaningful
// within the overlay that issued them. The base graph is never written.
type overlay struct {
	base    *Graph
	portals []Coordinate
	// portalAdj holds the edges leaving each portal, by portal offset.
	portalAdj [][]Edge
	// links holds the walking edges from base nodes back to portals.
	links map[NodeID][]Edge
}

func newOverlay(base *Graph) *overlay {
	return &overlay{
		base:  base,
		links: make(map[NodeID][]Edge),
	}
}

func (o *overlay) isPortal(id NodeID) bool {
	return int(id) >= o.base.NodeCount()
}

func (o *overlay) coordinate(id NodeID) Coordinate {
	if o.isPortal(id) {
		return o.portals[int(id)-o.base.NodeCount()]
	}
	return o.base.Coordinate(id)
}

func (o *overlay) edges(id NodeID) []Edge {
	if o.isPortal(id) {
		return o.portalAdj[int(id)-o.base.NodeCount()]
	}
	base := o.base.Edges(id)
	extra := o.links[id]
	if len(extra) == 0 {
		return base
	}
	// full slice expression: append must copy rather than write into the
	// shared base adjacency
	return append(base[:len(base):len(base)], extra...)
}

type portalCandidate struct {
	id       NodeID
	distance float64
}

// attach adds a portal at p linked by walking edges to the k nearest nodes
// within radiusM, base nodes and earlier portals of this overlay alike.
// Ties in distance go to the lower node id. A portal with no candidate in
// range gets no edges and is unreachable; a zero radius disables linking
// even for a node at the exact same position.
func (o *overlay) attach(p Coordinate, radiusM float64, k int) NodeID {
	var candidates []portalCandidate
	if radiusM > 0 && k > 0 {
		o.base.nodesWithin(p, radiusM, func(id NodeID, d float64) {
			candidates = append(candidates, portalCandidate{id: id, distance: d})
		})
		for i, c := range o.portals {
			if d := Distance(p, c); d <= radiusM {
				candidates = append(candidates, portalCandidate{id: NodeID(o.base.NodeCount() + i), distance: d})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].id < candidates[j].id
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	portal := NodeID(o.base.NodeCount() + len(o.portals))
	o.portals = append(o.portals, p)
	out := make([]Edge, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, WalkEdge{To: c.id, Meters: c.distance})
		back := WalkEdge{To: portal, Meters: c.distance}
		if o.isPortal(c.id) {
			off := int(c.id) - o.base.NodeCount()
			o.portalAdj[off] = append(o.portalAdj[off], back)
		} else {
			o.links[c.id] = append(o.links[c.id], back)
		}
	}
	o.portalAdj = append(o.portalAdj, out)
	return portal
}
