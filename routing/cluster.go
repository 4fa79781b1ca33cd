package routing

// StopClusterer merges stop coordinates that lie within a tolerance of an
// existing node into that node.
//
// A point joins the first node, in creation order, that is within
// tolerance, which is not necessarily the nearest one. The latitude index
// only prunes the candidates; it never changes which node wins, so the
// assignment stays deterministic for a fixed input order.
type StopClusterer struct {
	tolerance float64
	nodes     []Coordinate
	index     *latIndex
}

func NewStopClusterer(toleranceM float64) *StopClusterer {
	return &StopClusterer{
		tolerance: toleranceM,
		index:     newLatIndex(),
	}
}

// Assign returns the node id for p, creating a node at p when no existing
// node is within tolerance.
func (c *StopClusterer) Assign(p Coordinate) NodeID {
	match := NodeID(-1)
	c.index.band(p.Lat, c.tolerance, func(id NodeID) bool {
		if match >= 0 && id > match {
			return true
		}
		if Distance(p, c.nodes[id]) <= c.tolerance {
			match = id
		}
		return true
	})
	if match >= 0 {
		return match
	}

	id := NodeID(len(c.nodes))
	c.nodes = append(c.nodes, p)
	c.index.insert(id, p)
	return id
}

// Nodes returns the representative coordinate of every node, indexed by id.
func (c *StopClusterer) Nodes() []Coordinate {
	return c.nodes
}
