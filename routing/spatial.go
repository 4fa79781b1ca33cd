package routing

import (
	"math"

	"github.com/tidwall/btree"
)

type latEntry struct {
	lat float64
	id  NodeID
}

func latEntryLess(a, b latEntry) bool {
	if a.lat != b.lat {
		return a.lat < b.lat
	}
	return a.id < b.id
}

// latIndex orders nodes by latitude so radius lookups only visit the band of
// nodes that can possibly be in range. Nodes on a common parallel still
// degrade to a full scan.
type latIndex struct {
	tree *btree.BTreeG[latEntry]
}

func newLatIndex() *latIndex {
	return &latIndex{tree: btree.NewBTreeG[latEntry](latEntryLess)}
}

func (x *latIndex) insert(id NodeID, c Coordinate) {
	x.tree.Set(latEntry{lat: c.Lat, id: id})
}

// band calls fn for every node whose latitude is within radiusM of lat,
// in ascending latitude order, until fn returns false.
func (x *latIndex) band(lat, radiusM float64, fn func(id NodeID) bool) {
	// slack absorbs rounding in the degree conversion
	span := latitudeSpan(radiusM) + 1e-9
	hi := lat + span
	x.tree.Ascend(latEntry{lat: lat - span, id: math.MinInt64}, func(e latEntry) bool {
		if e.lat > hi {
			return false
		}
		return fn(e.id)
	})
}
