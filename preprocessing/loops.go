package preprocessing

import (
	"log"

	"bus-route-server/routing"
)

// loopLookahead is how many stops ahead a line is compared with itself
// when looking for the point where it turns back.
const loopLookahead = 10

// FindLoopSplit returns the first index i in [10, len-10) where stop i lies
// within twice the mean step of stop i+10, i.e. where the line starts
// coming back along itself.
func FindLoopSplit(stops []routing.Coordinate) (int, bool) {
	if len(stops) < 2*loopLookahead+1 {
		return 0, false
	}
	total := 0.0
	for i := 1; i < len(stops); i++ {
		total += routing.Distance(stops[i-1], stops[i])
	}
	avg := total / float64(len(stops)-1)

	for i := loopLookahead; i < len(stops)-loopLookahead; i++ {
		if routing.Distance(stops[i], stops[i+loopLookahead]) < 2*avg {
			return i, true
		}
	}
	return 0, false
}

// SplitLoops replaces every out-and-back line with an outbound "<id>Gidis"
// line and an inbound "<id>Donus" line. Other lines are copied unchanged.
func SplitLoops(d Dataset) Dataset {
	out := make(Dataset, len(d))
	for id, stops := range d {
		out[id] = stops
	}

	split := 0
	for _, id := range d.LineIDs() {
		stops := d[id]
		i, ok := FindLoopSplit(stops)
		if !ok {
			continue
		}
		outbound, inbound := id+"Gidis", id+"Donus"
		if _, clash := d[outbound]; clash {
			log.Printf("WARNING: not splitting line %s: %s already exists", id, outbound)
			continue
		}
		if _, clash := d[inbound]; clash {
			log.Printf("WARNING: not splitting line %s: %s already exists", id, inbound)
			continue
		}
		delete(out, id)
		out[outbound] = stops[:i:i]
		out[inbound] = stops[i:]
		split++
	}
	if split > 0 {
		log.Printf("Split %d looping lines into outbound and inbound halves", split)
	}
	return out
}
