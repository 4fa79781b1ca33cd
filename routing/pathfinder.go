package routing

import (
	"container/heap"
	"context"
	"fmt"
	"log"
)

// ctxCheckInterval is how many pops pass between context checks.
const ctxCheckInterval = 1024

type searchKey struct {
	node NodeID
	line string
}

type PriorityQueueItem struct {
	Cost      float64
	Node      NodeID
	Line      string
	BusMeters float64
	seq       uint64
	Index     int
}

type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost < pq[j].Cost
	}
	if pq[i].Node != pq[j].Node {
		return pq[i].Node < pq[j].Node
	}
	return pq[i].seq < pq[j].seq
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*PriorityQueueItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[0 : n-1]
	return item
}

type pathEdge struct {
	From NodeID
	Edge Edge
}

type parentLink struct {
	from searchKey
	edge Edge
}

type searchResult struct {
	Path     []pathEdge
	Cost     float64
	Explored int
}

type pathFinder struct {
	graph       *overlay
	lineIndex   LineIndex
	weights     Weights
	stateKeyed  bool
	maxExplored int
}

func (pf *pathFinder) key(node NodeID, line string) searchKey {
	if !pf.stateKeyed {
		return searchKey{node: node}
	}
	return searchKey{node: node, line: line}
}

// progression compares the minimal positions of both endpoints on line:
// +1 forward, -1 backward, 0 when equal or when either endpoint is not
// indexed on the line.
func (pf *pathFinder) progression(from, to NodeID, line string) int {
	i, ok := pf.lineIndex.Position(from, line)
	if !ok {
		return 0
	}
	j, ok := pf.lineIndex.Position(to, line)
	if !ok {
		return 0
	}
	switch {
	case j > i:
		return 1
	case j < i:
		return -1
	}
	return 0
}

// search runs the cost-model Dijkstra from source until target is popped.
// The best-cost map holds one entry per search key, so by default a node
// keeps only its cheapest arrival whatever line delivered it. A nil Path
// with a nil error means target is unreachable.
func (pf *pathFinder) search(ctx context.Context, source, target NodeID) (searchResult, error) {
	best := make(map[searchKey]float64)
	parent := make(map[searchKey]parentLink)

	startKey := pf.key(source, "")
	best[startKey] = 0

	openSet := &PriorityQueue{}
	heap.Init(openSet)
	var seq uint64
	heap.Push(openSet, &PriorityQueueItem{Node: source, seq: seq})

	explored := 0
	var goal *searchKey
	var goalCost float64

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*PriorityQueueItem)
		k := pf.key(current.Node, current.Line)
		if c, ok := best[k]; !ok || current.Cost != c {
			continue
		}

		explored++
		if explored > pf.maxExplored {
			log.Printf("WARNING: search hit maximum explored limit (%d)", pf.maxExplored)
			return searchResult{Explored: explored}, ErrSearchBudgetExceeded
		}
		if explored%ctxCheckInterval == 1 {
			if err := ctx.Err(); err != nil {
				return searchResult{Explored: explored}, fmt.Errorf("search interrupted after %d states: %w", explored, err)
			}
		}

		if current.Node == target {
			goal = &k
			goalCost = current.Cost
			break
		}

		for _, e := range pf.graph.edges(current.Node) {
			next := e.Target()
			progression := 0
			nextLine := current.Line
			busMeters := current.BusMeters
			if be, ok := e.(BusEdge); ok {
				progression = pf.progression(current.Node, next, be.Line)
				nextLine = be.Line
				busMeters += be.Meters
			}

			tentative := current.Cost + pf.weights.IncrementalCost(e, current.Line, progression, current.BusMeters)
			nk := pf.key(next, nextLine)
			if old, ok := best[nk]; !ok || tentative < old {
				best[nk] = tentative
				parent[nk] = parentLink{from: k, edge: e}
				seq++
				heap.Push(openSet, &PriorityQueueItem{
					Cost:      tentative,
					Node:      next,
					Line:      nextLine,
					BusMeters: busMeters,
					seq:       seq,
				})
			}
		}
	}

	if goal == nil {
		return searchResult{Explored: explored}, nil
	}

	path, err := reconstructPath(parent, startKey, *goal)
	if err != nil {
		return searchResult{Explored: explored}, err
	}
	return searchResult{Path: path, Cost: goalCost, Explored: explored}, nil
}

func reconstructPath(parent map[searchKey]parentLink, start, goal searchKey) ([]pathEdge, error) {
	var path []pathEdge
	cur := goal
	for cur != start {
		link, ok := parent[cur]
		if !ok || len(path) > len(parent) {
			return nil, fmt.Errorf("path reconstruction failed at node %d", cur.node)
		}
		path = append(path, pathEdge{From: link.from.node, Edge: link.edge})
		cur = link.from
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
