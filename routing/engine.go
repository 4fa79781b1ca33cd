package routing

import (
	"context"
	"fmt"
	"log"
	"sort"
)

// Engine answers route queries over a base graph built once from a line
// dataset. Route may be called from many goroutines at once.
type Engine struct {
	graph   *Graph
	opts    Options
	network NetworkStats
}

// Plan is a routing answer together with search diagnostics.
type Plan struct {
	Segments []Segment
	// Cost is the effort of the winning path in meter-equivalents.
	Cost     float64
	Explored int
}

// NewEngine validates the options and every stop coordinate, then builds
// the base graph.
func NewEngine(lines map[string][]Coordinate, opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid routing options: %w", err)
	}
	ids := make([]string, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		for i, c := range lines[id] {
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("line %q stop %d: %w", id, i, err)
			}
		}
	}

	g := BuildGraph(lines, opts.ClusterToleranceM)
	stats := ComputeNetworkStats(g)
	log.Printf("Network: %d components (largest %d nodes), %d inert lines",
		stats.Components, stats.LargestComponent, stats.InertLines)

	return &Engine{graph: g, opts: opts, network: stats}, nil
}

func (e *Engine) Graph() *Graph { return e.graph }

func (e *Engine) Options() Options { return e.opts }

func (e *Engine) Network() NetworkStats { return e.network }

// Route returns the lowest-effort sequence of walk and bus segments from
// start to end. An empty result with a nil error means no route exists.
func (e *Engine) Route(ctx context.Context, start, end Coordinate) ([]Segment, error) {
	plan, err := e.Plan(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return plan.Segments, nil
}

// Plan is Route with the search cost and the number of explored states.
func (e *Engine) Plan(ctx context.Context, start, end Coordinate) (*Plan, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	ov := newOverlay(e.graph)
	source := ov.attach(start, e.opts.PortalRadiusM, e.opts.PortalCandidates)
	target := ov.attach(end, e.opts.PortalRadiusM, e.opts.PortalCandidates)

	pf := &pathFinder{
		graph:       ov,
		lineIndex:   e.graph.lineIndex,
		weights:     e.opts.Weights,
		stateKeyed:  e.opts.StateKeyedSearch,
		maxExplored: e.opts.MaxExplored,
	}
	res, err := pf.search(ctx, source, target)
	if err != nil {
		return nil, err
	}
	if res.Path == nil {
		return &Plan{Segments: []Segment{}, Explored: res.Explored}, nil
	}

	return &Plan{
		Segments: extractSegments(ov, res.Path, e.opts.TrimWalkMeters),
		Cost:     res.Cost,
		Explored: res.Explored,
	}, nil
}
