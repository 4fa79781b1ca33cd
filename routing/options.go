package routing

import "fmt"

// Options configure graph construction and search.
type Options struct {
	// ClusterToleranceM merges stops closer than this into one node.
	ClusterToleranceM float64
	// PortalRadiusM and PortalCandidates bound the walking links attached to
	// a query endpoint.
	PortalRadiusM    float64
	PortalCandidates int
	Weights          Weights
	// MaxExplored caps the number of states popped by one search.
	MaxExplored int
	// StateKeyedSearch keys best costs by (node, last line) instead of node
	// alone.
	StateKeyedSearch bool
	// TrimWalkMeters drops a last walking segment no longer than this, as
	// long as another segment remains. 0 disables trimming.
	TrimWalkMeters float64
}

func DefaultOptions() Options {
	return Options{
		ClusterToleranceM: 25,
		PortalRadiusM:     600,
		PortalCandidates:  12,
		Weights:           DefaultWeights(),
		MaxExplored:       250000,
		TrimWalkMeters:    25,
	}
}

func (o Options) Validate() error {
	if !finiteNonNegative(o.ClusterToleranceM) {
		return fmt.Errorf("cluster tolerance must be finite and >= 0, got %v", o.ClusterToleranceM)
	}
	if !finiteNonNegative(o.PortalRadiusM) {
		return fmt.Errorf("portal radius must be finite and >= 0, got %v", o.PortalRadiusM)
	}
	if o.PortalCandidates < 0 {
		return fmt.Errorf("portal candidates must be >= 0, got %d", o.PortalCandidates)
	}
	if o.MaxExplored <= 0 {
		return fmt.Errorf("max explored must be > 0, got %d", o.MaxExplored)
	}
	if !finiteNonNegative(o.TrimWalkMeters) {
		return fmt.Errorf("trim walk distance must be finite and >= 0, got %v", o.TrimWalkMeters)
	}
	if err := o.Weights.Validate(); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	return nil
}
