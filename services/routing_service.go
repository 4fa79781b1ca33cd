package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bluele/gcache"

	"bus-route-server/metrics"
	"bus-route-server/models"
	"bus-route-server/routing"
)

type ServiceOptions struct {
	// CacheSize is the number of route answers kept; 0 disables caching.
	CacheSize     int
	CacheTTL      time.Duration
	SearchTimeout time.Duration
}

// RoutingService wraps the engine with a per-query time limit, a result
// cache and metrics.
type RoutingService struct {
	engine  *routing.Engine
	cache   gcache.Cache
	timeout time.Duration
}

func NewRoutingService(engine *routing.Engine, opts ServiceOptions) *RoutingService {
	rs := &RoutingService{
		engine:  engine,
		timeout: opts.SearchTimeout,
	}
	if opts.CacheSize > 0 {
		b := gcache.New(opts.CacheSize).LRU()
		if opts.CacheTTL > 0 {
			b = b.Expiration(opts.CacheTTL)
		}
		rs.cache = b.Build()
	}
	metrics.ObserveNetwork(engine.Network())
	return rs
}

func (rs *RoutingService) Network() routing.NetworkStats {
	return rs.engine.Network()
}

// cacheKey rounds to 1e-6 degrees, about 11 cm.
func cacheKey(origin, destination routing.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f;%.6f,%.6f", origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}

// CalculateRoute answers one query. The boolean reports a cache hit.
func (rs *RoutingService) CalculateRoute(ctx context.Context, origin, destination models.Location) (models.RouteResponse, bool, error) {
	from, to := origin.Coordinate(), destination.Coordinate()
	key := cacheKey(from, to)

	if rs.cache != nil {
		if cached, err := rs.cache.Get(key); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			metrics.RouteQueriesTotal.WithLabelValues("cached").Inc()
			return cached.(models.RouteResponse), true, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	if rs.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rs.timeout)
		defer cancel()
	}

	start := time.Now()
	plan, err := rs.engine.Plan(ctx, from, to)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RouteQueriesTotal.WithLabelValues(Outcome(err, false)).Inc()
		return models.RouteResponse{}, false, err
	}
	metrics.SearchExplored.Observe(float64(plan.Explored))

	resp := models.NewRouteResponse(origin, destination, plan)
	metrics.RouteQueriesTotal.WithLabelValues(Outcome(nil, resp.Found)).Inc()
	log.Printf("Route %s: %d segments, cost %.1f, %d states explored in %v",
		key, len(resp.Segments), resp.Cost, resp.Explored, time.Since(start))

	if rs.cache != nil {
		if err := rs.cache.Set(key, resp); err != nil {
			log.Printf("WARNING: failed to cache route %s: %v", key, err)
		}
	}
	return resp, false, nil
}

// Outcome classifies a query result for metrics and logs.
func Outcome(err error, found bool) string {
	switch {
	case err == nil && found:
		return "found"
	case err == nil:
		return "no_route"
	case routing.IsInputError(err):
		return "invalid"
	case errors.Is(err, routing.ErrSearchBudgetExceeded):
		return "budget"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "error"
	}
}
