package models

import (
	"bus-route-server/routing"
)

const ApiVersion = "v1"

type ApiResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ApiError   `json:"error,omitempty"`
	Meta      *MetaData   `json:"meta,omitempty"`
	RequestID string      `json:"request_id"`
}

type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type MetaData struct {
	ProcessTime   string   `json:"process_time_ms"`
	ApiVersion    string   `json:"api_version"`
	ResultCount   *int     `json:"result_count,omitempty"`
	TotalDistance *float64 `json:"total_distance_km,omitempty"`
	Cached        bool     `json:"cached,omitempty"`
}

// RouteResponse is the answer to one route query. Found is false and
// Segments is empty when the endpoints cannot be connected.
type RouteResponse struct {
	Origin      Location        `json:"origin"`
	Destination Location        `json:"destination"`
	Found       bool            `json:"found"`
	Segments    []RouteSegment  `json:"segments"`
	Summary     routing.Summary `json:"summary"`
	Cost        float64         `json:"cost"`
	Explored    int             `json:"explored"`
}

func NewRouteResponse(origin, destination Location, plan *routing.Plan) RouteResponse {
	segments := make([]RouteSegment, len(plan.Segments))
	for i, s := range plan.Segments {
		segments[i] = NewRouteSegment(s)
	}
	return RouteResponse{
		Origin:      origin,
		Destination: destination,
		Found:       len(segments) > 0,
		Segments:    segments,
		Summary:     routing.Summarize(plan.Segments),
		Cost:        plan.Cost,
		Explored:    plan.Explored,
	}
}
