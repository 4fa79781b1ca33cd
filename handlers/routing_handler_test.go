package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-route-server/models"
	"bus-route-server/routing"
	"bus-route-server/services"
)

func newTestRouter(t *testing.T, mutate func(*routing.Options)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	opts := routing.DefaultOptions()
	opts.ClusterToleranceM = 1
	if mutate != nil {
		mutate(&opts)
	}
	engine, err := routing.NewEngine(map[string][]routing.Coordinate{
		"A": {{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.01}, {Lat: 0, Lon: 0.02}},
		"B": {{Lat: 0, Lon: 0.02}, {Lat: 0, Lon: 0.03}},
	}, opts)
	require.NoError(t, err)

	rs := services.NewRoutingService(engine, services.ServiceOptions{CacheSize: 16, CacheTTL: time.Minute, SearchTimeout: time.Second})
	return NewRouter(rs, []string{"*"})
}

type routeEnvelope struct {
	Success   bool                 `json:"success"`
	Data      models.RouteResponse `json:"data"`
	Error     *models.ApiError     `json:"error"`
	Meta      *models.MetaData     `json:"meta"`
	RequestID string               `json:"request_id"`
}

func do(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, routeEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env routeEnvelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestPostRoute(t *testing.T) {
	r := newTestRouter(t, nil)
	body := `{"start": {"latitude": 0.001, "longitude": 0}, "end": {"latitude": 0.0001, "longitude": 0.03}}`
	req := httptest.NewRequest(http.MethodPost, "/api/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-123")

	w, env := do(t, r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", env.RequestID)
	assert.True(t, env.Success)
	assert.True(t, env.Data.Found)

	require.Len(t, env.Data.Segments, 3)
	assert.Equal(t, models.Walking, env.Data.Segments[0].Mode)
	assert.Equal(t, "A", env.Data.Segments[1].Line)
	assert.Equal(t, "B", env.Data.Segments[2].Line)
	assert.Equal(t, 1, env.Data.Summary.Transfers)
	require.NotNil(t, env.Meta)
	require.NotNil(t, env.Meta.ResultCount)
	assert.Equal(t, 3, *env.Meta.ResultCount)
}

func TestPostRouteGeneratesRequestID(t *testing.T) {
	r := newTestRouter(t, nil)
	body := `{"start": {"latitude": 0.001, "longitude": 0}, "end": {"latitude": 0.0001, "longitude": 0.03}}`
	req := httptest.NewRequest(http.MethodPost, "/api/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w, env := do(t, r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.RequestID, 36)
	assert.Equal(t, env.RequestID, w.Header().Get(RequestIDHeader))
}

func TestPostRouteRejectsBadBodies(t *testing.T) {
	r := newTestRouter(t, nil)
	for name, body := range map[string]string{
		"not json":      `{"start":`,
		"missing end":   `{"start": {"latitude": 0, "longitude": 0}}`,
		"bad latitude":  `{"start": {"latitude": 91, "longitude": 0}, "end": {"latitude": 0, "longitude": 0}}`,
		"bad longitude": `{"start": {"latitude": 0, "longitude": 0}, "end": {"latitude": 0, "longitude": -181}}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/route", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w, env := do(t, r, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
		})
	}
}

func TestGetRoute(t *testing.T) {
	r := newTestRouter(t, nil)
	w, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/route?from=0.001,0&to=0.0001,0.03", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data.Segments, 3)

	// same query again comes from the cache
	_, env = do(t, r, httptest.NewRequest(http.MethodGet, "/api/route?from=0.001,0&to=0.0001,0.03", nil))
	require.NotNil(t, env.Meta)
	assert.True(t, env.Meta.Cached)
}

func TestGetRouteGeoJSON(t *testing.T) {
	r := newTestRouter(t, nil)
	w, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/api/route?from=0.001,0&to=0.0001,0.03&format=geojson", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 5)
	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.Equal(t, "LineString", fc.Features[2].Geometry.Type)
	assert.Equal(t, "A", fc.Features[2].Properties["line"])
}

func TestGetRouteBadQueries(t *testing.T) {
	r := newTestRouter(t, nil)
	tests := []struct {
		url  string
		code string
	}{
		{"/api/route?to=0,0", "INVALID_REQUEST"},
		{"/api/route?from=0,0&to=zero", "INVALID_REQUEST"},
		{"/api/route?from=0,0&to=0,0.03&format=kml", "INVALID_REQUEST"},
		{"/api/route?from=95,0&to=0,0.03", "INVALID_COORDINATE"},
	}
	for _, tt := range tests {
		w, env := do(t, r, httptest.NewRequest(http.MethodGet, tt.url, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.url)
		require.NotNil(t, env.Error, tt.url)
		assert.Equal(t, tt.code, env.Error.Code, tt.url)
	}
}

func TestGetRouteNoRoute(t *testing.T) {
	r := newTestRouter(t, nil)
	w, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/route?from=10,10&to=0.0001,0.03", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.False(t, env.Data.Found)
	assert.Empty(t, env.Data.Segments)
}

func TestGetRouteBudgetExceeded(t *testing.T) {
	r := newTestRouter(t, func(o *routing.Options) { o.MaxExplored = 1 })
	w, env := do(t, r, httptest.NewRequest(http.MethodGet, "/api/route?from=0.001,0&to=0.0001,0.03", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SEARCH_BUDGET_EXCEEDED", env.Error.Code)
}

func TestGetNetwork(t *testing.T) {
	r := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/network", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Success bool                 `json:"success"`
		Data    routing.NetworkStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, routing.NetworkStats{Nodes: 4, Edges: 6, Lines: 2, Components: 1, LargestComponent: 4}, env.Data)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/route?from=0.001,0&to=0.0001,0.03", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "busroute_route_queries_total")
	assert.Contains(t, w.Body.String(), "busroute_graph_size")
	assert.Contains(t, w.Body.String(), `busroute_http_requests_total{method="GET",path="/api/route"`)
}
