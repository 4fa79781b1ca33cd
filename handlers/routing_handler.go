package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bus-route-server/models"
	"bus-route-server/routing"
	"bus-route-server/services"
)

type RoutingHandler struct {
	routingService *services.RoutingService
}

func NewRoutingHandler(routingService *services.RoutingService) *RoutingHandler {
	return &RoutingHandler{
		routingService: routingService,
	}
}

func (h *RoutingHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	api.POST("/route", h.CalculateRoute)
	api.GET("/route", h.GetRoute)
	api.GET("/network", h.GetNetwork)
}

func (h *RoutingHandler) CalculateRoute(c *gin.Context) {
	log.Println("=== Received bus route request ===")

	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("ERROR: Failed to parse request: %v", err)
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}
	h.route(c, *req.Start, *req.End, false)
}

// GetRoute serves GET /api/route?from=lat,lon&to=lat,lon[&format=geojson].
func (h *RoutingHandler) GetRoute(c *gin.Context) {
	log.Println("=== Received bus route query ===")

	from, err := models.ParseLocation(c.Query("from"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid from parameter", err.Error())
		return
	}
	to, err := models.ParseLocation(c.Query("to"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid to parameter", err.Error())
		return
	}

	geoJSON := false
	switch format := strings.ToLower(c.DefaultQuery("format", "json")); format {
	case "json":
	case "geojson":
		geoJSON = true
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Unsupported format", fmt.Sprintf("format %q, want json or geojson", format))
		return
	}
	h.route(c, from, to, geoJSON)
}

func (h *RoutingHandler) route(c *gin.Context, from, to models.Location, geoJSON bool) {
	start := time.Now()
	log.Printf("Request details: Start(%.6f, %.6f) -> End(%.6f, %.6f)",
		from.Latitude, from.Longitude, to.Latitude, to.Longitude)

	resp, cached, err := h.routingService.CalculateRoute(c.Request.Context(), from, to)
	if err != nil {
		log.Printf("ERROR: Bus routing failed: %v", err)
		status, code := classify(err)
		respondError(c, status, code, "Bus routing failed", err.Error())
		return
	}

	log.Printf("Route calculation completed, found %d segments (cached=%t)", len(resp.Segments), cached)
	if geoJSON {
		body, err := resp.FeatureCollection().MarshalJSON()
		if err != nil {
			respondError(c, http.StatusInternalServerError, "ENCODING_FAILED", "Failed to encode GeoJSON", err.Error())
			return
		}
		c.Data(http.StatusOK, "application/geo+json", body)
	} else {
		count := len(resp.Segments)
		km := resp.Summary.TotalDistanceM / 1000
		respondOK(c, resp, &models.MetaData{
			ProcessTime:   fmt.Sprintf("%d", time.Since(start).Milliseconds()),
			ApiVersion:    models.ApiVersion,
			ResultCount:   &count,
			TotalDistance: &km,
			Cached:        cached,
		})
	}
	log.Println("=== Bus route request completed ===")
}

func (h *RoutingHandler) GetNetwork(c *gin.Context) {
	respondOK(c, h.routingService.Network(), &models.MetaData{ApiVersion: models.ApiVersion})
}

// classify maps a routing error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case routing.IsInputError(err):
		return http.StatusBadRequest, "INVALID_COORDINATE"
	case errors.Is(err, routing.ErrSearchBudgetExceeded):
		return http.StatusServiceUnavailable, "SEARCH_BUDGET_EXCEEDED"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "SEARCH_TIMEOUT"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "REQUEST_CANCELLED"
	default:
		return http.StatusInternalServerError, "ROUTING_FAILED"
	}
}

func respondOK(c *gin.Context, data interface{}, meta *models.MetaData) {
	c.JSON(http.StatusOK, models.ApiResponse{
		Success:   true,
		Data:      data,
		Meta:      meta,
		RequestID: requestIDFrom(c),
	})
}

func respondError(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, models.ApiResponse{
		Success:   false,
		Error:     &models.ApiError{Code: code, Message: message, Details: details},
		RequestID: requestIDFrom(c),
	})
}
