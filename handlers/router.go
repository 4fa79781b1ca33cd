package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bus-route-server/services"
)

// NewRouter wires the middleware, the routing API, /health and /metrics.
func NewRouter(routingService *services.RoutingService, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Metrics())

	config := cors.DefaultConfig()
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", RequestIDHeader}
	config.ExposeHeaders = []string{RequestIDHeader}
	r.Use(cors.New(config))

	NewRoutingHandler(routingService).RegisterRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
