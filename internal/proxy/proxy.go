// Package proxy is the pass-through in front of the Video Unpack backend.
// It forwards method, headers and JSON body verbatim and relays the
// upstream status and body; it adds no retry, transformation or caching.
package proxy

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/config"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
)

// SetupRouter builds the gin engine serving /health and the /api forwarder.
func SetupRouter(cfg *config.Config, l logger.Logger) *gin.Engine {
	if cfg.Proxy.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware
	r.Use(gin.Logger())
	r.Use(Recovery(l))
	// CORS Middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Proxy.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "up",
		})
	})

	h := NewHandler(cfg, l, &http.Client{Timeout: 5 * time.Minute})
	r.Any("/api/*path", h.Forward)

	return r
}
