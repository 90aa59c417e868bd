package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fightstation/backend/internal/config"
)

// NewEngine builds the gin engine with the shared routes (health, metrics)
// and mounts every service registrar under /api/v1.
func NewEngine(cfg *config.Config, registrars ...Registrar) *gin.Engine {
	if cfg.App.ENV != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	for _, r := range registrars {
		r.Register(api)
	}

	return engine
}

// StartHTTPServer boots the HTTP server and blocks until it stops.
func StartHTTPServer(cfg *config.Config, registrars ...Registrar) error {
	engine := NewEngine(cfg, registrars...)
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	if err := engine.Run(addr); err != nil {
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	}
	return nil
}
