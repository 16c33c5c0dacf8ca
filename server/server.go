// Package server exposes the transit hub over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nyctransithub/transit-hub/accessibility"
	"github.com/nyctransithub/transit-hub/alerts"
	"github.com/nyctransithub/transit-hub/favorites"
	"github.com/nyctransithub/transit-hub/gtfsrt"
	"github.com/nyctransithub/transit-hub/internal/logging"
	"github.com/nyctransithub/transit-hub/stations"
)

// TrainService yields train updates for a line group
type TrainService interface {
	TrainsOrEmpty(ctx context.Context, lineGroup string) []gtfsrt.TrainUpdate
}

// AlertService yields service alerts for a category
type AlertService interface {
	FetchOrEmpty(ctx context.Context, category string) []alerts.ServiceAlert
}

// OutageService yields accessibility outages
type OutageService interface {
	FetchOrEmpty(ctx context.Context) []accessibility.Outage
}

// Deps are the components served by the API. Favorites may be nil, in
// which case the favorites endpoints answer 503.
type Deps struct {
	Catalog   *stations.Catalog
	Trains    TrainService
	Alerts    AlertService
	Outages   OutageService
	Favorites favorites.Store
	Log       logging.Logger
}

// Server bundles router and dependencies for the REST API
type Server struct {
	port   int
	deps   Deps
	log    logging.Logger
	engine *gin.Engine
}

// New constructs a server with routes and middleware
func New(port int, deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}
	if deps.Catalog == nil {
		deps.Catalog = stations.Empty()
	}
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(deps.Log))
	engine.Use(corsMiddleware())

	s := &Server{port: port, deps: deps, log: deps.Log, engine: engine}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying gin engine (for tests)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.log.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		s.log.Info("server shut down successfully")
		return nil
	}
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/stations", s.handleStations)
	api.GET("/stations/:line", s.handleStationsForLine)
	api.GET("/realtime_trains/:line", s.handleRealtimeTrains)
	api.GET("/alerts/:alert_type", s.handleAlerts)
	api.GET("/accessibility", s.handleAccessibility)
	api.GET("/translate", s.handleTranslate)

	api.GET("/favorites", s.handleListFavorites)
	api.POST("/favorites", s.handleAddFavorite)
	api.DELETE("/favorites", s.handleRemoveFavorite)

	s.engine.GET("/get_accessibility", s.handleAccessibility)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
