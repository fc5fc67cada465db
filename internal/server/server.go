// Package server exposes the compiler over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SeamusWaldron/cuberobot/internal/storage"
)

// Server is the HTTP API.
type Server struct {
	router *gin.Engine
	db     *storage.DB
	runs   *storage.RunRepository
	steps  *storage.StepRepository
}

// New creates the API. db may be nil, in which case history routes report
// 503 and compile requests cannot be saved.
func New(db *storage.DB) *Server {
	s := &Server{
		router: gin.New(),
		db:     db,
	}
	if db != nil {
		s.runs = storage.NewRunRepository(db)
		s.steps = storage.NewStepRepository(db)
	}

	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/compile", s.handleCompile)
		api.POST("/batch", s.handleBatch)
		api.POST("/verify", s.handleVerify)
		api.GET("/orientations", s.handleOrientations)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/stats", s.handleRunStats)
		api.GET("/runs/:id", s.handleGetRun)
		api.GET("/runs/:id/report", s.handleRunReport)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[API] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}
