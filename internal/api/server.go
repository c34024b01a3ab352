// Package api serves the planner over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/julianstephens/energyflow/internal/logger"
	"github.com/julianstephens/energyflow/internal/planner"
)

// NewRouter builds the gin engine. A nil limiter disables rate limiting.
func NewRouter(svc *planner.Service, limiter *rate.Limiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware())

	h := &handlers{svc: svc}
	r.GET("/healthz", h.health)

	api := r.Group("/api")
	if limiter != nil {
		api.Use(RateLimitMiddleware(limiter))
	}

	api.GET("/quiz", h.quiz)
	api.POST("/profile", h.submitProfile)
	api.GET("/profile", h.getProfile)
	api.GET("/profile/history", h.profileHistory)
	api.GET("/profile/curve", h.curve)
	api.GET("/zone", h.zone)
	api.POST("/schedule", h.schedule)

	api.GET("/board", h.getBoard)
	api.DELETE("/board/completed", h.clearCompleted)
	api.POST("/board/:zone/tasks", h.addTask)
	api.POST("/board/tasks/:id/toggle", h.toggleTask)
	api.POST("/board/tasks/:id/move", h.moveTask)
	api.DELETE("/board/tasks/:id", h.deleteTask)

	return r
}

// Server runs the router on an address until its context is cancelled.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

func NewServer(addr string, handler http.Handler, shutdownTimeout time.Duration) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	logger.Info("API server stopped")
	return nil
}
