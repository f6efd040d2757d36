// Package devserver runs the development HTTP server for a loom
// project: a health endpoint, request-ID tagging, optional file
// watching, and graceful shutdown.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options configure the server.
type Options struct {
	Host    string
	Port    int
	Env     string // dev, prod, or test
	Reload  bool   // watch project sources for changes
	Project string // project name, reported by /health
}

// Server is the development HTTP server.
type Server struct {
	opts    Options
	log     zerolog.Logger
	engine  *gin.Engine
	started time.Time

	// changes counts file events seen by the reload watcher.
	changes atomic.Int64
}

// New builds the server and its routes.
func New(opts Options, log zerolog.Logger) *Server {
	if opts.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), requestLogger(log))

	s := &Server{opts: opts, log: log, engine: engine, started: time.Now()}
	engine.GET("/health", s.handleHealth)
	return s
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"project": s.opts.Project,
		"env":     s.opts.Env,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"changes": s.changes.Load(),
	})
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("request")
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
}

// Run serves until ctx is cancelled, then shuts down gracefully. With
// Reload set, a watcher on the project root counts source changes.
func (s *Server) Run(ctx context.Context, root string) error {
	srv := &http.Server{Addr: s.Addr(), Handler: s.engine}

	if s.opts.Reload {
		stop, err := s.watch(root)
		if err != nil {
			return err
		}
		defer stop()
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.Addr()).Str("env", s.opts.Env).Msg("development server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info().Msg("development server stopped")
	return nil
}

// Probe performs the one-shot --health-check request against a running
// server and fails unless it answers 200.
func Probe(host string, port int) error {
	url := fmt.Sprintf("http://%s:%d/health", host, port)
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: server returned %s", resp.Status)
	}
	return nil
}
