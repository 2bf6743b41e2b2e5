// Package server exposes the resume pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/nextstep/internal/pipeline"
)

const (
	DefaultAddr           = ":8000"
	DefaultMaxUploadBytes = 10 << 20

	shutdownTimeout = 10 * time.Second
)

// Config holds the HTTP settings.
type Config struct {
	Addr             string   `mapstructure:"addr"`
	CORSAllowOrigins []string `mapstructure:"cors-allow-origins"`
	MaxUploadBytes   int64    `mapstructure:"max-upload-bytes" validate:"gt=0"`
}

// Server serves the pipeline endpoints.
type Server struct {
	cfg      Config
	pipeline *pipeline.Service
	logger   *zap.Logger
	engine   *gin.Engine
}

// New builds the server and registers its routes.
func New(cfg Config, svc *pipeline.Service, log *zap.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.MaxMultipartMemory = cfg.MaxUploadBytes

	s := &Server{cfg: cfg, pipeline: svc, logger: log, engine: engine}

	engine.Use(
		RequestID(),
		Logging(log),
		Recovery(log),
		CORS(cfg.CORSAllowOrigins),
	)

	engine.GET("/health", s.health)
	engine.POST("/parse", s.parse)
	engine.POST("/recommend", s.recommend)
	engine.POST("/analyze", s.analyze)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening",
			zap.String("addr", s.cfg.Addr),
			zap.Bool("ai_available", s.pipeline.AIAvailable()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
