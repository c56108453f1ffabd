// Package server exposes interface implementation over HTTP.
package server

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/toyz/implementor/internal/generator"
	"github.com/toyz/implementor/internal/templates"
	"github.com/toyz/implementor/internal/utils"
	"github.com/toyz/implementor/internal/utils/fileops"
)

const (
	defaultMaxBodyBytes    = 1 << 20
	defaultShutdownTimeout = 30 * time.Second
)

// Options configures a Server
type Options struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// MaxBodyBytes limits request bodies; larger requests get 413
	MaxBodyBytes int64

	// ScratchRoot holds per-request scratch directories (default: os.TempDir())
	ScratchRoot string

	// Implementor builds archives for the jar endpoint
	Implementor *generator.Implementor

	Diagnostics     *utils.DiagnosticSystem
	ShutdownTimeout time.Duration
}

// Server serves the implement endpoints on an Echo instance
type Server struct {
	echo        *echo.Echo
	options     Options
	emitter     generator.SourceEmitter
	implementor *generator.Implementor
	fileOps     *fileops.FileOps
	diagnostics *utils.DiagnosticSystem
}

// New creates a Server with routes and middleware registered
func New(opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.ScratchRoot == "" {
		opts.ScratchRoot = os.TempDir()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = utils.NewSilentDiagnostics()
	}
	if opts.Implementor == nil {
		opts.Implementor = generator.NewImplementor(generator.Options{Diagnostics: opts.Diagnostics})
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:        e,
		options:     opts,
		emitter:     templates.NewEmitter(),
		implementor: opts.Implementor,
		fileOps:     fileops.NewFileOps(),
		diagnostics: opts.Diagnostics,
	}

	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.diagnostics.Warn("%s %s -> %d (%s) [%s]: %v", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error)
				return nil
			}
			s.diagnostics.Info("%s %s -> %d (%s) [%s]", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(middleware.BodyLimit(strconv.FormatInt(opts.MaxBodyBytes, 10) + "B"))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealth)

	v1 := s.echo.Group("/v1")
	v1.POST("/implement", s.handleImplement)
	v1.POST("/implement/jar", s.handleImplementJar)
}

// Echo returns the underlying Echo instance
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.diagnostics.Info("Listening on %s", s.options.Addr)
		if err := s.echo.Start(s.options.Addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.diagnostics.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
