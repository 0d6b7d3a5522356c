// Package server exposes the goal planner, the girl-child scheme tools and
// plan storage over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/planstore"
	"github.com/rgehrsitz/goalplan/internal/profile"
	"github.com/rgehrsitz/goalplan/internal/ssy"
	"github.com/rs/zerolog"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests
const ShutdownTimeout = 10 * time.Second

// Options configures a Server. Zero values fall back to the engine's
// profiles, the published rate schedule and an in-memory store.
type Options struct {
	Engine   *calculation.CalculationEngine
	Store    planstore.Store
	Profiles *profile.Registry
	Schedule *ssy.Schedule
	Limits   ssy.SimulationLimits
	Logger   zerolog.Logger

	RateLimitPerMinute int
	BurstSize          int
	Version            string
}

// Server is the HTTP front end
type Server struct {
	echo     *echo.Echo
	engine   *calculation.CalculationEngine
	store    planstore.Store
	profiles *profile.Registry
	schedule *ssy.Schedule
	limits   ssy.SimulationLimits
	logger   zerolog.Logger
	limiter  *RateLimiter
	version  string
}

// New builds a server and registers its routes
func New(opts Options) *Server {
	if opts.Engine == nil {
		opts.Engine = calculation.NewCalculationEngine()
	}
	if opts.Store == nil {
		opts.Store = planstore.NewMemoryStore()
	}
	if opts.Profiles == nil {
		opts.Profiles = opts.Engine.Profiles
	}
	if opts.Schedule == nil {
		opts.Schedule = ssy.DefaultSchedule()
	}
	if opts.Limits == (ssy.SimulationLimits{}) {
		opts.Limits = ssy.DefaultLimits()
	}
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = DefaultRateLimit
	}
	if opts.BurstSize <= 0 {
		opts.BurstSize = DefaultBurstSize
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		engine:   opts.Engine,
		store:    opts.Store,
		profiles: opts.Profiles,
		schedule: opts.Schedule,
		limits:   opts.Limits,
		logger:   opts.Logger,
		limiter:  NewRateLimiterWithConfig(opts.RateLimitPerMinute, opts.BurstSize),
		version:  opts.Version,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(zerologMiddleware(s.logger))
	e.Use(echomiddleware.Recover())
	e.Use(sessionMiddleware())

	e.GET("/health", s.Health)
	s.registerRoutes(e)

	s.echo = e
	return s
}

func (s *Server) registerRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.Use(rateLimitMiddleware(s.limiter, s.logger))

	goals := api.Group("/goals")
	goals.GET("", s.ListGoals)
	goals.POST("/:goalType/calculate", s.Calculate)

	schemes := api.Group("/ssy")
	schemes.GET("/rates/:year", s.SsyRate)
	schemes.POST("/simulate", s.SsySimulate)

	plans := api.Group("/plans")
	plans.Use(requireUser())
	plans.GET("/:goalType", s.GetPlan)
	plans.PUT("/:goalType", s.PutPlan)
}

// Handler returns the server's http.Handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	defer s.limiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting server")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info().Msg("Server exited")
	return nil
}

// Close releases background resources for servers that never ran
func (s *Server) Close() {
	s.limiter.Stop()
}
