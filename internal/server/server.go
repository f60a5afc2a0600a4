// Package server exposes the fiscal engine and the taxpayer store over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/defycont/SIFIDE2025-v1.0/internal/config"
	"github.com/defycont/SIFIDE2025-v1.0/internal/store"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Options are the HTTP-level settings of a Server.
type Options struct {
	CORSOrigins []string
	RateLimit   float64 // requests per second per client
	RateBurst   int
}

// Server wires the calculation engine and a Store behind an Echo router.
type Server struct {
	engine  *calculation.CalculationEngine
	store   store.Store
	parser  *config.TaxpayerParser
	log     zerolog.Logger
	limiter *RateLimiter
	echo    *echo.Echo
}

// New creates a server and registers its routes
func New(engine *calculation.CalculationEngine, st store.Store, logger zerolog.Logger, opts Options) *Server {
	s := &Server{
		engine:  engine,
		store:   st,
		parser:  config.NewTaxpayerParser(),
		log:     logger,
		limiter: NewRateLimiter(opts.RateLimit, opts.RateBurst),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	if len(opts.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			MaxAge:       86400,
		}))
	}
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(requestLogger(logger))
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.registerRoutes(e)
	s.echo = e
	return s
}

func (s *Server) registerRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.Use(RateLimitMiddleware(s.limiter, s.log))

	taxpayers := api.Group("/taxpayers")
	taxpayers.GET("", s.ListTaxpayers)
	taxpayers.POST("", s.CreateTaxpayer)
	taxpayers.GET("/:rfc", s.GetTaxpayer)
	taxpayers.PUT("/:rfc", s.ReplaceTaxpayer)
	taxpayers.DELETE("/:rfc", s.DeleteTaxpayer)
	taxpayers.PATCH("/:rfc/records/:ledger/:month", s.UpdateRecord)
	taxpayers.GET("/:rfc/report", s.GetReport)
	taxpayers.GET("/:rfc/alerts", s.GetAlerts)
	taxpayers.POST("/:rfc/projection", s.Project)
	taxpayers.GET("/:rfc/losses", s.GetLossUpdate)
	taxpayers.POST("/:rfc/cfdi", s.ImportCFDI)

	api.POST("/calculate", s.Calculate)

	tools := api.Group("/tools")
	tools.POST("/surcharge", s.Surcharge)
	tools.POST("/losses", s.UpdateLosses)
	tools.GET("/rfc/:rfc", s.ValidateRFC)
}

// Handler returns the router for use with net/http servers and tests
func (s *Server) Handler() http.Handler { return s.echo }

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("Starting server")
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.echo.Shutdown(ctx)
}
