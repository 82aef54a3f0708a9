// Package api exposes the calculation engine over a JSON HTTP interface.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gopower/internal"
	"gopower/internal/config"
	"gopower/internal/errors"
	"gopower/internal/sensitivity"
	"gopower/ports"
)

var logger = internal.DefaultLogger.WithComponent("api")

// Server wires the calculation, export, and sweep services into a gin router
type Server struct {
	router   *gin.Engine
	calc     ports.Calculator
	exporter ports.Exporter
	sweeper  *sensitivity.Sweeper
	cfg      config.ServerConfig
}

// NewServer creates the API server and registers its routes
func NewServer(calc ports.Calculator, exporter ports.Exporter, sweeper *sensitivity.Sweeper, cfg config.ServerConfig) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		router:   gin.Default(),
		calc:     calc,
		exporter: exporter,
		sweeper:  sweeper,
		cfg:      cfg,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/designs", s.handleListDesigns)
		v1.GET("/designs/:id", s.handleGetDesign)
		v1.POST("/calculate", s.handleCalculate)
		v1.POST("/export", s.handleExport)
		v1.POST("/sweep", s.handleSweep)
		v1.POST("/design-effect", s.handleDesignEffect)
	}
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "api server failed")
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// statusFor maps application error codes to HTTP statuses
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeUnknownDesign, errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeCalculationFailed:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
