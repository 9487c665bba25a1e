package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/tmax-hotdays-service/internal/dashboard"
	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the dashboard surface the API serves.
type Service interface {
	sharedobs.ReadinessChecker
	Dataset() *domain.Dataset
	Years() ([]int, error)
	Bounds(year int) (domain.Bounds, error)
	Compute(sel domain.Selection) (dashboard.Result, error)
	Pivot(threshold float64, seasonal bool) (domain.PivotTable, error)
}

// Server exposes the dashboard API plus health, readiness, and metrics endpoints.
type Server struct {
	app    *fiber.App
	addr   string
	svc    Service
	logger *slog.Logger
}

// NewServer creates a fiber app with /healthz, /readyz, /metrics and the /api/v1 routes.
func NewServer(addr string, svc Service, logger *slog.Logger) *Server {
	s := &Server{addr: addr, svc: svc, logger: logger}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(s.logRequests)

	s.app.Get("/healthz", adaptor.HTTPHandlerFunc(sharedobs.LivenessHandler()))
	s.app.Get("/readyz", adaptor.HTTPHandlerFunc(sharedobs.ReadinessHandler(svc)))
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")
	api.Get("/dataset", s.getDataset)
	api.Get("/years", s.getYears)
	api.Get("/bounds", s.getBounds)
	api.Get("/hotdays", s.getHotDays)
	api.Get("/pivot", s.getPivot)

	s.app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "endpoint not found: "+c.Path())
	})

	return s
}

// Start begins listening. Returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// Test runs a request through the app without a listener, useful for testing.
func (s *Server) Test(req *http.Request) (*http.Response, error) {
	return s.app.Test(req, -1)
}

type datasetInfo struct {
	*domain.Dataset
	Readings  int `json:"readings"`
	Locations int `json:"locations"`
}

func (s *Server) getDataset(c *fiber.Ctx) error {
	ds := s.svc.Dataset()
	if ds == nil {
		return dashboard.ErrNotReady
	}
	return c.JSON(datasetInfo{Dataset: ds, Readings: len(ds.Readings), Locations: len(ds.Locations())})
}

func (s *Server) getYears(c *fiber.Ctx) error {
	years, err := s.svc.Years()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"years": years})
}

func (s *Server) getBounds(c *fiber.Ctx) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return err
	}
	bounds, err := s.svc.Bounds(year)
	if err != nil {
		return err
	}
	return c.JSON(bounds)
}

func (s *Server) getHotDays(c *fiber.Ctx) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return err
	}
	threshold, err := queryFloat(c, "threshold")
	if err != nil {
		return err
	}
	res, err := s.svc.Compute(domain.Selection{Year: year, Threshold: threshold})
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (s *Server) getPivot(c *fiber.Ctx) error {
	threshold, err := queryFloat(c, "threshold")
	if err != nil {
		return err
	}
	seasonal := false
	if v := c.Query("seasonal"); v != "" {
		seasonal, err = strconv.ParseBool(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "seasonal must be true or false")
		}
	}
	table, err := s.svc.Pivot(threshold, seasonal)
	if err != nil {
		return err
	}
	return c.JSON(table)
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" is required")
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" must be an integer")
	}
	return n, nil
}

func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	v := c.Query(key)
	if v == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" is required")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" must be a number")
	}
	return f, nil
}

// handleError maps service errors onto status codes and a JSON body.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		status = fe.Code
	case errors.Is(err, domain.ErrInvalidParameter):
		status = fiber.StatusBadRequest
	case errors.Is(err, dashboard.ErrNotReady):
		status = fiber.StatusServiceUnavailable
	}

	if status >= fiber.StatusInternalServerError && status != fiber.StatusServiceUnavailable {
		s.logger.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Debug("http request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
		"request_id", c.Locals("requestid"),
	)
	return err
}
