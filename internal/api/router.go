package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/api/middleware"
)

// multipart framing on top of the image itself
const formOverhead = 1024 * 1024

type Dependencies struct {
	AnalysisService handler.AnalysisService
	CatalogService  handler.CatalogService
	Readiness       handler.ReadinessChecker
	DetectorPing    handler.Pinger
	Version         string
	MaxImageSize    int64
	CORSOrigins     string
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	if deps == nil {
		deps = &Dependencies{}
	}
	if deps.MaxImageSize <= 0 {
		deps.MaxImageSize = 10 * 1024 * 1024
	}
	if deps.CORSOrigins == "" {
		deps.CORSOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Hairfit API",
		BodyLimit:    int(deps.MaxImageSize) + formOverhead,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.deps.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	healthHandler := handler.NewHealthHandler(r.deps.Readiness, r.deps.Version)
	if r.deps.DetectorPing != nil {
		healthHandler.WithDetector(r.deps.DetectorPing, 0)
	}
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Prometheus metrics
	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := r.app.Group("/v1")

	if r.deps.AnalysisService != nil {
		analysisHandler := handler.NewAnalysisHandler(r.deps.AnalysisService, r.logger, r.deps.MaxImageSize)
		v1.Post("/analyze", analysisHandler.Analyze)
	}

	if r.deps.CatalogService != nil {
		catalogHandler := handler.NewCatalogHandler(r.deps.CatalogService, r.logger)
		v1.Get("/catalog/status", catalogHandler.Status)
		v1.Post("/catalog/refresh", catalogHandler.Refresh)
		v1.Get("/catalog/styles", catalogHandler.Styles)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx expires
func (r *Router) Shutdown(ctx context.Context) error {
	return r.app.ShutdownWithContext(ctx)
}
