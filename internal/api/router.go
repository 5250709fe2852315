package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/api/middleware"
)

// multipart framing allowance on top of the image size limit
const formOverhead = 1 << 20

type Dependencies struct {
	Analysis     handler.AnalysisService
	Detector     string
	AgeOracle    string
	MaxImageSize int64
	// RateLimit applies to /v1; a zero Max disables limiting
	RateLimit middleware.RateLimiterConfig
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	cfg := fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "SkinScan API",
	}
	if deps != nil && deps.MaxImageSize > 0 {
		cfg.BodyLimit = int(deps.MaxImageSize) + formOverhead
	}

	return &Router{
		app:    fiber.New(cfg),
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
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	var detectorName, oracleName string
	if r.deps != nil {
		detectorName, oracleName = r.deps.Detector, r.deps.AgeOracle
	}
	healthHandler := handler.NewHealthHandler(detectorName, oracleName)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Analysis routes need an analysis service
	if r.deps == nil || r.deps.Analysis == nil {
		return
	}

	v1 := r.app.Group("/v1")

	if r.deps.RateLimit.Max > 0 {
		r.rateLimiter = middleware.NewRateLimiter(r.deps.RateLimit)
		v1.Use(r.rateLimiter.Handler())
	}

	analyzeHandler := handler.NewAnalyzeHandler(r.deps.Analysis, r.logger, r.deps.MaxImageSize)
	v1.Post("/analyze", analyzeHandler.Analyze)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
