package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"

	"github.com/darck0ne2011-gif/verifeye-app/internal/api/docs"
	"github.com/darck0ne2011-gif/verifeye-app/internal/api/handler"
	"github.com/darck0ne2011-gif/verifeye-app/internal/api/middleware"
	"github.com/darck0ne2011-gif/verifeye-app/internal/history"
	"github.com/darck0ne2011-gif/verifeye-app/internal/service"
)

type Dependencies struct {
	AnalysisService *service.AnalysisService
	HistoryRepo     history.RepositoryInterface
	DB              *pgxpool.Pool
	MaxUploadSizeMB int
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "VerifEye API",
		// Uploads are buffered in memory; cap the body well above the
		// configured media limit to leave room for the form envelope.
		BodyLimit: bodyLimit(deps),
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func bodyLimit(deps *Dependencies) int {
	sizeMB := 50
	if deps != nil && deps.MaxUploadSizeMB > 0 {
		sizeMB = deps.MaxUploadSizeMB
	}
	return (sizeMB + 1) * 1024 * 1024
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// API v1 group
	v1 := r.app.Group("/v1")

	// Only configure analysis routes if dependencies were provided
	if r.deps != nil && r.deps.AnalysisService != nil {
		// Rate limiting (per client IP) - analysis fans out to paid providers
		r.rateLimiter = middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
		v1.Use(r.rateLimiter.Handler())

		// Analysis route; history writes are best-effort
		var recorder handler.ScanRecorder
		if r.deps.HistoryRepo != nil {
			recorder = r.deps.HistoryRepo
		}
		analyzeHandler := handler.NewAnalyzeHandler(r.deps.AnalysisService, recorder, r.deps.MaxUploadSizeMB, r.logger)
		v1.Post("/analyze", analyzeHandler.Analyze)

		// History routes
		if r.deps.HistoryRepo != nil {
			historyHandler := handler.NewHistoryHandler(r.deps.HistoryRepo, r.logger)
			v1.Get("/history", historyHandler.List)
			v1.Get("/history/:id", historyHandler.Get)
		}
	}
}

// App returns the underlying Fiber app
func (r *Router) App() *fiber.App {
	return r.app
}

// Listen starts the HTTP server
func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

// Shutdown gracefully shuts down the server
func (r *Router) Shutdown() error {
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}
	return r.app.Shutdown()
}
