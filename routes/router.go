package routes

import (
	"strings"

	handlers "gestionmax.fr/hub/handlers/api"
	"gestionmax.fr/hub/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies handlers et infrastructure assemblés par main.
type Dependencies struct {
	Programs    *handlers.ProgramHandler
	Categories  *handlers.CategoryHandler
	ProgramHTML *handlers.ProgramHTMLHandler
	Rendezvous  *handlers.RendezvousHandler
	Reclamation *handlers.ReclamationHandler
	Actions     *handlers.ActionCorrectiveHandler
	Competences *handlers.CompetenceHandler
	Health      *handlers.HealthHandler

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	TemplatesDir       string
	CORSAllowedOrigins string
	// DisableRequestLog coupe le middleware logger (tests).
	DisableRequestLog bool
}

// SetupRoutes enregistre les middlewares globaux puis toutes les routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Use(recoverMiddleware.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if !deps.DisableRequestLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins(deps.CORSAllowedOrigins),
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: handlers.HeaderDataSource,
	}))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}

	if deps.Health != nil {
		app.Get("/health", deps.Health.Health)
	}
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	if deps.TemplatesDir != "" {
		app.Static("/programmes-html", deps.TemplatesDir)
	}

	registerAPIRoutes(app, deps)

	app.Use(handlers.NotFound)
}

func corsOrigins(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "*"
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}
