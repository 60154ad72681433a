package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gestionmax.fr/hub/configs"
	"gestionmax.fr/hub/configs/configsdatabase"
	"gestionmax.fr/hub/configs/configslog"
	"gestionmax.fr/hub/database"
	handlers "gestionmax.fr/hub/handlers/api"
	"gestionmax.fr/hub/pkg/metrics"
	"gestionmax.fr/hub/routes"
	"gestionmax.fr/hub/services"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		configslog.Log.Error("Arrêt du serveur sur erreur", zap.Error(err))
		configslog.SyncLogger()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configs.Load()
	if err != nil {
		return err
	}
	configslog.InitLogger(cfg.Env, cfg.LogLevel)
	defer configslog.SyncLogger()

	db, err := configsdatabase.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer configsdatabase.Close(db)

	if cfg.AutoMigrate {
		if err := database.Initialize(db, cfg.Admin, true, true); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	programService := services.NewProgramService(db, m)
	htmlService := services.NewProgramHTMLService(services.ProgramHTMLConfig{
		TemplatesDir:    cfg.HTML.TemplatesDir,
		ArchiveDir:      cfg.ArchivePath(),
		FallbackEnabled: cfg.FallbackEnabled,
	}, programService, m)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        routes.NewViewEngine("./views"),
		ErrorHandler: handlers.ErrorHandler,
	})

	routes.SetupRoutes(app, routes.Dependencies{
		Programs:    handlers.NewProgramHandler(programService, m, cfg.FallbackEnabled),
		Categories:  handlers.NewCategoryHandler(services.NewCategoryService(db)),
		ProgramHTML: handlers.NewProgramHTMLHandler(htmlService, m),
		Rendezvous:  handlers.NewRendezvousHandler(services.NewRendezvousService(db)),
		Reclamation: handlers.NewReclamationHandler(services.NewReclamationService(db)),
		Actions:     handlers.NewActionCorrectiveHandler(services.NewActionCorrectiveService(db)),
		Competences: handlers.NewCompetenceHandler(services.NewCompetenceService(db)),
		Health:      handlers.NewHealthHandler(db),

		Metrics:  m,
		Gatherer: reg,

		TemplatesDir:       cfg.HTML.TemplatesDir,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		configslog.SLog.Infof("%s démarré sur le port %s (%s)", cfg.AppName, cfg.Port, cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		configslog.SLog.Info("Signal d'arrêt reçu")
	}

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		configslog.Log.Error("Arrêt du serveur HTTP en erreur", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Serveur arrêté")
	return nil
}
