package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rondasapi/docs"
	"rondasapi/internal/auth"
	"rondasapi/internal/condominio"
	"rondasapi/internal/config"
	"rondasapi/internal/database"
	"rondasapi/internal/database/migration"
	handlers "rondasapi/internal/http/handler"
	"rondasapi/internal/http/middleware"
	"rondasapi/internal/logging"
	"rondasapi/internal/metrics"
	"rondasapi/internal/notify"
	"rondasapi/internal/otel"
	"rondasapi/internal/repository/postgres"
	"rondasapi/internal/service"
	"rondasapi/internal/storage"
)

// @title						Rondas API
// @version					1.0
// @description				Back office for condominium security patrols.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg := config.Load()
	loc := cfg.Location()
	log := logging.FromConfig(cfg.Log, loc)

	if err := cfg.Validate(); err != nil {
		fatal(log, "invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "failed to initialize tracing", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, 5)
	if err != nil {
		fatal(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "failed to migrate database", err)
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		fatal(log, "failed to initialize object storage", err)
	}

	aliases, err := condominio.LoadAliases(cfg.Ronda.AliasesFile)
	if err != nil {
		fatal(log, "failed to load condominio aliases", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	domainMetrics, err := metrics.NewDomain(reg)
	if err != nil {
		fatal(log, "failed to register domain metrics", err)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "failed to register http metrics", err)
	}

	rondaRepo := postgres.NewRondaPostgres(db)
	esporadicaRepo := postgres.NewEsporadicaPostgres(db)
	condoRepo := postgres.NewCondominioPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	notifier := notify.New(cfg.WhatsApp)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	condoSvc := service.NewCondominioService(condoRepo, aliases)
	deps := handlers.Deps{
		Auth:            service.NewAuthService(userRepo, tokens, log),
		Condominios:     condoSvc,
		Rondas:          service.NewRondaService(rondaRepo, condoRepo, notifier, domainMetrics, log, loc),
		Import:          service.NewImportService(objStore, rondaRepo, condoSvc, domainMetrics, log, loc),
		Esporadicas:     service.NewEsporadicaService(esporadicaRepo, condoRepo, cfg.Ronda.ToleranciaMin, loc),
		Consolidacao:    service.NewConsolidacaoService(esporadicaRepo, rondaRepo, condoRepo, notifier, domainMetrics, log, loc),
		Export:          service.NewExportService(objStore, rondaRepo, esporadicaRepo, condoRepo, time.Duration(cfg.Ronda.PresignExpiryMinute)*time.Minute),
		LoginRatePerMin: cfg.Auth.LoginRatePerMin,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    service.MaxExportSize + 1<<20,
	})

	app.Use(cors.New())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", handlers.SwaggerUI(docs.SwaggerInfo))

	handlers.RegisterRoutes(app, db, deps)

	go func() {
		<-ctx.Done()
		log.Info(map[string]any{"msg": "shutting down"})
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error(map[string]any{"msg": "shutdown failed", "error": err})
		}
	}()

	addr := ":" + cfg.Port
	log.Info(map[string]any{"msg": "listening", "addr": addr, "timezone": loc.String()})
	if err := app.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
		fatal(log, "failed to start server", err)
	}
}

func fatal(log *logging.Logger, msg string, err error) {
	log.Error(map[string]any{"msg": msg, "error": err})
	os.Exit(1)
}
