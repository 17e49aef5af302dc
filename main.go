package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/pitchline-inc/pitchline-engine/pkg/config"
	"github.com/pitchline-inc/pitchline-engine/pkg/database"
	"github.com/pitchline-inc/pitchline-engine/pkg/handlers"
	"github.com/pitchline-inc/pitchline-engine/pkg/llm"
	"github.com/pitchline-inc/pitchline-engine/pkg/logging"
	"github.com/pitchline-inc/pitchline-engine/pkg/mail"
	"github.com/pitchline-inc/pitchline-engine/pkg/maps"
	"github.com/pitchline-inc/pitchline-engine/pkg/matching"
	"github.com/pitchline-inc/pitchline-engine/pkg/places"
	"github.com/pitchline-inc/pitchline-engine/pkg/repositories"
	"github.com/pitchline-inc/pitchline-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model))

	ctx := context.Background()

	// Migrations run over database/sql; pgx serves both interfaces.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	llmClient, err := llm.NewClient(&cfg.AI, logger)
	if err != nil {
		logger.Fatal("Failed to create AI client", zap.Error(err))
	}

	mapsClient, err := maps.NewClient(cfg.Maps.APIKey, logger)
	if err != nil {
		logger.Fatal("Failed to create maps client", zap.Error(err))
	}

	mailer, err := mail.NewSMTPMailer(&cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("Failed to create mailer", zap.Error(err))
	}

	// Repositories
	clientRepo := repositories.NewClientRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)
	adminRepo := repositories.NewAdminRepository(db)

	// Core components
	matchEngine := matching.NewEngine(clientRepo, propertyRepo, logger)
	aggregator := places.NewAggregator(mapsClient, cfg.Maps.SearchRadiusMeters, logger)

	// Services
	suggestionService := services.NewSuggestionService(llmClient, cfg.AI.Temperature, logger)
	pitchService := services.NewPitchService(llmClient, cfg.AI.Temperature, logger)
	outreachService := services.NewOutreachService(
		clientRepo, matchEngine, suggestionService, aggregator,
		pitchService, mailer, cfg.Outreach.SenderName, logger)
	ingestionService := services.NewIngestionService(clientRepo, propertyRepo, mapsClient, logger)
	adminService := services.NewAdminService(adminRepo, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewClientsHandler(clientRepo, matchEngine, logger).RegisterRoutes(mux)
	handlers.NewPropertiesHandler(propertyRepo, logger).RegisterRoutes(mux)
	handlers.NewOutreachHandler(outreachService, logger).RegisterRoutes(mux)
	handlers.NewIngestHandler(ingestionService, logger).RegisterRoutes(mux)
	handlers.NewAdminHandler(adminService, logger).RegisterRoutes(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting pitchline-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
