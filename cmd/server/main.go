package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flight-unifier-service/internal/domain/repository"
	"flight-unifier-service/internal/infrastructure/config"
	"flight-unifier-service/internal/infrastructure/persistence"
	"flight-unifier-service/internal/infrastructure/router"
	"flight-unifier-service/internal/interface/handler"
	"flight-unifier-service/internal/interface/queue"
	repo "flight-unifier-service/internal/interface/repository"
	"flight-unifier-service/internal/usecase"
	"flight-unifier-service/pkg/converter"
	"flight-unifier-service/pkg/flightid"
	"flight-unifier-service/pkg/logger"
	"flight-unifier-service/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Flight Unifier Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Normalization tables: built-in, then the tables file, then the alias table
	tables, err := config.LoadTables(cfg.TablesFile)
	if err != nil {
		log.Fatal("Failed to load normalization tables", "error", err)
	}

	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Warn("PostgreSQL unavailable, using built-in airline aliases", "error", err)
	}
	if gormDB != nil {
		airlineRepository := repo.NewGormAirlineRepository(gormDB)
		aliases, err := airlineRepository.ListAliases(ctx)
		if err != nil {
			log.Warn("Failed to load airline aliases", "error", err)
		} else {
			tables = tables.WithAirlineAliases(repo.AliasTable(aliases))
			log.Info("Loaded airline aliases", "count", len(aliases))
		}
	}

	gen := flightid.NewGenerator(flightid.NewNormalizer(tables))
	providerRouter := router.NewProviderRouter(log, converter.NewAll(gen, converter.Options{})...)

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	flightRepo := repo.NewMongoUnifiedFlightRepository(db)
	runRepo := repo.NewMongoIngestionRunRepository(db)
	if err := flightRepo.EnsureIndexes(ctx); err != nil {
		log.Error("Failed to create unified flight indexes", "error", err)
	}
	if err := runRepo.EnsureIndexes(ctx); err != nil {
		log.Error("Failed to create ingestion run indexes", "error", err)
	}

	// Offer index is optional
	var offerIndex repository.OfferIndex = repo.NoopOfferIndex{}
	redisClient, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn("Redis unavailable, offer index disabled", "error", err)
	}
	if redisClient != nil {
		offerIndex = repo.NewRedisOfferIndex(redisClient, cfg.OfferIndexTTL)
		defer redisClient.Close()
	}

	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	unificationService := usecase.NewUnificationService(providerRouter, flightRepo, offerIndex, m, log)

	// Raw batch ingestion from the fetch layer
	if cfg.RabbitMQURL != "" {
		orchestrator := usecase.NewIngestionOrchestrator(runRepo, unificationService, log)
		consumer := queue.NewRawBatchConsumer(cfg.RabbitMQURL, cfg.RawBatchQueue, cfg.QueuePrefetch, orchestrator, log)
		go consumer.StartConsuming(ctx)
	} else {
		log.Info("RABBITMQ_URL not set, queue ingestion disabled")
	}

	// Set up HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("32M"))
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	flightHandler := handler.NewFlightHandler(unificationService, providerRouter.Providers(), log)
	handler.RegisterRoutes(e, flightHandler, promhttp.Handler())

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flight Unifier Service stopped")
}
