package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeops-service/internal/infrastructure/config"
	"homeops-service/internal/infrastructure/persistence"
	"homeops-service/internal/interface/api"
	"homeops-service/internal/interface/calendarfeed"
	"homeops-service/internal/interface/extract"
	"homeops-service/internal/interface/holidayapi"
	"homeops-service/internal/interface/repository"
	"homeops-service/internal/usecase"
	"homeops-service/pkg/logger"
	"homeops-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting HomeOps Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Relational store
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Document archive
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	mongoDB := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Set up repositories
	memberRepo := repository.NewGormMemberRepository(gormDB)
	travelRepo := repository.NewGormTravelRepository(gormDB)
	activityRepo := repository.NewGormActivityRepository(gormDB)
	surveyRepo := repository.NewGormSurveyRepository(gormDB)
	settingsRepo := repository.NewGormSettingsRepository(gormDB)
	holidayRepo := repository.NewGormHolidayRepository(gormDB)
	documentRepo := repository.NewMongoDocumentRepository(mongoDB)

	// Metrics
	appMetrics := metrics.NewMetrics("homeops")

	// Usecases
	itineraryUC := usecase.NewItineraryUsecase(
		memberRepo, travelRepo, documentRepo,
		extract.NewPDFExtractor(), extract.NewOCRExtractor(),
		log, appMetrics,
	)
	calendarSyncUC := usecase.NewCalendarSyncUsecase(
		settingsRepo, memberRepo, travelRepo,
		calendarfeed.NewHTTPFetcher(cfg.FeedTimeout),
		log, appMetrics,
	)
	responseParserUC := usecase.NewResponseParserUsecase(
		memberRepo, travelRepo, activityRepo,
		log, appMetrics,
	)
	holidayUC := usecase.NewHolidayUsecase(
		holidayRepo,
		holidayapi.NewClient(cfg.FeedTimeout),
		log,
	)

	// HTTP server
	apiServer := api.NewServer(
		memberRepo, travelRepo, activityRepo, surveyRepo, documentRepo, settingsRepo,
		itineraryUC, calendarSyncUC, responseParserUC, holidayUC,
		api.Config{UploadDir: cfg.UploadDir},
		log,
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", apiServer.Router())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("HomeOps Service stopped")
}
