package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-writing-api/internal/config"
	"github.com/noah-isme/gema-writing-api/internal/database"
	"github.com/noah-isme/gema-writing-api/internal/evaluator"
	"github.com/noah-isme/gema-writing-api/internal/events"
	"github.com/noah-isme/gema-writing-api/internal/handler"
	"github.com/noah-isme/gema-writing-api/internal/middleware"
	"github.com/noah-isme/gema-writing-api/internal/repository"
	"github.com/noah-isme/gema-writing-api/internal/router"
	"github.com/noah-isme/gema-writing-api/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("report cache disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("evaluation events disabled")
			natsConn = nil
		} else {
			defer natsConn.Drain()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	engine := evaluator.New(cfg.EvaluatorOptions()...)

	topicRepo := repository.NewTopicRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	topicService := service.NewTopicService(topicRepo, validate, logger)
	evaluationService := service.NewEvaluationService(
		evaluationRepo,
		topicRepo,
		engine,
		redisClient,
		events.NewNATSPublisher(natsConn, cfg.EventsSubject),
		validate,
		logger,
		service.EvaluationConfig{
			CacheTTL:         cfg.ReportCacheTTL,
			StripMarkup:      cfg.StripMarkup,
			MaxRequiredWords: cfg.MaxRequiredWords,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AccessLog: os.Stdout})
	router.Register(app, cfg, router.Dependencies{
		EvaluationHandler: handler.NewEvaluationHandler(
			evaluationService,
			validate,
			middleware.RateLimit("evaluations", cfg.RateLimitMax, cfg.RateLimitWindow),
			logger,
		),
		TopicHandler:  handler.NewTopicHandler(topicService, validate, logger),
		JWTMiddleware: middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	logger.Info().
		Str("address", cfg.HTTPAddress()).
		Bool("cap_vocabulary", engine.CapsVocabulary()).
		Msg("writing api started")

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
