package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-triage/internal/api/http"
	"github.com/spec-kit/ticket-triage/internal/api/http/handlers"
	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/dedupe"
	"github.com/spec-kit/ticket-triage/internal/events"
	"github.com/spec-kit/ticket-triage/internal/llm"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/persistence"
	"github.com/spec-kit/ticket-triage/internal/pipeline"
	"github.com/spec-kit/ticket-triage/internal/repository"
	"github.com/spec-kit/ticket-triage/internal/service"
	"github.com/spec-kit/ticket-triage/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var redisStore *persistence.Redis
	var registry dedupe.Registry
	if strings.EqualFold(cfg.Dedupe.Backend, "redis") {
		redisStore = persistence.NewRedis(cfg.Redis, logger)
		defer redisStore.Close()
		registry = dedupe.NewRedisRegistry(redisStore.Client)
	} else {
		registry = dedupe.NewMemoryRegistry()
	}

	metrics := observability.NewMetrics()
	analyzer := llm.NewClient(cfg.LLM, logger)
	orchestrator := pipeline.NewOrchestrator(pipeline.Dependencies{
		Analyzer: analyzer,
		Registry: registry,
		Logger:   logger,
		Metrics:  metrics,
	})

	dispatcher := events.NewInMemoryDispatcher()

	var feedbackRepo repository.FeedbackRepository
	var assignmentRepo repository.AssignmentRepository
	if pool := pg.PoolHandle(); pool != nil {
		feedbackRepo = repository.NewFeedbackRepository(pool)
		assignmentRepo = repository.NewAssignmentRepository(pool)
	}

	triageService := service.NewTriageService(service.TriageDependencies{
		Orchestrator:   orchestrator,
		FeedbackRepo:   feedbackRepo,
		AssignmentRepo: assignmentRepo,
		Dispatcher:     dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisStore)
	ticketsHandler := handlers.NewTicketsHandler(triageService, orchestrator, analyzer)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  healthHandler,
		Tickets: ticketsHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
