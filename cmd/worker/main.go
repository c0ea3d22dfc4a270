package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/smartfridge/pkg/app"
	"github.com/ghuser/smartfridge/pkg/cache"
	"github.com/ghuser/smartfridge/pkg/config"
	"github.com/ghuser/smartfridge/pkg/database"
	"github.com/ghuser/smartfridge/pkg/events"
	"github.com/ghuser/smartfridge/pkg/logger"
	"github.com/ghuser/smartfridge/pkg/telemetry"
	"github.com/ghuser/smartfridge/pkg/workflows"
	appsvcs "github.com/ghuser/smartfridge/services/fridge/application/services"
	"github.com/ghuser/smartfridge/services/fridge/application/subscribers"
	fridgeWorkflows "github.com/ghuser/smartfridge/services/fridge/application/workflows"
	fridgeEvents "github.com/ghuser/smartfridge/services/fridge/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig := &app.Application{
		Config: cfg,
		Logger: log,
	}

	if cfg.StorageDriver != config.DriverMemory {
		driver, err := database.SQLDriver(cfg.StorageDriver)
		if err != nil {
			log.Error("unsupported storage driver", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		pool, err := database.NewPool(ctx, driver, cfg.DSN(), log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer pool.Close()
		appConfig.Db = pool
		log.Info("database pool connected", "driver", driver)
	}

	if cfg.StorageDriver == config.DriverPostgres {
		eventBus, err := events.NewEventBus(cfg, log)
		if err != nil {
			log.Error("failed to setup event bus", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer eventBus.Close() //nolint:errcheck
		appConfig.EventBus = eventBus
	}

	if cfg.CacheEnabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		appConfig.Redis = redisClient
		log.Info("redis connected")
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if cfg.TemporalEnabled {
		stop, err := startTemporalWorker(ctx, appConfig)
		if err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer stop()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	if a.EventBus == nil || a.Redis == nil {
		a.Logger.Info("event subscribers disabled", "event_bus", a.EventBus != nil, "cache", a.Redis != nil)
		return nil
	}

	handler := subscribers.InvalidateAverage(cache.NewAverageCache(a.Redis), a.Logger)
	for _, topic := range fridgeEvents.Topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
				telemetry.CaptureError(err, map[string]string{"topic": topic})
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", fridgeEvents.Topics)
	return nil
}

// startTemporalWorker runs the restock report worker and makes sure its cron
// run exists. The returned func stops the worker and closes the client.
func startTemporalWorker(ctx context.Context, a *app.Application) (func(), error) {
	cfg := a.Config
	if cfg.StorageDriver == config.DriverMemory {
		a.Logger.Warn("restock report reads the worker's own in-memory inventory, not the API's")
	}

	tc, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, a.Logger)
	if err != nil {
		return nil, err
	}
	a.TemporalClient = tc

	w := tc.NewWorker(cfg.TemporalTaskQueue)
	fridgeWorkflows.Register(w, &fridgeWorkflows.Activities{
		Inventory: appsvcs.New(a).Inventory,
		Log:       a.Logger,
	})
	if err := w.Start(); err != nil {
		tc.Close()
		return nil, err
	}

	if err := tc.StartCron(ctx,
		fridgeWorkflows.RestockReportWorkflowID,
		cfg.TemporalTaskQueue,
		cfg.RestockCron,
		fridgeWorkflows.RestockReportWorkflowName,
		fridgeWorkflows.RestockReportInput{Threshold: cfg.RestockThreshold},
	); err != nil {
		w.Stop()
		tc.Close()
		return nil, err
	}

	a.Logger.Info("temporal worker started", "task_queue", cfg.TemporalTaskQueue, "cron", cfg.RestockCron)
	return func() {
		w.Stop()
		tc.Close()
	}, nil
}
