// Package app holds the shared infrastructure handed to every bounded context.
package app

import (
	"github.com/ghuser/smartfridge/pkg/cache"
	"github.com/ghuser/smartfridge/pkg/config"
	"github.com/ghuser/smartfridge/pkg/database"
	"github.com/ghuser/smartfridge/pkg/events"
	"github.com/ghuser/smartfridge/pkg/logger"
	"github.com/ghuser/smartfridge/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to every service's route or worker registration during startup.
//
// Only Logger and Config are always set. Db is nil with the memory storage
// driver, EventBus is nil unless the driver is postgres, Redis is nil when
// the cache is disabled and TemporalClient is nil when Temporal is disabled.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item added", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
}
