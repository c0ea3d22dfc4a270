package services

import (
	"github.com/ghuser/smartfridge/pkg/app"
	"github.com/ghuser/smartfridge/pkg/cache"
	"github.com/ghuser/smartfridge/pkg/database"
	"github.com/ghuser/smartfridge/services/fridge/domain/repositories"
	"github.com/ghuser/smartfridge/services/fridge/infrastructure/persistence/memory"
	"github.com/ghuser/smartfridge/services/fridge/infrastructure/persistence/mysql"
	"github.com/ghuser/smartfridge/services/fridge/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Inventory *InventoryManager
}

// New wires the fridge application services with infrastructure from the
// Application container. Without a database the inventory lives in memory.
func New(a *app.Application) *Services {
	var opts []Option
	if a.Redis != nil {
		opts = append(opts, WithAverageCache(cache.NewAverageCache(a.Redis)))
	}
	return &Services{
		Inventory: NewInventoryManager(newStore(a), a.Logger, opts...),
	}
}

func newStore(a *app.Application) repositories.Store {
	if a.Db == nil {
		return memory.New()
	}
	if a.Db.Driver() == database.SQLDriverMySQL {
		return mysql.NewStore(a.Db)
	}
	return postgres.NewStore(a.Db, a.EventBus)
}
