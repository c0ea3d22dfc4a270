package main

import (
	"embed"
	"io/fs"

	"github.com/ghuser/smartfridge/pkg/config"
	"github.com/ghuser/smartfridge/pkg/database"
	"github.com/ghuser/smartfridge/pkg/migrator"
)

//go:embed postgres/*.sql mysql/*.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if cfg.StorageDriver == config.DriverMemory {
		return
	}
	driver, err := database.SQLDriver(cfg.StorageDriver)
	if err != nil {
		panic(err)
	}
	files, err := fs.Sub(MigrationsFS, cfg.StorageDriver)
	if err != nil {
		panic(err)
	}
	if err := migrator.RunMigrations(driver, cfg.DSN(), files); err != nil {
		panic(err)
	}
}
