// The migrate command applies the SQL schema migrations and exits.
package main

import (
	"fmt"
	"os"

	"github.com/recipewhirl/backend/internal/infrastructure/config"
	"github.com/recipewhirl/backend/internal/infrastructure/persistence/migrations"
	"github.com/recipewhirl/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	databaseURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
		cfg.Database.SSLMode,
	)

	if err := migrations.Run(cfg.Database.MigrationsPath, databaseURL, log); err != nil {
		log.Fatal("Migration failed: " + err.Error())
	}
}
