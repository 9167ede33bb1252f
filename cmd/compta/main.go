package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/compta_core/internal/commands"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/core/services"
	"github.com/SscSPs/compta_core/internal/platform/config"
	"github.com/SscSPs/compta_core/internal/repositories/database/pgsql"
	"github.com/SscSPs/compta_core/pkg/database"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	env := commands.Env{
		Services: func(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
			cfg, err := config.LoadConfig()
			if err != nil {
				return nil, nil, fmt.Errorf("loading config: %w", err)
			}
			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
			if err != nil {
				return nil, nil, fmt.Errorf("connecting to database: %w", err)
			}
			repos := pgsql.NewRepositoryProvider(pool, cfg.AccountCacheTTL)
			return services.NewServiceContainer(cfg, repos, services.NewLogAuditRecorder(logger)), pool.Close, nil
		},
		Migrate: func(_ context.Context) (bool, error) {
			cfg, err := config.LoadConfig()
			if err != nil {
				return false, fmt.Errorf("loading config: %w", err)
			}
			return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL, logger)
		},
	}

	if err := commands.NewRootCommand(env).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
