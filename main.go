// Package main is the entry point for the usermanager command.
// It wires the store, decorators and user service, then runs one command.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"usermanager/src/app/cli"
	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
	"usermanager/src/core/usecase"
	"usermanager/src/infra/config"
	"usermanager/src/infra/db"
	"usermanager/src/infra/logger"
	"usermanager/src/infra/registry"
	"usermanager/src/infra/repo"
	"usermanager/src/infra/seed"
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(cli.ExitInternal)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return 0, err
	}

	log := logger.New(cfg.Log)
	log.Debug("starting usermanager",
		"store", cfg.Store.Backend,
		"validate_names", cfg.Store.ValidateNames,
		"log_level", cfg.Log.Level,
	)

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return 0, err
	}
	defer closeStore()

	var userRepo ports.UserRepository = store
	if cfg.Store.ValidateNames {
		userRepo = repo.NewValidatingRepository(userRepo, domain.HasValidName)
	}
	if cfg.Store.LogOperations {
		userRepo = repo.NewLoggingRepository(userRepo, log)
	}

	reg := registry.Default()
	users := usecase.NewResolvingUserService(reg.Repository, logger.WithComponent(log, "users"))
	if err := reg.Init(users, userRepo); err != nil {
		return 0, err
	}

	if cfg.Store.SeedFile != "" {
		entries, err := seed.Load(cfg.Store.SeedFile)
		if err != nil {
			return 0, err
		}
		if err := seed.Apply(ctx, reg.UserService(), entries); err != nil {
			return 0, fmt.Errorf("failed to seed users: %w", err)
		}
		log.Debug("seed applied", "file", cfg.Store.SeedFile, "users", len(entries))
	}

	health := usecase.NewHealthService(reg.Repository(), log)
	runner := cli.NewRunner(reg.UserService(), reg.Repository(), health, os.Stdout, log)
	return runner.Run(ctx, args), nil
}

// openStore builds the configured backend and returns a function releasing it.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (ports.UserRepository, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pg, err := db.New(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return repo.NewPostgresRepository(pg, log), pg.Close, nil
	default:
		return repo.NewInMemoryRepository(log), func() {}, nil
	}
}
