package cmd

import (
	"context"
	"fmt"

	"movie-review/internal/data/repository"
	"movie-review/pkg/database"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

// OpenRepository connects the configured driver and returns the repositories
// plus a close func. The postgres schema is created when missing.
func OpenRepository(ctx context.Context, cfg utils.DatabaseConfig, logger *zap.Logger) (*repository.Repository, func(), error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("Using in-memory database, data is lost on restart")
		return repository.NewMemoryRepository(), func() {}, nil

	case "postgres", "":
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Database connected successfully")
		return repository.NewRepository(db, logger), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
