// main.go
package main

import (
	"context"
	"log"
	"os"

	"movie-review/cmd"
	"movie-review/internal/wire"
	"movie-review/pkg/storage"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("db_driver", config.Database.Driver),
		zap.String("storage_driver", config.Storage.Driver),
	)

	ctx := context.Background()

	// Connect to database and build repositories
	repos, closeDB, err := cmd.OpenRepository(ctx, config.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer closeDB()

	tokens, err := utils.NewTokenManager(config.JWT)
	if err != nil {
		logger.Fatal("Failed to init token manager", zap.Error(err))
	}

	uploader, err := storage.New(config.Storage, config.App.PublicBaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to init poster storage", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, tokens, uploader, logger)

	if len(os.Args) > 1 && os.Args[1] == cmd.SeedAdminCommand {
		if err := cmd.SeedAdmin(ctx, app.Service.Admin, os.Args[2:], os.Stdout); err != nil {
			logger.Error("Seed admin failed", zap.Error(err))
			closeDB()
			os.Exit(1)
		}
		return
	}

	cmd.APIServer(app.Router, config.App.Port, logger)
}
