package main

import (
	"flag"

	"papa-pizza/internal/config"
	"papa-pizza/internal/db"
	"papa-pizza/internal/logger"

	"go.uber.org/zap"
)

func main() {
	mode := flag.String("mode", "up", "migration direction: up or down")
	seed := flag.Bool("seed", false, "seed the menu and admin account after migrating up")
	flag.Parse()

	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	store := db.InitDB(cfg)
	defer store.Close()

	switch *mode {
	case "up":
		if err := db.Migrate(store); err != nil {
			logger.L().Fatal("migration failed", zap.Error(err))
		}
		if *seed {
			if err := db.Seed(store); err != nil {
				logger.L().Fatal("seed failed", zap.Error(err))
			}
		}
	case "down":
		if err := db.Rollback(store); err != nil {
			logger.L().Fatal("rollback failed", zap.Error(err))
		}
	default:
		logger.L().Fatal("unknown mode", zap.String("mode", *mode))
	}

	logger.L().Info("done", zap.String("mode", *mode))
}
