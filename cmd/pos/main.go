package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"papa-pizza/internal/account"
	"papa-pizza/internal/cli"
	"papa-pizza/internal/config"
	"papa-pizza/internal/db"
	"papa-pizza/internal/logger"
	"papa-pizza/internal/menu"
	"papa-pizza/internal/order"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	store := db.InitDB(cfg)
	defer store.Close()

	if err := db.Migrate(store); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
	if err := db.Seed(store); err != nil {
		logger.L().Fatal("seed failed", zap.Error(err))
	}

	accounts := account.NewService(account.NewRepository(store), cfg.SessionSecret)
	catalog := menu.NewService(menu.NewRepository(store))
	orders := order.NewService(order.NewRepository(store), catalog)

	ctx := context.Background()
	if err := catalog.Refresh(ctx); err != nil {
		logger.L().Fatal("menu load failed", zap.Error(err))
	}

	app := cli.NewApp(store, accounts, catalog, orders)

	// ctrl-c nags instead of killing the session, matching the quit flow
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	go func() {
		for range sigCh {
			fmt.Println("\nuse quit to exit")
		}
	}()

	if len(os.Args) > 1 {
		if err := app.DispatchOnce(ctx, strings.Join(os.Args[1:], " ")); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		return
	}

	app.Run(ctx)
}
