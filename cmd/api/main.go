package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"treadmill-storefront/internal/client"
	"treadmill-storefront/internal/config"
	"treadmill-storefront/internal/logger"
	"treadmill-storefront/internal/repository"
	"treadmill-storefront/internal/server"
	"treadmill-storefront/internal/service"
	"treadmill-storefront/internal/session"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := client.InitSqliteClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open catalog database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	productRepo := repository.NewProductRepository(db)
	if err := productRepo.Seed(ctx, cfg.Catalog.Currency); err != nil {
		log.Fatal("failed to seed catalog", zap.Error(err))
	}

	registry := session.NewRegistry(cfg.Session.IdleTimeout, log)
	go registry.Run(ctx, cfg.Session.SweepInterval)

	storefrontService := service.NewStorefrontService(productRepo, cfg.Catalog.Currency, log)

	srv := server.NewServer(storefrontService, registry, cfg.Session.CookieName, log)

	serverAddr := cfg.HTTP.Address()
	log.Info("starting HTTP server",
		zap.String("address", serverAddr),
		zap.String("environment", cfg.Environment.Name))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
