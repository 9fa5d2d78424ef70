package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/integrations/stripepay"
	"tutorhub/internal/jobs"
	"tutorhub/internal/pkg/keylock"
	"tutorhub/internal/pkg/logger"
	"tutorhub/internal/repository"
	"tutorhub/internal/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("db connect failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := server.Deps{Config: cfg, DB: db, Log: zl}

	if cfg.RedisAddr != "" {
		client, err := keylock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zl.Fatal("redis connect failed", zap.Error(err))
		}
		defer client.Close()
		deps.Locker = keylock.NewRedis(client, "tutorhub:lock:", cfg.LockTTL)
		zl.Info("using redis schedule locks", zap.String("addr", cfg.RedisAddr))
	}

	if cfg.PaymentsEnabled() {
		deps.Payments = stripepay.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	}

	srv, err := server.New(deps)
	if err != nil {
		zl.Fatal("router setup failed", zap.Error(err))
	}
	defer srv.Hub.Close()

	if cfg.AdminEmail != "" {
		created, err := srv.Auth.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			zl.Fatal("ensure admin failed", zap.Error(err))
		}
		if created {
			zl.Info("admin account created", zap.String("email", cfg.AdminEmail))
		}
	}

	sweep, err := jobs.NewScheduler(cfg.CompletionSweepSchedule, srv.Bookings, zl.Named("sweep"))
	if err != nil {
		zl.Fatal("invalid COMPLETION_SWEEP_SCHEDULE", zap.Error(err))
	}
	sweep.Start()

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sweep.Stop(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
