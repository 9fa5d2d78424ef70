package main

import (
	"context"
	"log"
	"time"

	"tutorhub/internal/config"
	"tutorhub/internal/database"
	"tutorhub/internal/jobs"
	"tutorhub/internal/modules/booking"
	"tutorhub/internal/pkg/keylock"
	"tutorhub/internal/pkg/logger"
	"tutorhub/internal/repository"
)

// booking_sweep completes every confirmed booking whose slot has ended, once.
// Use it from an external scheduler when the API runs with the sweep disabled.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var locker keylock.Locker = keylock.NewLocal()
	if cfg.RedisAddr != "" {
		client, err := keylock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()
		locker = keylock.NewRedis(client, "tutorhub:lock:", cfg.LockTTL)
	}

	bookings := booking.NewService(
		repository.NewBookingRepository(db),
		repository.NewTutorRepository(db),
		locker,
		nil,
		nil,
		zl.Named("booking"),
	)

	scheduler, err := jobs.NewScheduler("", bookings, zl.Named("sweep"))
	if err != nil {
		log.Fatal(err)
	}
	n, err := scheduler.RunOnce(ctx)
	if err != nil {
		log.Fatalf("booking sweep failed: %v", err)
	}
	log.Printf("booking sweep completed: completed=%d", n)
}
