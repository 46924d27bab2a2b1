package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arkawidia/lisensia-backend/internal/cron"
	"github.com/arkawidia/lisensia-backend/internal/licenses"
	"github.com/arkawidia/lisensia-backend/internal/reminder"
	"github.com/arkawidia/lisensia-backend/internal/whatsapp"
	"github.com/arkawidia/lisensia-backend/pkg/config"
	"github.com/arkawidia/lisensia-backend/pkg/db"
	"github.com/arkawidia/lisensia-backend/pkg/logger"
	"github.com/arkawidia/lisensia-backend/pkg/metrics"
	"github.com/arkawidia/lisensia-backend/pkg/migrate"
	"github.com/arkawidia/lisensia-backend/pkg/redis"
)

const lockKeyFormat = "lisensia:reminder-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "reminder-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "reminder-worker"

	logg = logger.New(logger.Options{
		ServiceName: "reminder-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	channel, err := whatsapp.NewExecChannel(cfg.WhatsApp)
	if err != nil {
		logg.Error(context.Background(), "failed to create whatsapp channel", err)
		os.Exit(1)
	}

	licenseRepo := licenses.NewRepository(dbClient.DB())

	reminderJob, err := reminder.NewJob(reminder.JobParams{
		Logger:   logg,
		Licenses: licenseRepo,
		Channel:  channel,
		LeadDays: cfg.Reminder.LeadDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reminder job", err)
		os.Exit(1)
	}

	statusJob, err := reminder.NewStatusJob(reminder.StatusJobParams{
		Logger:   logg,
		Licenses: licenseRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create status job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create worker lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(statusJob, reminderJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create worker service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting reminder worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "reminder worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "reminder worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
