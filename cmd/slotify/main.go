package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotify/internal/api"
	"slotify/internal/app"
	"slotify/internal/config"
	"slotify/internal/domain"
	"slotify/internal/events"
	"slotify/internal/flow"
	"slotify/internal/logging"
	"slotify/internal/metrics"
	"slotify/internal/models"
	"slotify/internal/profile"
	"slotify/internal/repository"
	"slotify/internal/store"
	"slotify/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, loadErr := loadConfigAndLogger()
	if loadErr != nil {
		return loadErr
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	profiles, err := profile.Open(cfg.Storage.ProfilePath)
	if err != nil {
		return err
	}
	defer profiles.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flowRepo := initFlowRepository(ctx, cfg, &logger)

	eventBus := events.NewEventBus()

	client := api.NewClient(cfg.API.BaseURL, profiles, &logger)
	adminClient := api.NewAdminClient(cfg.API.AdminBaseURL, profiles, &logger)

	st := store.New(client, profiles, eventBus, &logger)
	if err := st.Auth.Restore(ctx); err != nil {
		logger.Warn().Err(err).Msg("session restore failed")
	}

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		go startMonitoring(cfg, &logger)
	}

	if cfg.Notifications.PollEnabled {
		policy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
		poller := worker.NewNotificationPoller(st,
			time.Duration(cfg.Notifications.PollIntervalSeconds)*time.Second,
			cfg.Notifications.PollBurst, policy, &logger)
		go poller.Start(ctx)
	}

	sessionID := uuid.New().String()
	authFlow := flow.NewAuthFlow(st.Auth, flowRepo, sessionID, &logger)
	paymentFlow := flow.NewPaymentFlow(client, st.Bookings, flowRepo, sessionID, cfg.Payment.SuccessMessage, &logger)

	a := app.New(cfg, st, authFlow, paymentFlow, adminClient, flowRepo, eventBus, sessionID, os.Stdin, os.Stdout, &logger)
	return a.Run(ctx)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := logging.Component(baseLogger, "main")

	return cfg, logger, closer, nil
}

func initFlowRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.FlowRepository {
	ttl := time.Duration(models.DefaultFlowTTL) * time.Second
	fallback := repository.NewMemoryFlowRepository(ttl)

	if cfg.Redis.Address == "" {
		return fallback
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if errPing := repository.Ping(ctx, redisClient); errPing != nil {
		logger.Warn().Err(errPing).Msg("Redis unavailable")
	}
	primary := repository.NewRedisFlowRepository(redisClient, ttl)
	return repository.NewFailoverFlowRepository(primary, fallback, logger)
}

func startMonitoring(cfg *config.Config, logger *zerolog.Logger) {
	addr := fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort)
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logger.Info().Str("addr", addr).Msg("Starting metrics listener")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("Metrics listener error")
	}
}
