package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-appointments/api"
	"clinic-appointments/appointment"
	"clinic-appointments/blob"
	"clinic-appointments/config"
	"clinic-appointments/database"
	"clinic-appointments/logging"
	"clinic-appointments/metrics"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server exited")
}

// run owns every resource it opens, so deferred closes happen before main
// decides the exit code.
func run(cfg *config.Config, log *logging.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	log.Info("opening storage", "backend", cfg.StorageBackend, "key", cfg.StorageKey)
	blobs, closer, err := openBlobs(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage connect: %w", err)
	}
	defer closer.Close()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	persist := appointment.NewPersister(blobs, cfg.StorageKey, log, m)
	store := appointment.NewStore(persist, idGenerator(cfg), log, m)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}
	log.Info("appointments loaded", "count", store.Len())

	service := api.NewAPI(store, log, m)
	service.RegisterRoutes()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           service.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openBlobs(ctx context.Context, cfg *config.Config) (blob.Store, io.Closer, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return blob.NewRedis(client), client, nil
	case config.BackendPostgres:
		db, err := database.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return blob.NewPostgres(db), db, nil
	default:
		return blob.NewMemory(), nopCloser{}, nil
	}
}

func idGenerator(cfg *config.Config) appointment.IDGenerator {
	if cfg.IDStrategy == config.IDStrategyTimestamp {
		return appointment.NewClockSequence(nil)
	}
	return appointment.UUIDs{}
}
