// Command cartevents tails the cart events topic and serves a running tally
// of operations, unwinds and session resets.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/config"
	"github.com/TemirB/figurine-cart/internal/events"
	"github.com/TemirB/figurine-cart/internal/pkg/pool"
)

func main() {
	cfg := config.Load()

	newLogger := zap.NewDevelopment
	if cfg.LogEnv == "production" {
		newLogger = zap.NewProduction
	}
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.EventsEnabled() {
		logger.Fatal("KAFKA_BROKERS is empty, nothing to tail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := events.NewReader(cfg.Kafka)
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Warn("Closing kafka reader", zap.Error(err))
		}
	}()

	workers := pool.New(cfg.Kafka.Workers)
	defer workers.Close()

	tally := events.NewTally()
	consumer := events.NewConsumer(tally, reader, workers, cfg.Retry, logger.Named("consumer"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Run(ctx)
	}()

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tally.Snapshot()); err != nil {
			logger.Warn("Encoding stats", zap.Error(err))
		}
	})

	srv := &http.Server{
		Addr:              cfg.TailAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	logger.Info("Serving cart event stats", zap.String("addr", cfg.TailAddr), zap.String("topic", cfg.Kafka.Topic))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Stats server", zap.Error(err))
		stop()
	}

	wg.Wait()
	logger.Info("Shutting down")
}
