package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/cache"
	"github.com/TemirB/figurine-cart/internal/cart"
	"github.com/TemirB/figurine-cart/internal/catalog"
	"github.com/TemirB/figurine-cart/internal/config"
	"github.com/TemirB/figurine-cart/internal/database"
	"github.com/TemirB/figurine-cart/internal/domain"
	"github.com/TemirB/figurine-cart/internal/events"
	"github.com/TemirB/figurine-cart/internal/httpapi"
	"github.com/TemirB/figurine-cart/internal/observability"
	"github.com/TemirB/figurine-cart/internal/pkg/circuit"
	"github.com/TemirB/figurine-cart/internal/pkg/pool"
	"github.com/TemirB/figurine-cart/internal/shopapi"
	"github.com/TemirB/figurine-cart/internal/tokenstore"
)

type publisher interface {
	cart.Publisher
	Close() error
}

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.LogEnv)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.Multi{
		observability.NewInmem(256),
		observability.NewPrometheus(reg),
	}

	// Shop API
	breaker := circuit.New(cfg.Breaker)
	breaker.OnStateChange(func(from, to circuit.State) {
		logger.Warn("Shop API breaker state changed",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
	})
	shop := shopapi.New(
		cfg.Shop.URL,
		&http.Client{Timeout: cfg.Shop.Timeout},
		breaker,
		logger.Named("shopapi"),
		metrics,
	)

	// Session token
	store, closeStore, err := openTokenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Token store", zap.Error(err))
	}
	defer closeStore()

	// Events
	pub := openPublisher(ctx, cfg, logger)
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Warn("Closing event publisher", zap.Error(err))
		}
	}()

	// Cart
	client := cart.New(shop, store, pub, logger.Named("cart"), metrics)
	defer client.Detach()
	client.Restore(ctx)
	if err := client.Refresh(ctx); err != nil {
		logger.Warn("Initial cart refresh failed, starting with an empty mirror", zap.Error(err))
	}

	// Catalog
	lru, err := cache.New(cfg.CatalogCacheCap)
	if err != nil {
		logger.Fatal("Catalog cache", zap.Error(err))
	}
	if n, err := lru.Warm(ctx, shop); err != nil {
		logger.Warn("Catalog warm-up failed", zap.Error(err))
	} else {
		logger.Info("Catalog warmed", zap.Int("products", n))
	}
	products := catalog.New(shop, lru, cfg.CatalogCacheCap, logger.Named("catalog"), metrics)

	// HTTP
	server := httpapi.New(
		client,
		products,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		logger.Named("http"),
		metrics,
	)
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		logger.Error("HTTP server", zap.Error(err))
		return
	}
	logger.Info("Shutting down")
}

func newLogger(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func openTokenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (domain.TokenStore, func(), error) {
	switch cfg.Token.Kind {
	case config.TokenStorePostgres:
		db, err := database.Connect(ctx, cfg.DSN(), logger.Named("postgres"), cfg.Retry)
		if err != nil {
			return nil, nil, err
		}
		store := tokenstore.NewPostgres(db, cfg.Tables, cfg.Token.Key)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Session token kept in postgres", zap.String("key", cfg.Token.Key))
		return store, db.Close, nil
	case config.TokenStoreMemory:
		logger.Info("Session token kept in memory only")
		return tokenstore.NewMemory(""), func() {}, nil
	default:
		logger.Info("Session token kept in file", zap.String("path", cfg.Token.File))
		return tokenstore.NewFile(cfg.Token.File), func() {}, nil
	}
}

func openPublisher(ctx context.Context, cfg config.Config, logger *zap.Logger) publisher {
	if !cfg.EventsEnabled() {
		logger.Info("No kafka brokers configured, cart events disabled")
		return events.Noop{}
	}
	if err := events.EnsureTopic(ctx, cfg.Kafka, logger.Named("kafka")); err != nil {
		logger.Warn("Could not ensure cart events topic", zap.Error(err))
	}
	return events.NewKafka(
		events.NewWriter(cfg.Kafka),
		pool.New(cfg.Kafka.Workers),
		cfg.Retry,
		logger.Named("events"),
	)
}
