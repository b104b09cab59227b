package storefront

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/boofmebel/boofmebel/internal/catalog"
	"github.com/boofmebel/boofmebel/internal/checkout"
	"github.com/boofmebel/boofmebel/internal/config"
	"github.com/boofmebel/boofmebel/internal/events"
	"github.com/boofmebel/boofmebel/internal/simulated"
	"github.com/boofmebel/boofmebel/internal/storage"
	"github.com/boofmebel/boofmebel/pkg/circuitbreaker"
)

// Build wires an App from configuration. Background workers (the Kafka publisher)
// are started on ctx and stopped by Close.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var closers []func() error
	fail := func(err error) (*App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	store, closeStore, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeStore)

	cat, closeCatalog, err := OpenCatalog(ctx, cfg.Catalog)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeCatalog)
	log.Info("catalog loaded", zap.String("source", cfg.Catalog.Source), zap.Int("products", len(cat.All())))

	var sinks []checkout.StatusSink
	if cfg.Events.Enabled() {
		writer := events.NewKafkaWriter(cfg.Events.Topic, cfg.Events.Brokers...)
		publisher := events.NewKafkaPublisher(writer, cfg.Events.BufferSize, log.Named("events"))
		runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		done := make(chan struct{})
		go func() {
			defer close(done)
			publisher.Run(runCtx)
		}()
		closers = append(closers, func() error {
			cancel()
			<-done
			return publisher.Close()
		})
		sinks = append(sinks, publisher)
		log.Info("publishing checkout status events", zap.Strings("brokers", cfg.Events.Brokers), zap.String("topic", cfg.Events.Topic))
	}

	var picker simulated.StatusPicker = simulated.AlwaysPaid{}
	if cfg.Simulation.DeclinePercent > 0 {
		picker = simulated.RandomStatus{DeclinePercent: cfg.Simulation.DeclinePercent}
	}

	app, err := New(ctx, Options{
		Store:    store,
		Catalog:  cat,
		CartKey:  cfg.Storage.CartKey,
		ThemeKey: cfg.Storage.ThemeKey,
		Checkout: checkout.Config{
			SettleDelay:  cfg.Checkout.SettleDelay,
			StageTimeout: cfg.Checkout.StageTimeout,
		},
		Breaker: &circuitbreaker.Config{
			MaxFailures: cfg.Checkout.BreakerMaxFailures,
			OpenTimeout: cfg.Checkout.BreakerOpenTimeout,
		},
		Payment: simulated.NewPayment(cfg.Simulation.PaymentDelay, picker, log.Named("payment")),
		Booker:  simulated.NewBooker(cfg.Simulation.BookingDelay, log.Named("booking")),
		Quotes:  simulated.NewQuoter(cfg.Simulation.QuoteDelay),
		Sinks:   sinks,
		Closers: closers,
		Log:     log,
	})
	if err != nil {
		return fail(err)
	}
	return app, nil
}

// OpenStore opens the persistence slot selected by cfg.Driver
func OpenStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, func() error, error) {
	switch cfg.Driver {
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return storage.NewRedisStore(client, cfg.Namespace), client.Close, nil
	case config.StorageMongo:
		db, err := storage.ConnectMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() error {
			return db.Client().Disconnect(context.Background())
		}
		return storage.NewMongoStore(db, cfg.Mongo.Collection, cfg.Namespace), closeFn, nil
	default:
		return storage.NewMemoryStore(), func() error { return nil }, nil
	}
}

// OpenCatalog loads the catalog from the configured source
func OpenCatalog(ctx context.Context, cfg config.CatalogConfig) (*catalog.Catalog, func() error, error) {
	noop := func() error { return nil }
	if cfg.Source != config.CatalogSQLite {
		return catalog.Builtin(), noop, nil
	}
	cat, err := catalog.OpenSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite catalog: %w", err)
	}
	return cat, noop, nil
}
