package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"

	CatalogBuiltin = "builtin"
	CatalogSQLite  = "sqlite"
)

type Config struct {
	App        AppConfig
	Log        LogConfig
	Storage    StorageConfig
	Catalog    CatalogConfig
	Checkout   CheckoutConfig
	Simulation SimulationConfig
	Events     EventsConfig
}

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

type StorageConfig struct {
	Driver    string // memory, redis, mongo
	Namespace string
	CartKey   string
	ThemeKey  string
	Redis     RedisConfig
	Mongo     MongoConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type CatalogConfig struct {
	Source     string // builtin, sqlite
	SQLitePath string
}

type CheckoutConfig struct {
	SettleDelay        time.Duration
	StageTimeout       time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

type SimulationConfig struct {
	PaymentDelay   time.Duration
	BookingDelay   time.Duration
	QuoteDelay     time.Duration
	DeclinePercent int
}

type EventsConfig struct {
	Brokers    []string
	Topic      string
	BufferSize int
}

// Enabled reports whether status events are shipped to Kafka
func (e EventsConfig) Enabled() bool {
	return len(e.Brokers) > 0
}

// Load reads storefront.yaml (if any) and STOREFRONT_* environment overrides.
// An explicit path must exist; otherwise the usual locations are searched.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("storefront")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/storefront")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:            v.GetString("app.name"),
			Env:             v.GetString("app.env"),
			Port:            v.GetString("app.port"),
			ShutdownTimeout: v.GetDuration("app.shutdown_timeout"),
			RequestTimeout:  v.GetDuration("app.request_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(v.GetString("storage.driver")),
			Namespace: v.GetString("storage.namespace"),
			CartKey:   v.GetString("storage.cart_key"),
			ThemeKey:  v.GetString("storage.theme_key"),
			Redis: RedisConfig{
				Addr:     v.GetString("storage.redis.addr"),
				Password: v.GetString("storage.redis.password"),
				DB:       v.GetInt("storage.redis.db"),
			},
			Mongo: MongoConfig{
				URI:        v.GetString("storage.mongo.uri"),
				Database:   v.GetString("storage.mongo.database"),
				Collection: v.GetString("storage.mongo.collection"),
			},
		},
		Catalog: CatalogConfig{
			Source:     strings.ToLower(v.GetString("catalog.source")),
			SQLitePath: v.GetString("catalog.sqlite_path"),
		},
		Checkout: CheckoutConfig{
			SettleDelay:        v.GetDuration("checkout.settle_delay"),
			StageTimeout:       v.GetDuration("checkout.stage_timeout"),
			BreakerMaxFailures: v.GetUint32("checkout.breaker_max_failures"),
			BreakerOpenTimeout: v.GetDuration("checkout.breaker_open_timeout"),
		},
		Simulation: SimulationConfig{
			PaymentDelay:   v.GetDuration("simulation.payment_delay"),
			BookingDelay:   v.GetDuration("simulation.booking_delay"),
			QuoteDelay:     v.GetDuration("simulation.quote_delay"),
			DeclinePercent: v.GetInt("simulation.decline_percent"),
		},
		Events: EventsConfig{
			Brokers:    splitList(v.GetStringSlice("events.brokers")),
			Topic:      v.GetString("events.topic"),
			BufferSize: v.GetInt("events.buffer_size"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "storefront")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.shutdown_timeout", 10*time.Second)
	v.SetDefault("app.request_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.namespace", "boofmebel")
	v.SetDefault("storage.cart_key", "boof-cart")
	v.SetDefault("storage.theme_key", "theme")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongo.database", "storefront")
	v.SetDefault("storage.mongo.collection", "slots")

	v.SetDefault("catalog.source", CatalogBuiltin)
	v.SetDefault("catalog.sqlite_path", "catalog.db")

	v.SetDefault("checkout.settle_delay", 400*time.Millisecond)
	v.SetDefault("checkout.stage_timeout", 5*time.Second)
	v.SetDefault("checkout.breaker_max_failures", 5)
	v.SetDefault("checkout.breaker_open_timeout", 30*time.Second)

	v.SetDefault("simulation.payment_delay", 700*time.Millisecond)
	v.SetDefault("simulation.booking_delay", 500*time.Millisecond)
	v.SetDefault("simulation.quote_delay", 500*time.Millisecond)
	v.SetDefault("simulation.decline_percent", 0)

	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", "checkout-status")
	v.SetDefault("events.buffer_size", 1024)
}

// splitList accepts both yaml lists and comma separated env values
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis, StorageMongo:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	switch c.Catalog.Source {
	case CatalogBuiltin:
	case CatalogSQLite:
		if c.Catalog.SQLitePath == "" {
			return errors.New("catalog.sqlite_path is required for the sqlite catalog")
		}
	default:
		return fmt.Errorf("unsupported catalog source %q", c.Catalog.Source)
	}
	if c.App.Port == "" {
		return errors.New("app.port is required")
	}
	if c.Simulation.DeclinePercent < 0 || c.Simulation.DeclinePercent > 100 {
		return fmt.Errorf("simulation.decline_percent must be within 0..100, got %d", c.Simulation.DeclinePercent)
	}
	if c.Storage.CartKey == "" || c.Storage.ThemeKey == "" {
		return errors.New("storage.cart_key and storage.theme_key are required")
	}
	return nil
}
