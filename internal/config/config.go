package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	LogLevel               string
	CleanupThreshold       int
	DefaultMaxActiveOrders int
	SweepInterval          time.Duration
	SweepBatchSize         int
	WorkerPoolSize         int
	ShutdownTimeout        time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultLogLevel        = "info"
	defaultMaxActiveOrders = 3
	defaultSweepInterval   = time.Minute
	defaultSweepBatchSize  = 32
	defaultWorkerPoolSize  = 4
	defaultShutdownTimeout = 10 * time.Second
)

// DefaultCleanupThreshold is the per-requester order count that triggers cleanup of Done orders.
const DefaultCleanupThreshold = 20

const (
	keyRunAddress       = "RUN_ADDRESS"
	keyDatabaseURI      = "DATABASE_URI"
	keyLogLevel         = "LOG_LEVEL"
	keyCleanupThreshold = "CLEANUP_THRESHOLD"
	keyMaxActiveOrders  = "DEFAULT_MAX_ACTIVE_ORDERS"
	keySweepInterval    = "SWEEP_INTERVAL"
	keySweepBatchSize   = "SWEEP_BATCH_SIZE"
	keyWorkerPoolSize   = "WORKER_POOL_SIZE"
	keyShutdownTimeout  = "SHUTDOWN_TIMEOUT"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(keyRunAddress, defaultRunAddress)
	v.SetDefault(keyDatabaseURI, "")
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyCleanupThreshold, DefaultCleanupThreshold)
	v.SetDefault(keyMaxActiveOrders, defaultMaxActiveOrders)
	v.SetDefault(keySweepInterval, defaultSweepInterval.String())
	v.SetDefault(keySweepBatchSize, defaultSweepBatchSize)
	v.SetDefault(keyWorkerPoolSize, defaultWorkerPoolSize)
	v.SetDefault(keyShutdownTimeout, defaultShutdownTimeout.String())

	fs := pflag.NewFlagSet("sanda", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringP("run-address", "a", defaultRunAddress, "HTTP server listen address")
	fs.StringP("database-uri", "d", "", "PostgreSQL DSN")
	fs.StringP("log-level", "l", defaultLogLevel, "Log level")
	fs.Int("cleanup-threshold", DefaultCleanupThreshold, "Order count that triggers cleanup of done orders")
	fs.Int("max-active-orders", defaultMaxActiveOrders, "Default active order limit for new volunteers")
	fs.String("sweep-interval", defaultSweepInterval.String(), "Interval between background cleanup sweeps")
	fs.Int("sweep-batch", defaultSweepBatchSize, "Maximum requesters cleaned per sweep")
	fs.Int("worker-pool", defaultWorkerPoolSize, "Number of concurrent cleanup workers")
	fs.String("shutdown-timeout", defaultShutdownTimeout.String(), "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	bindings := map[string]string{
		keyRunAddress:       "run-address",
		keyDatabaseURI:      "database-uri",
		keyLogLevel:         "log-level",
		keyCleanupThreshold: "cleanup-threshold",
		keyMaxActiveOrders:  "max-active-orders",
		keySweepInterval:    "sweep-interval",
		keySweepBatchSize:   "sweep-batch",
		keyWorkerPoolSize:   "worker-pool",
		keyShutdownTimeout:  "shutdown-timeout",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	cfg := &Config{
		RunAddress:             v.GetString(keyRunAddress),
		DatabaseURI:            v.GetString(keyDatabaseURI),
		LogLevel:               v.GetString(keyLogLevel),
		CleanupThreshold:       v.GetInt(keyCleanupThreshold),
		DefaultMaxActiveOrders: v.GetInt(keyMaxActiveOrders),
		SweepBatchSize:         v.GetInt(keySweepBatchSize),
		WorkerPoolSize:         v.GetInt(keyWorkerPoolSize),
	}

	var err error

	if cfg.SweepInterval, err = cast.ToDurationE(v.GetString(keySweepInterval)); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = cast.ToDurationE(v.GetString(keyShutdownTimeout)); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.CleanupThreshold <= 0 {
		cfg.CleanupThreshold = DefaultCleanupThreshold
	}

	if cfg.DefaultMaxActiveOrders <= 0 {
		cfg.DefaultMaxActiveOrders = defaultMaxActiveOrders
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}
