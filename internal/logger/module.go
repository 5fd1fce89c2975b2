package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/sanda/internal/config"
)

// Module wires zap logger for dependency injection.
var Module = fx.Options(
	fx.Provide(newFromConfig),
	fx.Invoke(registerLifecycle),
)

func newFromConfig(cfg *config.Config) (*zap.Logger, error) {
	return New(cfg.LogLevel)
}

func registerLifecycle(lc fx.Lifecycle, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stdout sync fails on some terminals; nothing to recover.
			_ = log.Sync()
			return nil
		},
	})
}
