package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/sanda/internal/app"
	"github.com/polkiloo/sanda/internal/config"
	"github.com/polkiloo/sanda/internal/logger"
	"github.com/polkiloo/sanda/internal/pkg/auth"
	"github.com/polkiloo/sanda/internal/server/http/router"
	"github.com/polkiloo/sanda/internal/storage/postgres"
	"github.com/polkiloo/sanda/internal/usecase"
)

// Module assembles the full application graph. Extra options are appended last,
// so callers can fx.Replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
