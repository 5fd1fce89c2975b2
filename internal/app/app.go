package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/sanda/internal/config"
	"github.com/polkiloo/sanda/internal/server/http/handlers"
	"github.com/polkiloo/sanda/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewFacade,
		func(f *Facade) handlers.Facade { return f },
		newHTTPServer,
		newCleanupSweeper,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *Facade
	Config *config.Config
	Logger *zap.Logger
}

func newCleanupSweeper(p workerParams) *worker.CleanupSweeper {
	return worker.NewCleanupSweeper(
		p.Facade,
		p.Config.SweepInterval,
		p.Config.SweepBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger.Named("sweeper"),
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *zap.Logger
	Server     *http.Server
	Sweeper    *worker.CleanupSweeper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	// The start context expires once startup completes, so the sweeper runs on its own.
	p.Lifecycle.Append(fx.StartStopHook(
		func() { p.Sweeper.Start(context.Background()) },
		p.Sweeper.Stop,
	))

	// Appended last so fx stops serving requests before the sweeper.
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("starting sanda", zap.String("addr", p.Server.Addr))
			go serve(p.Server, p.Shutdowner, p.Logger)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
				defer cancel()
			}
			if err := p.Server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("sanda stopped")
			return nil
		},
	})
}

func serve(server *http.Server, shutdowner fx.Shutdowner, logger *zap.Logger) {
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server terminated", zap.Error(err))
		_ = shutdowner.Shutdown()
	}
}
