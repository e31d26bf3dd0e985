package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/cache"
	"github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/config"
	apihttp "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/http"
	pkgkafka "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/kafka"
	applogger "github.com/JohanLiebertTheRealOne/InsightsAPI/pkg/logger"
)

// App encapsulates the application lifecycle: HTTP serving, cache backend,
// and the optional event producer.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	handler    apihttp.Handler
	httpServer *apihttp.Server
	cacheSvc   cache.Service
	producer   *pkgkafka.Producer
}

// New creates an App. The producer may be nil when events are disabled.
func New(cfg *config.Config, l *applogger.Logger, handler apihttp.Handler, cacheSvc cache.Service, producer *pkgkafka.Producer) *App {
	return &App{
		cfg:      cfg,
		l:        l,
		handler:  handler,
		cacheSvc: cacheSvc,
		producer: producer,
	}
}

// Run starts the HTTP server and blocks until an interrupt arrives.
func (a *App) Run() error {
	a.httpServer = apihttp.NewServer(a.handler,
		apihttp.WithPort(a.cfg.Server.Port),
		apihttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		apihttp.WithLogger(a.l),
	)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.l.Warn("producer close error", applogger.Error(err))
		}
	}

	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
