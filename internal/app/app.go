package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/blog-backend/internal/data/db"
	httpserver "github.com/yungbote/blog-backend/internal/http"
	"github.com/yungbote/blog-backend/internal/observability"
	"github.com/yungbote/blog-backend/internal/platform/logger"
	"github.com/yungbote/blog-backend/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	Store    *db.Service
	Cfg      Config
	Metrics  *observability.Metrics
	Clients  Clients
	Repos    Repos
	Services Services
	Server   *httpserver.Server

	otelShutdown func(context.Context) error
}

// NewLogger builds the process logger from LOG_MODE.
func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// New opens the store, migrates it and wires every layer. Close releases
// whatever New acquired, including on partial failure.
func New(ctx context.Context, log *logger.Logger) (*App, error) {
	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		return nil, err
	}

	a := &App{Log: log, Cfg: cfg}
	a.otelShutdown = observability.InitOTel(ctx, log, cfg.Otel)
	a.Metrics = observability.Init(log, cfg.MetricsEnabled)

	a.Store, err = db.NewService(log, cfg.DB)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := a.Store.Migrate(); err != nil {
		a.Close()
		return nil, err
	}

	a.Clients, err = wireClients(ctx, log, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Repos = wireRepos(a.Store.DB(), log)
	a.Services, err = wireServices(a.Store.DB(), log, cfg, a.Repos, a.Clients, a.Metrics)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Server = wireServer(a.Store.DB(), log, cfg, a.Services, a.Metrics)
	return a, nil
}

// Run serves HTTP until ctx is cancelled or the listener fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	a.Metrics.StartDBCollector(gctx, a.Log, a.Store.DB(), 15*time.Second)
	a.Metrics.StartRedisCollector(gctx, a.Log, a.Clients.Redis, 15*time.Second)

	if a.Clients.Bus != nil {
		eventLog := a.Log.With("component", "EngagementEvents")
		err := a.Clients.Bus.StartForwarder(gctx, func(ev realtime.Event) {
			eventLog.Debug("engagement event", "type", ev.Type, "post_id", ev.PostID, "actor_id", ev.ActorID)
		})
		if err != nil {
			return fmt.Errorf("start event forwarder: %w", err)
		}
	}

	addr := ":" + a.Cfg.Port
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", addr)
		return a.Server.Run(gctx, addr, a.Cfg.ShutdownTimeout)
	})
	err := g.Wait()
	a.Log.Info("HTTP server stopped")
	return err
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("close db", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown", "error", err)
		}
		cancel()
	}
	a.Log.Sync()
}

// Migrate opens the configured store and applies the schema without serving.
func Migrate(log *logger.Logger) error {
	cfg, err := LoadConfig(log)
	if err != nil {
		return err
	}
	store, err := db.NewService(log, cfg.DB)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer store.Close()
	return store.Migrate()
}
