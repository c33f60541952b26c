// Package app wires configuration to a repository and engine. It is shared
// by the API server, the CLI and the snapshot tool.
package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"intraday-simulator/internal/config"
	"intraday-simulator/internal/data"
	"intraday-simulator/internal/format"
	"intraday-simulator/internal/simulation"
)

// App bundles the components every entry point needs.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Repo      data.Repository
	Engine    *simulation.Engine
	Formatter format.Formatter

	closers []func()
}

// New opens the configured backend.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: logger, Formatter: format.New(cfg.Locale)}

	repo, err := a.openRepository(ctx)
	if err != nil {
		return nil, err
	}
	a.Repo = repo
	a.Engine = simulation.New(repo, logger)

	logger.Info("backend ready",
		zap.String("kind", cfg.Backend.Kind),
		zap.String("table", cfg.Schema.Table),
		zap.String("ratio_column", cfg.Schema.RatioColumn),
	)
	return a, nil
}

func (a *App) openRepository(ctx context.Context) (data.Repository, error) {
	b := a.Config.Backend
	switch b.Kind {
	case config.BackendPostgREST:
		return data.NewPostgRESTClient(b.APIKey, b.BaseURL,
			data.WithHTTPClient(&http.Client{Timeout: b.Timeout}),
			data.WithRESTPath(b.RESTPath),
			data.WithSchema(a.Config.Schema),
			data.WithLogger(a.Logger),
		), nil
	case config.BackendPostgres:
		pool, err := data.NewPool(ctx, b.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		return data.NewPostgresRepository(pool, a.Config.Schema, a.Logger), nil
	case config.BackendSnapshot:
		return data.OpenSnapshotRepository(b.SnapshotPath)
	default:
		return nil, fmt.Errorf("unsupported backend kind: %q", b.Kind)
	}
}

// Close releases backend resources.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
