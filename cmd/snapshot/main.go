package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"intraday-simulator/internal/app"
	"intraday-simulator/internal/config"
	"intraday-simulator/internal/data"
	"intraday-simulator/internal/logger"
)

func main() {
	var (
		cfgPath      = flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config (optional)")
		outputPath   = flag.String("out", "data/snapshot.json", "Output file path")
		ceiling      = flag.Float64("drawdown-max", 1e12, "Drawdown ceiling used for every capital")
		allowPartial = flag.Bool("allow-partial", false, "Write the snapshot even if some capitals failed")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Backend.Kind == config.BackendSnapshot {
		log.Fatal("snapshot: the source backend must be postgrest or postgres")
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("backend init failed", zap.Error(err))
	}
	defer a.Close()

	fmt.Printf("Building snapshot of %s\n", cfg.Schema.Table)

	snap, failed, err := buildSnapshot(ctx, a.Repo, cfg.Schema.Table, *ceiling, lg)
	if err != nil {
		lg.Fatal("snapshot failed", zap.Error(err))
	}
	if len(failed) > 0 && !*allowPartial {
		lg.Fatal("some capitals failed, nothing written (use -allow-partial)", zap.Float64s("capitals", failed))
	}

	if err := data.SaveSnapshot(snap, *outputPath); err != nil {
		lg.Fatal("save snapshot failed", zap.Error(err))
	}
	fmt.Printf("Saved %d rows to %s\n", len(snap.Rows), *outputPath)
}

// buildSnapshot copies every capital's candidate set. Capitals that fail are
// skipped and returned; listing the capitals themselves must succeed.
func buildSnapshot(ctx context.Context, repo data.Repository, table string, ceiling float64, lg *zap.Logger) (*data.Snapshot, []float64, error) {
	capitals, err := repo.ListDistinctCapitals(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list capitals: %w", err)
	}

	snap := &data.Snapshot{
		Table:     table,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	var failed []float64
	for _, c := range capitals {
		rows, err := repo.ListScenarios(ctx, c, ceiling)
		if err != nil {
			lg.Warn("capital skipped", zap.Float64("capital", c), zap.Error(err))
			failed = append(failed, c)
			continue
		}
		lg.Info("capital copied", zap.Float64("capital", c), zap.Int("rows", len(rows)))
		snap.Rows = append(snap.Rows, rows...)
	}
	return snap, failed, nil
}
