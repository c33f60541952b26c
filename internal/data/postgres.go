package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"intraday-simulator/internal/model"
)

// PostgresRepository reads the scenario table directly, bypassing the REST gateway.
// It issues the same two reads as PostgRESTClient.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	schema Schema
	logger *zap.Logger
}

// NewPool creates and pings a connection pool.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func NewPostgresRepository(pool *pgxpool.Pool, schema Schema, logger *zap.Logger) *PostgresRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresRepository{
		pool:   pool,
		schema: schema,
		logger: logger.With(zap.String("component", "postgres")),
	}
}

var _ Repository = (*PostgresRepository)(nil)

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// capitalsSQL lists distinct non-null capitals in ascending order.
func (r *PostgresRepository) capitalsSQL() string {
	col := ident(r.schema.CapitalColumn)
	return fmt.Sprintf(`SELECT DISTINCT %s::float8 FROM %s WHERE %s IS NOT NULL ORDER BY 1`,
		col, ident(r.schema.Table), col)
}

// scenarioColumn is one selected column; unmapped fields select NULL.
func scenarioColumn(name, cast string) string {
	if name == "" {
		return "NULL::" + cast
	}
	return ident(name) + "::" + cast
}

// scenariosSQL selects every mapped field with casts matching the scan targets.
func (r *PostgresRepository) scenariosSQL() string {
	s := r.schema
	cols := []string{
		scenarioColumn(s.AssetColumn, "text"),
		scenarioColumn(s.CapitalColumn, "float8"),
		scenarioColumn(s.DrawdownColumn, "float8"),
		scenarioColumn(s.GainColumn, "float8"),
		scenarioColumn(s.RiskPerTradeColumn, "float8"),
		scenarioColumn(s.CapitalUsedAtSellColumn, "float8"),
		scenarioColumn(s.WinRateColumn, "float8"),
		scenarioColumn(s.AnnualizedReturnColumn, "float8"),
		scenarioColumn(s.RatioColumn, "float8"),
		scenarioColumn(s.TradeCountColumn, "int8"),
	}
	return fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s <= $2`,
		strings.Join(cols, ", "), ident(s.Table), ident(s.CapitalColumn), ident(s.DrawdownColumn))
}

// transportError classifies a query failure the way PostgRESTClient does:
// the database is the backend, so every failure reaching it is a transport failure.
func (r *PostgresRepository) transportError(op string, err error) error {
	r.logger.Warn("query failed", zap.String("op", op), zap.Error(err))
	return &TransportError{Op: op, Err: err}
}

func (r *PostgresRepository) ListDistinctCapitals(ctx context.Context) ([]float64, error) {
	const op = "list capitals"
	rows, err := r.pool.Query(ctx, r.capitalsSQL())
	if err != nil {
		return nil, r.transportError(op, err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[float64])
	if err != nil {
		return nil, r.transportError(op, err)
	}
	capitals := uniqueSorted(values)
	r.logger.Info("capitals loaded", zap.Int("distinct", len(capitals)))
	return capitals, nil
}

func (r *PostgresRepository) ListScenarios(ctx context.Context, capital, drawdownMax float64) ([]model.ScenarioRecord, error) {
	const op = "list scenarios"
	rows, err := r.pool.Query(ctx, r.scenariosSQL(), capital, drawdownMax)
	if err != nil {
		return nil, r.transportError(op, err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ScenarioRecord, error) {
		var (
			rec   model.ScenarioRecord
			asset *string
		)
		err := row.Scan(
			&asset,
			&rec.Capital,
			&rec.DrawdownMax,
			&rec.Gain,
			&rec.RiskPerTrade,
			&rec.CapitalUsedAtSell,
			&rec.WinRate,
			&rec.AnnualizedReturn,
			&rec.RiskAdjustedRatio,
			&rec.TradeCount,
		)
		if asset != nil {
			rec.Asset = *asset
		}
		return rec.Normalize(), err
	})
	if err != nil {
		return nil, r.transportError(op, err)
	}
	r.logger.Info("scenarios loaded",
		zap.Float64("capital", capital),
		zap.Float64("drawdown_max", drawdownMax),
		zap.Int("rows", len(records)))
	return records, nil
}
