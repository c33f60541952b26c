package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"intraday-simulator/internal/analysis"
	"intraday-simulator/internal/data"
	"intraday-simulator/internal/model"
)

// Request is one "run selection" invocation.
type Request struct {
	Capital     float64         `json:"capital"`
	DrawdownMax float64         `json:"drawdown_max"`
	Objective   model.Objective `json:"objective"`
}

// InvalidInputError is returned before any backend query is issued.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsInvalidInput reports whether err is (or wraps) an *InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

// Validate checks the request. Capital and drawdown ceiling must be finite and > 0.
func (r Request) Validate() error {
	if err := positive("capital", r.Capital); err != nil {
		return err
	}
	if err := positive("drawdown_max", r.DrawdownMax); err != nil {
		return err
	}
	if !r.Objective.Valid() {
		return &InvalidInputError{Field: "objective", Reason: fmt.Sprintf("unknown objective %d", int(r.Objective))}
	}
	return nil
}

func positive(field string, v float64) error {
	switch {
	case math.IsNaN(v) || v == 0:
		return &InvalidInputError{Field: field, Reason: "missing"}
	case math.IsInf(v, 0):
		return &InvalidInputError{Field: field, Reason: "must be finite"}
	case v < 0:
		return &InvalidInputError{Field: field, Reason: "must be > 0"}
	}
	return nil
}

// Outcome is the result of Run. An empty candidate set is a normal outcome:
// Result is nil and every index is -1.
type Outcome struct {
	Request    Request                `json:"request"`
	Result     *model.SelectionResult `json:"result"`
	Candidates []model.ScenarioRecord `json:"candidates"`

	// Selected is the index of Result.Record in Candidates.
	Selected        int `json:"selected"`
	BestSerenity    int `json:"best_serenity"`
	BestPerformance int `json:"best_performance"`
}

// Empty reports whether the query matched no record.
func (o *Outcome) Empty() bool {
	return o == nil || len(o.Candidates) == 0
}

type Engine struct {
	Repo   data.Repository
	Logger *zap.Logger
}

func New(repo data.Repository, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Repo: repo, Logger: logger.With(zap.String("component", "engine"))}
}

func (e *Engine) log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// LoadCapitals returns the capitals the store knows about, sorted ascending.
func (e *Engine) LoadCapitals(ctx context.Context) ([]float64, error) {
	if e.Repo == nil {
		return nil, errors.New("repository is nil")
	}
	capitals, err := e.Repo.ListDistinctCapitals(ctx)
	if err != nil {
		e.log().Warn("load capitals failed", zap.Error(err))
		return nil, err
	}
	e.log().Debug("capitals loaded", zap.Int("count", len(capitals)))
	return capitals, nil
}

// Run validates req, fetches the candidate set and selects the best record
// for req.Objective. Invalid input never reaches the repository.
func (e *Engine) Run(ctx context.Context, req Request) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if e.Repo == nil {
		return nil, errors.New("repository is nil")
	}

	start := time.Now()
	records, err := e.Repo.ListScenarios(ctx, req.Capital, req.DrawdownMax)
	if err != nil {
		e.log().Warn("list scenarios failed",
			zap.Float64("capital", req.Capital),
			zap.Float64("drawdown_max", req.DrawdownMax),
			zap.Error(err),
		)
		return nil, err
	}

	out := &Outcome{
		Request:         req,
		Candidates:      normalize(records),
		Selected:        -1,
		BestSerenity:    -1,
		BestPerformance: -1,
	}
	if len(records) == 0 {
		e.log().Info("no candidates",
			zap.Float64("capital", req.Capital),
			zap.Float64("drawdown_max", req.DrawdownMax),
		)
		return out, nil
	}

	out.BestSerenity, out.BestPerformance = analysis.BestPair(out.Candidates)
	out.Selected = out.BestSerenity
	if req.Objective == model.ObjectivePerformance {
		out.Selected = out.BestPerformance
	}
	out.Result = &model.SelectionResult{
		Record:      out.Candidates[out.Selected],
		Capital:     req.Capital,
		DrawdownMax: req.DrawdownMax,
		Objective:   req.Objective,
	}

	e.log().Info("selection done",
		zap.Float64("capital", req.Capital),
		zap.Float64("drawdown_max", req.DrawdownMax),
		zap.Stringer("objective", req.Objective),
		zap.Int("candidates", len(records)),
		zap.String("asset", out.Result.Record.Asset),
		zap.Duration("took", time.Since(start)),
	)
	return out, nil
}

// normalize copies records with non-finite values dropped. The repository's
// slice is left untouched.
func normalize(records []model.ScenarioRecord) []model.ScenarioRecord {
	if records == nil {
		return nil
	}
	out := make([]model.ScenarioRecord, len(records))
	for i, r := range records {
		out[i] = r.Normalize()
	}
	return out
}
