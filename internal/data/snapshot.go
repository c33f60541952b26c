package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"intraday-simulator/internal/model"
)

// Snapshot is an offline copy of the scenario table.
type Snapshot struct {
	Table     string                 `json:"table"`
	CreatedAt string                 `json:"created_at"` // ISO 8601 timestamp
	Rows      []model.ScenarioRecord `json:"rows"`
}

// LoadSnapshot reads a snapshot from a JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return &s, nil
}

// SaveSnapshot writes a snapshot to a JSON file, creating the directory if needed.
func SaveSnapshot(s *Snapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// SnapshotRepository serves reads from an in-memory snapshot with the same
// filter semantics as the live backend. Row order is preserved.
type SnapshotRepository struct {
	snapshot *Snapshot
}

func NewSnapshotRepository(s *Snapshot) *SnapshotRepository {
	if s == nil {
		s = &Snapshot{}
	}
	return &SnapshotRepository{snapshot: s}
}

// OpenSnapshotRepository loads path and wraps it.
func OpenSnapshotRepository(path string) (*SnapshotRepository, error) {
	s, err := LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	return NewSnapshotRepository(s), nil
}

var _ Repository = (*SnapshotRepository)(nil)

func (r *SnapshotRepository) ListDistinctCapitals(ctx context.Context) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values := make([]float64, 0, len(r.snapshot.Rows))
	for _, row := range r.snapshot.Rows {
		if v, ok := model.Value(row.Capital); ok {
			values = append(values, v)
		}
	}
	return uniqueSorted(values), nil
}

// ListScenarios matches capital exactly; rows without a drawdown never match,
// as in SQL where NULL <= x is not true.
func (r *SnapshotRepository) ListScenarios(ctx context.Context, capital, drawdownMax float64) ([]model.ScenarioRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []model.ScenarioRecord{}
	for _, row := range r.snapshot.Rows {
		c, ok := model.Value(row.Capital)
		if !ok || c != capital {
			continue
		}
		dd, ok := model.Value(row.DrawdownMax)
		if !ok || dd > drawdownMax {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
