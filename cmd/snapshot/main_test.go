package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"intraday-simulator/internal/data"
	"intraday-simulator/internal/model"
)

type sourceRepo struct {
	rows     map[float64][]model.ScenarioRecord
	failOn   float64
	capsErr  error
	ceilings []float64
}

func (s *sourceRepo) ListDistinctCapitals(context.Context) ([]float64, error) {
	if s.capsErr != nil {
		return nil, s.capsErr
	}
	return []float64{5000, 10000}, nil
}

func (s *sourceRepo) ListScenarios(_ context.Context, capital, drawdownMax float64) ([]model.ScenarioRecord, error) {
	s.ceilings = append(s.ceilings, drawdownMax)
	if capital == s.failOn {
		return nil, &data.TransportError{Op: "list scenarios", StatusCode: 500, Body: "oops"}
	}
	return s.rows[capital], nil
}

func TestBuildSnapshot_RoundTrip(t *testing.T) {
	repo := &sourceRepo{rows: map[float64][]model.ScenarioRecord{
		5000:  {{Asset: "DAX", Capital: model.Float(5000), DrawdownMax: model.Float(300), Gain: model.Float(100)}},
		10000: {{Asset: "CAC", Capital: model.Float(10000), DrawdownMax: model.Float(900), Gain: model.Float(700)}},
	}}

	snap, failed, err := buildSnapshot(context.Background(), repo, "DataIntradayGrafV4-3", 1e12, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, failed)
	assert.Len(t, snap.Rows, 2)
	assert.Equal(t, []float64{1e12, 1e12}, repo.ceilings)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, data.SaveSnapshot(snap, path))

	offline, err := data.OpenSnapshotRepository(path)
	require.NoError(t, err)
	caps, err := offline.ListDistinctCapitals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{5000, 10000}, caps)

	rows, err := offline.ListScenarios(context.Background(), 10000, 1000)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CAC", rows[0].Asset)
}

func TestBuildSnapshot_SkipsFailedCapital(t *testing.T) {
	repo := &sourceRepo{failOn: 5000, rows: map[float64][]model.ScenarioRecord{
		10000: {{Asset: "CAC", Capital: model.Float(10000), DrawdownMax: model.Float(900)}},
	}}
	snap, failed, err := buildSnapshot(context.Background(), repo, "t", 1e12, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []float64{5000}, failed)
	assert.Len(t, snap.Rows, 1)
}

func TestBuildSnapshot_CapitalsError(t *testing.T) {
	repo := &sourceRepo{capsErr: errors.New("unreachable")}
	_, _, err := buildSnapshot(context.Background(), repo, "t", 1e12, zap.NewNop())
	assert.ErrorContains(t, err, "list capitals")
}
