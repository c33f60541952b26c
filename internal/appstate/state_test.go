package appstate

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intraday-simulator/internal/data"
	"intraday-simulator/internal/model"
	"intraday-simulator/internal/simulation"
)

func succeeded() State {
	out := &simulation.Outcome{
		Result: &model.SelectionResult{
			Record:      model.ScenarioRecord{Asset: "CAC", Gain: model.Float(100)},
			Capital:     10000,
			DrawdownMax: 1000,
		},
		Candidates: []model.ScenarioRecord{{Asset: "CAC", Gain: model.Float(100)}},
	}
	s := Initial(10000, 1000)
	s = Reduce(s, SimulationRequested{})
	return Reduce(s, SimulationSucceeded{Outcome: out})
}

func TestInitial(t *testing.T) {
	s := Initial(10000, 1000)
	assert.Equal(t, 1000.0, s.DrawdownMax)
	assert.Equal(t, model.ObjectiveSerenity, s.Objective)
	assert.Nil(t, s.Result)
}

func TestDrawdownChanged_Clamps(t *testing.T) {
	s := Initial(10000, 1000)
	tests := []struct {
		in, want float64
	}{
		{math.NaN(), 0},
		{-5, 0},
		{2500, 2500},
		{25000, 10000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Reduce(s, DrawdownChanged{Value: tt.in}).DrawdownMax, "%v", tt.in)
	}
}

func TestCapitalsFlow(t *testing.T) {
	s := Reduce(Initial(10000, 1000), CapitalsRequested{})
	assert.True(t, s.LoadingCapitals)

	caps := []float64{5000, 10000}
	s = Reduce(s, CapitalsLoaded{Capitals: caps})
	assert.False(t, s.LoadingCapitals)
	assert.Equal(t, []float64{5000, 10000}, s.Capitals)

	caps[0] = 1
	assert.Equal(t, 5000.0, s.Capitals[0], "state does not alias the action's slice")
}

func TestCapitalsFailed_KeepsLastResult(t *testing.T) {
	s := succeeded()
	require.NotNil(t, s.Result)

	s = Reduce(s, CapitalsRequested{})
	s = Reduce(s, CapitalsFailed{Err: errors.New("HTTP 500")})
	assert.False(t, s.LoadingCapitals)
	assert.Equal(t, ErrorCapitalsFailed, s.ErrorKind)
	assert.Equal(t, MsgCapitalsFailed, s.Message)
	require.NotNil(t, s.Result)
	assert.Equal(t, "CAC", s.Result.Record.Asset)
	assert.Len(t, s.Candidates, 1)
}

func TestSimulationFailed_ClearsResult(t *testing.T) {
	s := succeeded()
	s = Reduce(s, SimulationRequested{})
	s = Reduce(s, SimulationFailed{Err: &data.TransportError{Op: "list scenarios", StatusCode: 502, Body: "bad gateway"}})

	assert.False(t, s.LoadingSimulation)
	assert.Nil(t, s.Result)
	assert.Nil(t, s.Candidates)
	assert.Equal(t, ErrorBackendFailed, s.ErrorKind)
	assert.Contains(t, s.Message, "HTTP 502")
}

func TestSimulationEmpty_ClearsResult(t *testing.T) {
	s := succeeded()
	s = Reduce(s, SimulationSucceeded{Outcome: &simulation.Outcome{}})
	assert.Nil(t, s.Result)
	assert.Equal(t, ErrorNoResult, s.ErrorKind)
	assert.Equal(t, MsgNoResult, s.Message)
}

func TestSimulationRequested_ClearsError(t *testing.T) {
	s := Reduce(Initial(10000, 1000), SimulationInvalid{})
	assert.Equal(t, MsgInvalidInput, s.Message)

	s = Reduce(s, SimulationRequested{})
	assert.True(t, s.LoadingSimulation)
	assert.Equal(t, ErrorNone, s.ErrorKind)
	assert.Empty(t, s.Message)
}

func TestReduce_DoesNotModifyInput(t *testing.T) {
	before := succeeded()
	_ = Reduce(before, SimulationFailed{Err: errors.New("x")})
	assert.NotNil(t, before.Result)
	assert.Equal(t, ErrorNone, before.ErrorKind)
}

func TestObjectiveSelected_IgnoresUnknown(t *testing.T) {
	s := Reduce(Initial(10000, 1000), ObjectiveSelected{Objective: model.ObjectivePerformance})
	assert.Equal(t, model.ObjectivePerformance, s.Objective)
	s = Reduce(s, ObjectiveSelected{Objective: 42})
	assert.Equal(t, model.ObjectivePerformance, s.Objective)
}

type emptyRepo struct{}

func (emptyRepo) ListDistinctCapitals(context.Context) ([]float64, error) { return nil, nil }
func (emptyRepo) ListScenarios(context.Context, float64, float64) ([]model.ScenarioRecord, error) {
	return []model.ScenarioRecord{}, nil
}

func TestOutcomeAction(t *testing.T) {
	engine := simulation.New(emptyRepo{}, nil)

	s := Initial(10000, 1000)
	out, err := engine.Run(context.Background(), s.Request())
	assert.IsType(t, SimulationInvalid{}, OutcomeAction(out, err))

	s = Reduce(s, CapitalSelected{Capital: 10000})
	out, err = engine.Run(context.Background(), s.Request())
	assert.IsType(t, SimulationEmpty{}, OutcomeAction(out, err))

	assert.IsType(t, SimulationFailed{}, OutcomeAction(nil, errors.New("down")))
	assert.IsType(t, SimulationSucceeded{}, OutcomeAction(&simulation.Outcome{Candidates: []model.ScenarioRecord{{}}}, nil))
}

func TestState_JSON(t *testing.T) {
	raw, err := json.Marshal(succeeded())
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "serenity", back["objective"])
	assert.Equal(t, 1000.0, back["drawdown_max"])
	assert.NotNil(t, back["result"])
}
