// Package appstate holds the dashboard state as a plain value and the pure
// transitions between states. Nothing here performs I/O.
package appstate

import (
	"fmt"
	"math"

	"intraday-simulator/internal/model"
	"intraday-simulator/internal/simulation"
)

type ErrorKind string

const (
	ErrorNone           ErrorKind = ""
	ErrorInvalidInput   ErrorKind = "invalid_input"
	ErrorNoResult       ErrorKind = "no_result"
	ErrorCapitalsFailed ErrorKind = "capitals_failed"
	ErrorBackendFailed  ErrorKind = "backend_failed"
)

// User-facing messages.
const (
	MsgInvalidInput   = "Veuillez remplir le capital et le drawdown max."
	MsgNoResult       = "Aucun résultat pour cette configuration."
	MsgCapitalsFailed = "Erreur lors du chargement des capitaux. Veuillez réessayer plus tard."
	MsgBackendFailed  = "Erreur du serveur de données : %s"
)

type State struct {
	Capitals        []float64       `json:"capitals"`
	Capital         float64         `json:"capital"`
	DrawdownMax     float64         `json:"drawdown_max"`
	DrawdownCeiling float64         `json:"drawdown_ceiling"`
	Objective       model.Objective `json:"objective"`

	LoadingCapitals   bool `json:"loading_capitals"`
	LoadingSimulation bool `json:"loading_simulation"`

	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	Message   string    `json:"message,omitempty"`

	Result     *model.SelectionResult `json:"result"`
	Candidates []model.ScenarioRecord `json:"candidates"`
}

// Initial returns the state shown before any interaction.
func Initial(drawdownCeiling, defaultDrawdown float64) State {
	s := State{DrawdownCeiling: drawdownCeiling, Objective: model.ObjectiveSerenity}
	s.DrawdownMax = ClampDrawdown(defaultDrawdown, drawdownCeiling)
	return s
}

// Request builds the engine request from the current inputs.
func (s State) Request() simulation.Request {
	return simulation.Request{Capital: s.Capital, DrawdownMax: s.DrawdownMax, Objective: s.Objective}
}

// ClampDrawdown maps NaN to 0 and clamps v to [0, ceiling].
// A non-positive ceiling disables the upper bound.
func ClampDrawdown(v, ceiling float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case ceiling > 0 && v > ceiling:
		return ceiling
	}
	return v
}

type Action interface {
	action()
}

type (
	CapitalsRequested struct{}
	CapitalsLoaded    struct{ Capitals []float64 }
	CapitalsFailed    struct{ Err error }

	CapitalSelected   struct{ Capital float64 }
	DrawdownChanged   struct{ Value float64 }
	ObjectiveSelected struct{ Objective model.Objective }

	SimulationRequested struct{}
	SimulationInvalid   struct{ Err error }
	SimulationSucceeded struct{ Outcome *simulation.Outcome }
	SimulationEmpty     struct{}
	SimulationFailed    struct{ Err error }
)

func (CapitalsRequested) action() {}
func (CapitalsLoaded) action() {}
func (CapitalsFailed) action() {}
func (CapitalSelected) action() {}
func (DrawdownChanged) action() {}
func (ObjectiveSelected) action() {}
func (SimulationRequested) action() {}
func (SimulationInvalid) action() {}
func (SimulationSucceeded) action() {}
func (SimulationEmpty) action() {}
func (SimulationFailed) action() {}

// OutcomeAction maps the result of simulation.Engine.Run to the action
// that completes a SimulationRequested.
func OutcomeAction(out *simulation.Outcome, err error) Action {
	switch {
	case err != nil && simulation.IsInvalidInput(err):
		return SimulationInvalid{Err: err}
	case err != nil:
		return SimulationFailed{Err: err}
	case out.Empty():
		return SimulationEmpty{}
	}
	return SimulationSucceeded{Outcome: out}
}

// Reduce returns the state after applying a. s is not modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case CapitalsRequested:
		s.LoadingCapitals = true
		s = clearError(s)
	case CapitalsLoaded:
		s.LoadingCapitals = false
		s.Capitals = append([]float64(nil), a.Capitals...)
	case CapitalsFailed:
		// The last selection stays visible.
		s.LoadingCapitals = false
		s.ErrorKind, s.Message = ErrorCapitalsFailed, MsgCapitalsFailed

	case CapitalSelected:
		s.Capital = a.Capital
	case DrawdownChanged:
		s.DrawdownMax = ClampDrawdown(a.Value, s.DrawdownCeiling)
	case ObjectiveSelected:
		if a.Objective.Valid() {
			s.Objective = a.Objective
		}

	case SimulationRequested:
		s.LoadingSimulation = true
		s = clearError(s)
	case SimulationInvalid:
		s = clearResult(s)
		s.ErrorKind, s.Message = ErrorInvalidInput, MsgInvalidInput
	case SimulationSucceeded:
		if a.Outcome.Empty() {
			return Reduce(s, SimulationEmpty{})
		}
		s.LoadingSimulation = false
		s = clearError(s)
		s.Result = a.Outcome.Result
		s.Candidates = a.Outcome.Candidates
	case SimulationEmpty:
		s = clearResult(s)
		s.ErrorKind, s.Message = ErrorNoResult, MsgNoResult
	case SimulationFailed:
		s = clearResult(s)
		detail := "erreur inconnue"
		if a.Err != nil {
			detail = a.Err.Error()
		}
		s.ErrorKind, s.Message = ErrorBackendFailed, fmt.Sprintf(MsgBackendFailed, detail)
	}
	return s
}

func clearError(s State) State {
	s.ErrorKind, s.Message = ErrorNone, ""
	return s
}

func clearResult(s State) State {
	s.LoadingSimulation = false
	s.Result = nil
	s.Candidates = nil
	return s
}
