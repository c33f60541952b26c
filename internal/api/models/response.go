package models

import (
	"intraday-simulator/internal/analysis"
	"intraday-simulator/internal/format"
	"intraday-simulator/internal/model"
	"intraday-simulator/internal/simulation"
)

// CapitalsResponse lists the capitals available in the scenario store
type CapitalsResponse struct {
	Capitals []float64 `json:"capitals"`
	Display  []string  `json:"display"` // formatted, same order as Capitals
	Count    int       `json:"count"`
}

// ObjectiveInfo describes a selection objective
type ObjectiveInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	RankField   string `json:"rank_field"`
}

// SelectionResponse is the response of a successful simulation
type SelectionResponse struct {
	Status      string                 `json:"status"`
	Objective   model.Objective        `json:"objective"`
	Capital     float64                `json:"capital"`
	DrawdownMax float64                `json:"drawdown_max"`
	Record      model.ScenarioRecord   `json:"record"`
	Display     format.RecordView      `json:"display"`
	Candidates  []model.ScenarioRecord `json:"candidates,omitempty"`

	CandidateCount  int `json:"candidate_count"`
	BestSerenity    int `json:"best_serenity"`
	BestPerformance int `json:"best_performance"`
}

// ScenariosResponse is the full candidate set for a capital/drawdown pair
type ScenariosResponse struct {
	Capital         float64                   `json:"capital"`
	DrawdownMax     float64                   `json:"drawdown_max"`
	Count           int                       `json:"count"`
	Candidates      []model.ScenarioRecord    `json:"candidates"`
	Points          []simulation.Point        `json:"points"`
	BestSerenity    int                       `json:"best_serenity"`
	BestPerformance int                       `json:"best_performance"`
	Summary         analysis.CandidateSummary `json:"summary"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
