package model

// SelectionResult is the chosen record plus the query parameters that
// produced the candidate set. A new value is created on every successful run.
type SelectionResult struct {
	Record      ScenarioRecord `json:"record"`
	Capital     float64        `json:"capital"`
	DrawdownMax float64        `json:"drawdown_max"`
	Objective   Objective      `json:"objective"`
}
