package models

// SimulateRequest represents the request body for POST /api/v1/simulate.
// Zero capital or drawdown counts as missing.
type SimulateRequest struct {
	Capital           float64 `json:"capital"`
	DrawdownMax       float64 `json:"drawdown_max"`
	Objective         string  `json:"objective"`                    // "serenity" (default) or "performance"
	IncludeCandidates bool    `json:"include_candidates,omitempty"` // default: false
}

// ScenariosQuery represents the query string of GET /api/v1/scenarios
type ScenariosQuery struct {
	Capital     float64 `form:"capital"`
	DrawdownMax float64 `form:"drawdown_max"`
	Objective   string  `form:"objective,omitempty"`
}
