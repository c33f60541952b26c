package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intraday-simulator/internal/analysis"
	"intraday-simulator/internal/api/models"
	"intraday-simulator/internal/model"
	"intraday-simulator/internal/simulation"
)

// ScenarioHandler exposes the candidate set behind a selection
type ScenarioHandler struct {
	engine *simulation.Engine
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(engine *simulation.Engine) *ScenarioHandler {
	return &ScenarioHandler{engine: engine}
}

// ListScenarios handles GET /api/v1/scenarios?capital=&drawdown_max=
// An empty candidate set is a 200 with count 0.
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	var q models.ScenariosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	objective, ok := parseObjective(c, q.Objective)
	if !ok {
		return
	}

	out, err := h.engine.Run(c.Request.Context(), simulation.Request{
		Capital:     q.Capital,
		DrawdownMax: q.DrawdownMax,
		Objective:   objective,
	})
	if err != nil {
		respondError(c, err, upstreamMessage(err))
		return
	}

	candidates := out.Candidates
	if candidates == nil {
		candidates = []model.ScenarioRecord{}
	}
	c.JSON(http.StatusOK, models.ScenariosResponse{
		Capital:         q.Capital,
		DrawdownMax:     q.DrawdownMax,
		Count:           len(candidates),
		Candidates:      candidates,
		Points:          simulation.Points(out),
		BestSerenity:    out.BestSerenity,
		BestPerformance: out.BestPerformance,
		Summary:         analysis.Summarize(candidates),
	})
}
