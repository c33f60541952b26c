package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intraday-simulator/internal/api/models"
	"intraday-simulator/internal/appstate"
	"intraday-simulator/internal/format"
	"intraday-simulator/internal/model"
	"intraday-simulator/internal/simulation"
)

// SimulationHandler handles selection runs
type SimulationHandler struct {
	engine    *simulation.Engine
	formatter format.Formatter
	logger    *zap.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(engine *simulation.Engine, formatter format.Formatter, logger *zap.Logger) *SimulationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulationHandler{engine: engine, formatter: formatter, logger: logger}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	objective, ok := parseObjective(c, req.Objective)
	if !ok {
		return
	}

	out, err := h.engine.Run(c.Request.Context(), simulation.Request{
		Capital:     req.Capital,
		DrawdownMax: req.DrawdownMax,
		Objective:   objective,
	})
	if err != nil {
		respondError(c, err, upstreamMessage(err))
		return
	}
	if out.Empty() {
		abortWithError(c, http.StatusNotFound, "NO_RESULT", appstate.MsgNoResult, map[string]interface{}{
			"capital":      req.Capital,
			"drawdown_max": req.DrawdownMax,
		})
		return
	}

	resp := models.SelectionResponse{
		Status:          "ok",
		Objective:       out.Result.Objective,
		Capital:         out.Result.Capital,
		DrawdownMax:     out.Result.DrawdownMax,
		Record:          out.Result.Record,
		Display:         h.formatter.Record(out.Result.Record),
		CandidateCount:  len(out.Candidates),
		BestSerenity:    out.BestSerenity,
		BestPerformance: out.BestPerformance,
	}
	if req.IncludeCandidates {
		resp.Candidates = out.Candidates
	}

	c.JSON(http.StatusOK, resp)
}

// parseObjective defaults to serenity; unknown names abort with 400.
func parseObjective(c *gin.Context, raw string) (model.Objective, bool) {
	if raw == "" {
		return model.ObjectiveSerenity, true
	}
	o, err := model.ParseObjective(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error(), map[string]interface{}{
			"field": "objective",
		})
		return 0, false
	}
	return o, true
}
