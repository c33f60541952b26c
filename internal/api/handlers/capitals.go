package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intraday-simulator/internal/api/models"
	"intraday-simulator/internal/appstate"
	"intraday-simulator/internal/format"
	"intraday-simulator/internal/simulation"
)

// CapitalHandler handles capital-related requests
type CapitalHandler struct {
	engine    *simulation.Engine
	formatter format.Formatter
}

// NewCapitalHandler creates a new capital handler
func NewCapitalHandler(engine *simulation.Engine, formatter format.Formatter) *CapitalHandler {
	return &CapitalHandler{engine: engine, formatter: formatter}
}

// ListCapitals handles GET /api/v1/capitals
func (h *CapitalHandler) ListCapitals(c *gin.Context) {
	capitals, err := h.engine.LoadCapitals(c.Request.Context())
	if err != nil {
		respondError(c, err, appstate.MsgCapitalsFailed)
		return
	}

	display := make([]string, len(capitals))
	for i := range capitals {
		display[i] = h.formatter.Money(&capitals[i])
	}

	c.JSON(http.StatusOK, models.CapitalsResponse{
		Capitals: capitals,
		Display:  display,
		Count:    len(capitals),
	})
}
