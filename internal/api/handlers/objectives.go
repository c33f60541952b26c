package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intraday-simulator/internal/api/models"
	"intraday-simulator/internal/data"
	"intraday-simulator/internal/model"
)

// ObjectiveHandler handles objective-related requests
type ObjectiveHandler struct {
	schema data.Schema
}

// NewObjectiveHandler creates a new objective handler
func NewObjectiveHandler(schema data.Schema) *ObjectiveHandler {
	return &ObjectiveHandler{schema: schema}
}

// ListObjectives handles GET /api/v1/objectives
func (h *ObjectiveHandler) ListObjectives(c *gin.Context) {
	objectives := make([]models.ObjectiveInfo, 0, len(model.Objectives))
	for _, o := range model.Objectives {
		info := models.ObjectiveInfo{ID: o.String(), Label: o.Label()}
		switch o {
		case model.ObjectiveSerenity:
			info.Description = "Best risk-adjusted ratio (gain relative to drawdown). Records without a ratio rank last."
			info.RankField = h.schema.RatioColumn
		case model.ObjectivePerformance:
			info.Description = "Highest total gain. Records without a gain rank last."
			info.RankField = h.schema.GainColumn
		}
		objectives = append(objectives, info)
	}

	c.JSON(http.StatusOK, gin.H{"objectives": objectives})
}
