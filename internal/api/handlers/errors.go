package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"intraday-simulator/internal/api/models"
	"intraday-simulator/internal/appstate"
	"intraday-simulator/internal/data"
	"intraday-simulator/internal/simulation"
)

func abortWithError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondError maps engine and repository errors to the API error envelope.
// fallback is the user message for upstream failures.
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	var invalid *simulation.InvalidInputError
	if errors.As(err, &invalid) {
		abortWithError(c, http.StatusBadRequest, "INVALID_INPUT", appstate.MsgInvalidInput, map[string]interface{}{
			"field":  invalid.Field,
			"reason": invalid.Reason,
		})
		return
	}

	var transport *data.TransportError
	if errors.As(err, &transport) {
		details := map[string]interface{}{
			"op":          transport.Op,
			"status_code": transport.StatusCode,
		}
		if transport.Body != "" {
			details["body"] = transport.Body
		}
		abortWithError(c, http.StatusBadGateway, "UPSTREAM_ERROR", fallback, details)
		return
	}

	abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", http.StatusText(http.StatusInternalServerError), nil)
}

// upstreamMessage names the HTTP status for a backend reply. Network and
// driver failures carry connection details, so only a generic text is shown.
func upstreamMessage(err error) string {
	var transport *data.TransportError
	if errors.As(err, &transport) {
		if transport.StatusCode > 0 {
			return fmt.Sprintf(appstate.MsgBackendFailed, fmt.Sprintf("HTTP %d", transport.StatusCode))
		}
		return fmt.Sprintf(appstate.MsgBackendFailed, "serveur injoignable")
	}
	return fmt.Sprintf(appstate.MsgBackendFailed, "erreur inconnue")
}
