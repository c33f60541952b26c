package data

import (
	"context"
	"fmt"

	"intraday-simulator/internal/model"
)

// Repository is the read-only view of the scenario store.
// Implementations hold no session state between calls and never retry.
type Repository interface {
	// ListDistinctCapitals returns every capital present, deduplicated and sorted ascending.
	ListDistinctCapitals(ctx context.Context) ([]float64, error)
	// ListScenarios returns every record with Capital == capital and
	// DrawdownMax <= drawdownMax. No match is an empty slice, not an error.
	ListScenarios(ctx context.Context, capital, drawdownMax float64) ([]model.ScenarioRecord, error)
}

// TransportError reports a failure to reach the scenario store or a non-2xx reply.
// StatusCode is 0 when no HTTP response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 && e.Err != nil {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d - %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
