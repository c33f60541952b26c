package analysis

import (
	"errors"
	"math"

	"intraday-simulator/internal/model"
)

// ErrNoCandidates is returned when a selection is requested over an empty
// candidate set. Callers are expected to branch on emptiness first.
var ErrNoCandidates = errors.New("no candidate scenarios to select from")

// RankFunc maps a record to its score. Higher is better.
// A missing field must rank as math.Inf(-1), never as zero.
type RankFunc func(model.ScenarioRecord) float64

// rank applies the missing-value policy: absent or non-finite scores lowest.
func rank(p *float64) float64 {
	v, ok := model.Value(p)
	if !ok {
		return math.Inf(-1)
	}
	return v
}

// RankRatio scores a record by its risk-adjusted ratio.
func RankRatio(r model.ScenarioRecord) float64 {
	return rank(r.RiskAdjustedRatio)
}

// RankGain scores a record by its total gain.
func RankGain(r model.ScenarioRecord) float64 {
	return rank(r.Gain)
}

// RankBy returns the rank policy for an objective.
func RankBy(o model.Objective) RankFunc {
	if o == model.ObjectivePerformance {
		return RankGain
	}
	return RankRatio
}

// SelectBestIndex returns the index of the highest-ranked record, or -1 if
// records is empty. Only a strictly greater score replaces the running best,
// so the first record wins on ties.
func SelectBestIndex(records []model.ScenarioRecord, by RankFunc) int {
	if len(records) == 0 {
		return -1
	}
	best := 0
	bestScore := by(records[0])
	for i := 1; i < len(records); i++ {
		if s := by(records[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

// SelectBestBy picks the highest-ranked record under an arbitrary rank policy.
func SelectBestBy(records []model.ScenarioRecord, by RankFunc) (model.ScenarioRecord, error) {
	i := SelectBestIndex(records, by)
	if i < 0 {
		return model.ScenarioRecord{}, ErrNoCandidates
	}
	return records[i], nil
}

// SelectBest picks the best record for the given objective.
func SelectBest(records []model.ScenarioRecord, o model.Objective) (model.ScenarioRecord, error) {
	return SelectBestBy(records, RankBy(o))
}

// BestPair computes the serenity and performance picks over the same set.
// The two picks are independent and may be the same record. Both are -1 for
// an empty set.
func BestPair(records []model.ScenarioRecord) (serenity, performance int) {
	return SelectBestIndex(records, RankRatio), SelectBestIndex(records, RankGain)
}
