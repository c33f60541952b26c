package analysis

import (
	"math"
	"sort"

	"intraday-simulator/internal/model"
)

// CandidateSummary describes a candidate set independently of the chosen
// objective. Statistics only cover records where the field is present.
type CandidateSummary struct {
	Count int `json:"count"`

	GainCount int     `json:"gain_count"`
	MinGain   float64 `json:"min_gain"`
	MaxGain   float64 `json:"max_gain"`
	MeanGain  float64 `json:"mean_gain"`
	P05Gain   float64 `json:"p05_gain"`
	P95Gain   float64 `json:"p95_gain"`

	WorstDrawdown float64 `json:"worst_drawdown"`

	RatioCount int     `json:"ratio_count"`
	MaxRatio   float64 `json:"max_ratio"`
}

func Summarize(records []model.ScenarioRecord) CandidateSummary {
	s := CandidateSummary{Count: len(records)}
	if len(records) == 0 {
		return s
	}

	gains := make([]float64, 0, len(records))
	sum := 0.0
	maxRatio := math.Inf(-1)
	for _, r := range records {
		if v, ok := model.Value(r.Gain); ok {
			gains = append(gains, v)
			sum += v
		}
		if v, ok := model.Value(r.DrawdownMax); ok && v > s.WorstDrawdown {
			s.WorstDrawdown = v
		}
		if v, ok := model.Value(r.RiskAdjustedRatio); ok {
			s.RatioCount++
			if v > maxRatio {
				maxRatio = v
			}
		}
	}
	if s.RatioCount > 0 {
		s.MaxRatio = maxRatio
	}

	s.GainCount = len(gains)
	if len(gains) == 0 {
		return s
	}
	sort.Float64s(gains)
	s.MinGain = gains[0]
	s.MaxGain = gains[len(gains)-1]
	s.MeanGain = sum / float64(len(gains))
	s.P05Gain = percentileSorted(gains, 0.05)
	s.P95Gain = percentileSorted(gains, 0.95)
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
