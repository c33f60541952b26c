package model

import "math"

// ScenarioRecord is one backtested parameter combination for a fixed
// instrument/capital pair, as returned by the scenario store.
//
// Numeric fields are pointers: nil means the backend returned no value.
// Zero is a meaningful value and is never used to represent "missing".
type ScenarioRecord struct {
	Asset string `json:"asset"`

	// Capital allocated for the simulation, in currency units.
	Capital *float64 `json:"capital"`
	// DrawdownMax is the worst peak-to-trough loss, in currency units (>= 0).
	DrawdownMax *float64 `json:"drawdown_max"`
	// Gain is the total profit/loss, in currency units.
	Gain *float64 `json:"gain"`

	// RiskPerTrade is expressed in percentage units (0..100).
	RiskPerTrade *float64 `json:"risk_per_trade"`
	// CapitalUsedAtSell is a fraction (0..1) of capital committed on shorts.
	CapitalUsedAtSell *float64 `json:"capital_used_at_sell"`
	// WinRate is a fraction (0..1).
	WinRate *float64 `json:"win_rate"`
	// AnnualizedReturn is a fraction and may be negative.
	AnnualizedReturn *float64 `json:"annualized_return"`
	// RiskAdjustedRatio is gain relative to drawdown.
	RiskAdjustedRatio *float64 `json:"risk_adjusted_ratio"`

	TradeCount *int64 `json:"trade_count"`
}

// Float returns a pointer to v. Handy for building records in code and tests.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int64) *int64 {
	return &v
}

// Value dereferences p, reporting whether a finite value was present.
// NaN and ±Inf count as absent.
func Value(p *float64) (float64, bool) {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0, false
	}
	return *p, true
}

// Finite returns p when it holds a finite value and nil otherwise.
func Finite(p *float64) *float64 {
	if _, ok := Value(p); !ok {
		return nil
	}
	return p
}

// Normalize drops non-finite numeric fields so every stored value is
// either absent or a finite number.
func (r ScenarioRecord) Normalize() ScenarioRecord {
	r.Capital = Finite(r.Capital)
	r.DrawdownMax = Finite(r.DrawdownMax)
	r.Gain = Finite(r.Gain)
	r.RiskPerTrade = Finite(r.RiskPerTrade)
	r.CapitalUsedAtSell = Finite(r.CapitalUsedAtSell)
	r.WinRate = Finite(r.WinRate)
	r.AnnualizedReturn = Finite(r.AnnualizedReturn)
	r.RiskAdjustedRatio = Finite(r.RiskAdjustedRatio)
	return r
}
