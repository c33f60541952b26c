package format

import "intraday-simulator/internal/model"

// RecordView is the display form of a ScenarioRecord.
type RecordView struct {
	Instrument        string `json:"instrument"`
	Capital           string `json:"capital"`
	RiskPerTrade      string `json:"risk_per_trade"`
	CapitalUsedAtSell string `json:"capital_used_at_sell"`
	Gain              string `json:"gain"`
	DrawdownMax       string `json:"drawdown_max"`
	RiskAdjustedRatio string `json:"risk_adjusted_ratio"`
	WinRate           string `json:"win_rate"`
	AnnualizedReturn  string `json:"annualized_return"`
	TradeCount        string `json:"trade_count"`
}

// Record renders every field of r. Risk per trade is stored in percentage
// units while the other rates are fractions.
func (f Formatter) Record(r model.ScenarioRecord) RecordView {
	return RecordView{
		Instrument:        f.Text(r.Asset),
		Capital:           f.Money(r.Capital),
		RiskPerTrade:      f.PercentRaw(r.RiskPerTrade, DefaultDigits),
		CapitalUsedAtSell: f.PercentFromFraction(r.CapitalUsedAtSell, DefaultDigits),
		Gain:              f.Money(r.Gain),
		DrawdownMax:       f.Money(r.DrawdownMax),
		RiskAdjustedRatio: f.Ratio(r.RiskAdjustedRatio, DefaultDigits),
		WinRate:           f.PercentFromFraction(r.WinRate, DefaultDigits),
		AnnualizedReturn:  f.PercentFromFraction(r.AnnualizedReturn, DefaultDigits),
		TradeCount:        f.Count(r.TradeCount),
	}
}
