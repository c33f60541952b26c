package simulation

// Point is one candidate in the drawdown/gain scatter series.
// Missing values stay nil; plotting code decides how to show them.
type Point struct {
	Index int    `json:"index"`
	Asset string `json:"asset"`

	DrawdownMax *float64 `json:"drawdown_max"`
	Gain        *float64 `json:"gain"`
	Ratio       *float64 `json:"ratio"`

	Selected        bool `json:"selected"`
	BestSerenity    bool `json:"best_serenity"`
	BestPerformance bool `json:"best_performance"`
}

// Points flattens an outcome's candidates into a scatter series, in backend order.
func Points(o *Outcome) []Point {
	if o.Empty() {
		return []Point{}
	}
	out := make([]Point, 0, len(o.Candidates))
	for i, r := range o.Candidates {
		out = append(out, Point{
			Index:           i,
			Asset:           r.Asset,
			DrawdownMax:     r.DrawdownMax,
			Gain:            r.Gain,
			Ratio:           r.RiskAdjustedRatio,
			Selected:        i == o.Selected,
			BestSerenity:    i == o.BestSerenity,
			BestPerformance: i == o.BestPerformance,
		})
	}
	return out
}
