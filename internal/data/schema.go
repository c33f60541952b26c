package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"intraday-simulator/internal/model"
)

// LegacyRatioColumn is the ratio column of the DataIntradayGraf V4 tables.
const LegacyRatioColumn = "Sharpe"

// Schema maps ScenarioRecord fields to the column names of the backend table.
// RatioColumn selects which ratio column feeds RiskAdjustedRatio, so a table
// revision that renamed the ratio only needs a config change.
type Schema struct {
	Table                   string `yaml:"table"`
	AssetColumn             string `yaml:"asset_column"`
	CapitalColumn           string `yaml:"capital_column"`
	DrawdownColumn          string `yaml:"drawdown_column"`
	GainColumn              string `yaml:"gain_column"`
	RiskPerTradeColumn      string `yaml:"risk_per_trade_column"`
	CapitalUsedAtSellColumn string `yaml:"capital_used_at_sell_column"`
	WinRateColumn           string `yaml:"win_rate_column"`
	AnnualizedReturnColumn  string `yaml:"annualized_return_column"`
	RatioColumn             string `yaml:"ratio_column"`
	TradeCountColumn        string `yaml:"trade_count_column"`
}

// DefaultSchema describes the DataIntradayGrafV4-3 table.
var DefaultSchema = Schema{
	Table:                   "DataIntradayGrafV4-3",
	AssetColumn:             "Actif",
	CapitalColumn:           "Capital",
	DrawdownColumn:          "Drawdown",
	GainColumn:              "Gain",
	RiskPerTradeColumn:      "pRisque",
	CapitalUsedAtSellColumn: "pVente",
	WinRateColumn:           "pGagnant",
	AnnualizedReturnColumn:  "RendementAnnuel",
	RatioColumn:             LegacyRatioColumn,
	TradeCountColumn:        "NbTrade",
}

// Validate checks the columns the queries depend on.
func (s Schema) Validate() error {
	if s.Table == "" {
		return errors.New("schema.table is required")
	}
	if s.CapitalColumn == "" {
		return errors.New("schema.capital_column is required")
	}
	if s.DrawdownColumn == "" {
		return errors.New("schema.drawdown_column is required")
	}
	return nil
}

// Columns returns the mapped columns in a stable order, skipping unmapped ones.
func (s Schema) Columns() []string {
	all := []string{
		s.AssetColumn, s.CapitalColumn, s.DrawdownColumn, s.GainColumn,
		s.RiskPerTradeColumn, s.CapitalUsedAtSellColumn, s.WinRateColumn,
		s.AnnualizedReturnColumn, s.RatioColumn, s.TradeCountColumn,
	}
	out := make([]string, 0, len(all))
	for _, c := range all {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// maxTradeCount bounds trade counts that still convert exactly to int64.
const maxTradeCount = 1 << 53

// DecodeRecords decodes a JSON array of row objects using the schema.
// Unknown columns are ignored; null or missing columns stay absent.
func DecodeRecords(raw []byte, s Schema) ([]model.ScenarioRecord, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	out := make([]model.ScenarioRecord, 0, len(rows))
	for i, row := range rows {
		r, err := s.decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s Schema) decodeRow(row map[string]json.RawMessage) (model.ScenarioRecord, error) {
	var (
		r   model.ScenarioRecord
		err error
	)
	num := func(col string) *float64 {
		if err != nil {
			return nil
		}
		var v *float64
		v, err = numberField(row, col)
		return v
	}

	r.Capital = num(s.CapitalColumn)
	r.DrawdownMax = num(s.DrawdownColumn)
	r.Gain = num(s.GainColumn)
	r.RiskPerTrade = num(s.RiskPerTradeColumn)
	r.CapitalUsedAtSell = num(s.CapitalUsedAtSellColumn)
	r.WinRate = num(s.WinRateColumn)
	r.AnnualizedReturn = num(s.AnnualizedReturnColumn)
	r.RiskAdjustedRatio = num(s.RatioColumn)
	if tc := num(s.TradeCountColumn); tc != nil && math.Abs(*tc) <= maxTradeCount {
		n := int64(math.Round(*tc))
		r.TradeCount = &n
	}
	if err != nil {
		return model.ScenarioRecord{}, err
	}

	if raw, ok := row[s.AssetColumn]; ok && s.AssetColumn != "" && !isNull(raw) {
		var asset string
		if e := json.Unmarshal(raw, &asset); e != nil {
			// Some table revisions store the asset as a number code.
			asset = strings.Trim(string(raw), `"`)
		}
		r.Asset = asset
	}
	return r, nil
}

// numberField accepts JSON numbers and numeric strings (Postgres numeric columns).
func numberField(row map[string]json.RawMessage, col string) (*float64, error) {
	if col == "" {
		return nil, nil
	}
	raw, ok := row[col]
	if !ok || isNull(raw) {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("column %q: not a number: %s", col, raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", col, err)
	}
	// Postgres renders non-finite numerics as "NaN" / "Infinity"; treat them as absent.
	return model.Finite(&f), nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// formatNumber renders a query value the way the dashboard interpolated it:
// shortest representation, no exponent, no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// uniqueSorted drops duplicates and sorts ascending.
func uniqueSorted(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
