package data

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecords_NumericStringsAndNulls(t *testing.T) {
	raw := []byte(`[{"Actif":"DAX","Capital":"10000.00","Drawdown":" ","Gain":-125.5,"NbTrade":"42","Sharpe":0}]`)

	records, err := DecodeRecords(raw, DefaultSchema)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "DAX", r.Asset)
	assert.Equal(t, 10000.0, *r.Capital)
	assert.Nil(t, r.DrawdownMax)
	assert.Equal(t, -125.5, *r.Gain)
	assert.Equal(t, int64(42), *r.TradeCount)
	// Zero is a value, not a missing field.
	require.NotNil(t, r.RiskAdjustedRatio)
	assert.Equal(t, 0.0, *r.RiskAdjustedRatio)
	assert.Nil(t, r.WinRate)
}

func TestDecodeRecords_NumericAsset(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"Actif":40,"Capital":1}]`), DefaultSchema)
	require.NoError(t, err)
	assert.Equal(t, "40", records[0].Asset)
}

func TestDecodeRecords_Errors(t *testing.T) {
	_, err := DecodeRecords([]byte(`{"Capital":1}`), DefaultSchema)
	assert.Error(t, err)

	_, err = DecodeRecords([]byte(`[{"Capital":"abc"}]`), DefaultSchema)
	assert.ErrorContains(t, err, `row 0: column "Capital"`)

	_, err = DecodeRecords([]byte(`[{"Gain":true}]`), DefaultSchema)
	assert.ErrorContains(t, err, `column "Gain": not a number`)
}

func TestSchema_Validate(t *testing.T) {
	require.NoError(t, DefaultSchema.Validate())

	s := DefaultSchema
	s.Table = ""
	assert.Error(t, s.Validate())

	s = DefaultSchema
	s.DrawdownColumn = ""
	assert.Error(t, s.Validate())
}

func TestSchema_Columns(t *testing.T) {
	s := Schema{CapitalColumn: "Capital", DrawdownColumn: "Drawdown", RatioColumn: "Sharpe"}
	assert.Equal(t, []string{"Capital", "Drawdown", "Sharpe"}, s.Columns())
	assert.Len(t, DefaultSchema.Columns(), 10)
}

func TestUniqueSorted(t *testing.T) {
	assert.Equal(t, []float64{-1, 0, 2.5, 10}, uniqueSorted([]float64{10, 0, 2.5, 10, -1, 0}))
	assert.Empty(t, uniqueSorted(nil))
}

func TestDecodeRecords_NonFiniteIsAbsent(t *testing.T) {
	raw := []byte(`[
		{"Actif":"DAX","Capital":10000,"Drawdown":500,"Gain":900,"Sharpe":"NaN","NbTrade":"NaN"},
		{"Actif":"CAC","Capital":10000,"Drawdown":"Infinity","Gain":"Infinity","Sharpe":"-Infinity","NbTrade":"1e300"}
	]`)

	records, err := DecodeRecords(raw, DefaultSchema)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Nil(t, records[0].RiskAdjustedRatio)
	assert.Nil(t, records[0].TradeCount)
	assert.Equal(t, 900.0, *records[0].Gain)

	assert.Nil(t, records[1].Gain)
	assert.Nil(t, records[1].DrawdownMax)
	assert.Nil(t, records[1].RiskAdjustedRatio)
	assert.Nil(t, records[1].TradeCount, "out of int64 range")
}

func TestUniqueSorted_SkipsNonFinite(t *testing.T) {
	got := uniqueSorted([]float64{math.Inf(1), 5000, math.NaN(), 1000, 5000, math.Inf(-1)})
	assert.Equal(t, []float64{1000, 5000}, got)
}
