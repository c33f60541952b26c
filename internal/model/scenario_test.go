package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	_, ok := Value(nil)
	assert.False(t, ok)

	v, ok := Value(Float(0))
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, ok := Value(Float(bad))
		assert.False(t, ok, "%v", bad)
	}
}

func TestNormalize_DropsNonFinite(t *testing.T) {
	r := ScenarioRecord{
		Asset:             "DAX",
		Capital:           Float(10000),
		Gain:              Float(math.Inf(1)),
		RiskAdjustedRatio: Float(math.NaN()),
		WinRate:           Float(math.Inf(-1)),
		DrawdownMax:       Float(0),
		TradeCount:        Int(12),
	}
	n := r.Normalize()

	assert.Nil(t, n.Gain)
	assert.Nil(t, n.RiskAdjustedRatio)
	assert.Nil(t, n.WinRate)
	assert.Equal(t, 10000.0, *n.Capital)
	assert.Equal(t, 0.0, *n.DrawdownMax)
	assert.Equal(t, int64(12), *n.TradeCount)
	assert.NotNil(t, r.Gain, "the receiver is a copy")
}
