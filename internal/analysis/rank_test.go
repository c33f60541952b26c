package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intraday-simulator/internal/model"
)

func rec(asset string, gain, ratio *float64) model.ScenarioRecord {
	return model.ScenarioRecord{Asset: asset, Gain: gain, RiskAdjustedRatio: ratio}
}

func TestSelectBest_SerenitySkipsMissingRatio(t *testing.T) {
	records := []model.ScenarioRecord{
		rec("a", model.Float(500), nil),
		rec("b", model.Float(100), model.Float(1.2)),
	}

	best, err := SelectBest(records, model.ObjectiveSerenity)
	require.NoError(t, err)
	assert.Equal(t, "b", best.Asset)
}

func TestSelectBest_PerformanceTieKeepsFirst(t *testing.T) {
	records := []model.ScenarioRecord{
		rec("low", model.Float(10), model.Float(3)),
		rec("first", model.Float(900), model.Float(1)),
		rec("second", model.Float(900), model.Float(2)),
		rec("third", model.Float(900), nil),
	}

	best, err := SelectBest(records, model.ObjectivePerformance)
	require.NoError(t, err)
	assert.Equal(t, "first", best.Asset)
}

func TestSelectBest_UniqueMaximumIgnoresOrder(t *testing.T) {
	base := []model.ScenarioRecord{
		rec("a", model.Float(-50), model.Float(0.1)),
		rec("b", model.Float(300), model.Float(2.5)),
		rec("c", model.Float(1200), model.Float(0.9)),
		rec("d", nil, nil),
	}
	perms := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}

	for _, p := range perms {
		records := make([]model.ScenarioRecord, len(p))
		for i, j := range p {
			records[i] = base[j]
		}
		perf, err := SelectBest(records, model.ObjectivePerformance)
		require.NoError(t, err)
		assert.Equal(t, "c", perf.Asset, "order %v", p)

		ser, err := SelectBest(records, model.ObjectiveSerenity)
		require.NoError(t, err)
		assert.Equal(t, "b", ser.Asset, "order %v", p)
	}
}

func TestSelectBest_Idempotent(t *testing.T) {
	records := []model.ScenarioRecord{
		rec("a", model.Float(1), model.Float(1)),
		rec("b", model.Float(2), model.Float(1)),
		rec("c", model.Float(2), model.Float(0.5)),
	}
	first, err := SelectBest(records, model.ObjectivePerformance)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := SelectBest(records, model.ObjectivePerformance)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSelectBest_EmptyIsCallerError(t *testing.T) {
	_, err := SelectBest(nil, model.ObjectiveSerenity)
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.Equal(t, -1, SelectBestIndex([]model.ScenarioRecord{}, RankGain))
}

func TestSelectBest_ZeroBeatsMissing(t *testing.T) {
	records := []model.ScenarioRecord{
		rec("missing", nil, nil),
		rec("zero", model.Float(0), model.Float(0)),
	}
	best, err := SelectBest(records, model.ObjectivePerformance)
	require.NoError(t, err)
	assert.Equal(t, "zero", best.Asset)

	best, err = SelectBest(records, model.ObjectiveSerenity)
	require.NoError(t, err)
	assert.Equal(t, "zero", best.Asset)
}

func TestSelectBest_AllMissingReturnsFirst(t *testing.T) {
	records := []model.ScenarioRecord{rec("a", nil, nil), rec("b", nil, model.Float(math.NaN()))}
	best, err := SelectBest(records, model.ObjectiveSerenity)
	require.NoError(t, err)
	assert.Equal(t, "a", best.Asset)
}

func TestRank_MissingPolicy(t *testing.T) {
	assert.True(t, math.IsInf(RankGain(model.ScenarioRecord{}), -1))
	assert.True(t, math.IsInf(RankRatio(rec("x", nil, model.Float(math.NaN()))), -1))
	assert.Equal(t, 0.0, RankGain(rec("x", model.Float(0), nil)))
	assert.Equal(t, -3.5, RankRatio(rec("x", nil, model.Float(-3.5))))
}

func TestSelectBestBy_CustomField(t *testing.T) {
	records := []model.ScenarioRecord{
		{Asset: "a", WinRate: model.Float(0.4)},
		{Asset: "b", WinRate: model.Float(0.7)},
		{Asset: "c"},
	}
	best, err := SelectBestBy(records, func(r model.ScenarioRecord) float64 { return rank(r.WinRate) })
	require.NoError(t, err)
	assert.Equal(t, "b", best.Asset)
}

func TestBestPair(t *testing.T) {
	records := []model.ScenarioRecord{
		rec("steady", model.Float(400), model.Float(4)),
		rec("aggressive", model.Float(2000), model.Float(1.5)),
	}
	ser, perf := BestPair(records)
	assert.Equal(t, 0, ser)
	assert.Equal(t, 1, perf)

	ser, perf = BestPair(records[:1])
	assert.Equal(t, 0, ser)
	assert.Equal(t, 0, perf)

	ser, perf = BestPair(nil)
	assert.Equal(t, -1, ser)
	assert.Equal(t, -1, perf)
}
