package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohamedkhairy/stock-screener/internal/scoring"
)

func scoredAsset(symbol string, score float64) *scoring.Asset {
	return &scoring.Asset{Symbol: symbol, GlobalScore: score}
}

func symbols(assets []*scoring.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.Symbol
	}
	return out
}

func TestSortByPressure(t *testing.T) {
	assets := []*scoring.Asset{
		scoredAsset("AAPL", 1),
		scoredAsset("MSFT", -3),
		scoredAsset("GOOG", 2),
		scoredAsset("AMZN", 0),
		scoredAsset("NVDA", 3),
	}

	SortByPressure(assets)

	// Magnitude wins regardless of direction; ties break by symbol
	assert.Equal(t, []string{"MSFT", "NVDA", "GOOG", "AAPL", "AMZN"}, symbols(assets))
}

func TestSortByPressure_TieBreak(t *testing.T) {
	assets := []*scoring.Asset{
		scoredAsset("ZZZ", 2),
		scoredAsset("AAA", -2),
		scoredAsset("MMM", 2),
	}

	SortByPressure(assets)
	assert.Equal(t, []string{"AAA", "MMM", "ZZZ"}, symbols(assets))
}

func TestFilterByAgreement(t *testing.T) {
	assets := []*scoring.Asset{
		scoredAsset("AAPL", 2),
		scoredAsset("MSFT", -2),
		scoredAsset("GOOG", 1),
		scoredAsset("AMZN", 0),
	}

	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols(FilterByAgreement(assets, 2)))
	assert.Equal(t, []string{"AMZN"}, symbols(FilterByAgreement(assets, 0)))
	assert.Empty(t, FilterByAgreement(assets, 5))
}

func TestMaxAgreement(t *testing.T) {
	assert.Equal(t, 0, MaxAgreement(nil))
	assert.Equal(t, 3, MaxAgreement([]*scoring.Asset{
		scoredAsset("AAPL", 1),
		scoredAsset("MSFT", -3),
	}))
}
