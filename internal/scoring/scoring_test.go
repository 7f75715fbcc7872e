package scoring

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/stock-screener/internal/models"
	"github.com/mohamedkhairy/stock-screener/pkg/indicator"
)

// stubIndicator writes a constant flag column, or no column at all when
// flagCol is empty. applied counts Apply calls across goroutines.
type stubIndicator struct {
	name     string
	flagCol  string
	flag     float64
	lookback int
	failWith error
	applied  atomic.Int64
}

func (s *stubIndicator) Name() string       { return s.name }
func (s *stubIndicator) FlagColumn() string { return s.flagCol }
func (s *stubIndicator) MinLookback() int {
	if s.lookback > 0 {
		return s.lookback
	}
	return 1
}

func (s *stubIndicator) Apply(series *models.PriceSeries) error {
	s.applied.Add(1)
	if s.failWith != nil {
		return s.failWith
	}
	if series.Len() < s.MinLookback() {
		return fmt.Errorf("%w: %s", models.ErrInsufficientHistory, s.name)
	}
	if s.flagCol == "" {
		return nil
	}
	flags := make([]float64, series.Len())
	flags[series.Len()-1] = s.flag
	return series.SetColumn(s.flagCol, flags)
}

func testSeries(t *testing.T, symbol string, n int) *models.PriceSeries {
	t.Helper()
	bars := make([]models.Bar, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price := 100 + float64(i)
		bars[i] = models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    1000,
		}
	}
	series, err := models.NewPriceSeries(symbol, bars)
	require.NoError(t, err)
	return series
}

func TestAggregate_SumsLastFlags(t *testing.T) {
	series := testSeries(t, "AAPL", 10)
	indicators := []indicator.Indicator{
		&stubIndicator{name: "buyer", flagCol: "buyer_flag", flag: 1},
		&stubIndicator{name: "seller", flagCol: "seller_flag", flag: -1},
		&stubIndicator{name: "buyer2", flagCol: "buyer2_flag", flag: 1},
		&stubIndicator{name: "neutral", flagCol: "neutral_flag", flag: 0},
		&stubIndicator{name: "silent", flagCol: ""},
	}
	for _, ind := range indicators {
		require.NoError(t, ind.Apply(series))
	}

	global, detailed, err := Aggregate(series, indicators)
	require.NoError(t, err)

	assert.Equal(t, 1.0, global)
	assert.Equal(t, map[string]int{"buyer": 1, "seller": -1, "buyer2": 1}, detailed)
	assert.NotContains(t, detailed, "neutral")
	assert.NotContains(t, detailed, "silent")
}

func TestAggregate_MissingColumnFails(t *testing.T) {
	series := testSeries(t, "AAPL", 10)
	indicators := []indicator.Indicator{
		&stubIndicator{name: "ghost", flagCol: "ghost_flag", flag: 1},
	}

	// Aggregate without applying first
	_, _, err := Aggregate(series, indicators)
	require.ErrorIs(t, err, models.ErrMissingColumn)
}

func TestAsset_ApplyIndicatorsIdempotent(t *testing.T) {
	asset := NewAsset("AAPL", models.KindStock, testSeries(t, "AAPL", 10))
	indicators := []indicator.Indicator{
		&stubIndicator{name: "buyer", flagCol: "buyer_flag", flag: 1},
	}

	require.NoError(t, asset.ApplyIndicators(indicators))
	require.NoError(t, asset.ApplyIndicators(indicators))

	assert.Equal(t, 1.0, asset.GlobalScore)
	assert.Equal(t, map[string]int{"buyer": 1}, asset.DetailedScore)
}

func TestAsset_FailureResetsScore(t *testing.T) {
	asset := NewAsset("AAPL", models.KindStock, testSeries(t, "AAPL", 10))

	require.NoError(t, asset.ApplyIndicators([]indicator.Indicator{
		&stubIndicator{name: "buyer", flagCol: "buyer_flag", flag: 1},
	}))
	assert.Equal(t, 1.0, asset.GlobalScore)

	err := asset.ApplyIndicators([]indicator.Indicator{
		&stubIndicator{name: "broken", flagCol: "broken_flag", failWith: errors.New("boom")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AAPL")
	assert.Zero(t, asset.GlobalScore)
	assert.Empty(t, asset.DetailedScore)
}

func TestPipeline_DefaultWorkers(t *testing.T) {
	assert.Positive(t, NewPipeline(0).Workers())
	assert.Equal(t, 3, NewPipeline(3).Workers())
}

func TestPipeline_IsolatesFailures(t *testing.T) {
	assets := []*Asset{
		NewAsset("AAPL", models.KindStock, testSeries(t, "AAPL", 50)),
		NewAsset("MSFT", models.KindStock, testSeries(t, "MSFT", 50)),
		NewAsset("SHRT", models.KindStock, testSeries(t, "SHRT", 5)),
		NewAsset("GOOG", models.KindStock, testSeries(t, "GOOG", 50)),
		NewAsset("AMZN", models.KindStock, testSeries(t, "AMZN", 50)),
	}
	indicators := []indicator.Indicator{
		&stubIndicator{name: "buyer", flagCol: "buyer_flag", flag: 1, lookback: 10},
	}

	result, err := NewPipeline(2).ScoreAll(context.Background(), assets, indicators)
	require.NoError(t, err)

	assert.Len(t, result.Scored, 4)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "SHRT", result.Failures[0].Symbol)
	assert.ErrorIs(t, result.Failures[0].Err, models.ErrInsufficientHistory)
	assert.NotEmpty(t, result.RunID)

	for _, asset := range result.Scored {
		assert.Equal(t, 1.0, asset.GlobalScore, asset.Symbol)
	}
}

func TestPipeline_EvaluatesEachAssetOnce(t *testing.T) {
	const count = 20
	assets := make([]*Asset, count)
	for i := range assets {
		symbol := fmt.Sprintf("SYM%02d", i)
		assets[i] = NewAsset(symbol, models.KindStock, testSeries(t, symbol, 20))
	}
	stub := &stubIndicator{name: "buyer", flagCol: "buyer_flag", flag: 1}

	result, err := NewPipeline(4).ScoreAll(context.Background(), assets, []indicator.Indicator{stub})
	require.NoError(t, err)

	assert.Len(t, result.Scored, count)
	assert.Equal(t, int64(count), stub.applied.Load())
}

func TestPipeline_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assets := []*Asset{
		NewAsset("AAPL", models.KindStock, testSeries(t, "AAPL", 50)),
	}
	indicators := []indicator.Indicator{
		&stubIndicator{name: "buyer", flagCol: "buyer_flag", flag: 1},
	}

	result, err := NewPipeline(2).ScoreAll(ctx, assets, indicators)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Scored)
	assert.Empty(t, result.Failures)
	assert.Empty(t, result.RunID)
}

func TestPipeline_EmptyInput(t *testing.T) {
	result, err := NewPipeline(2).ScoreAll(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Scored)
	assert.Empty(t, result.Failures)
}
