package data

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// MockProvider generates deterministic synthetic daily series for tests
// and local runs without datasets. The shape depends only on the symbol,
// so repeated loads are identical.
type MockProvider struct {
	bars  int
	start time.Time
}

// NewMockProvider creates a mock provider with 400 daily bars ending at
// a fixed date
func NewMockProvider() *MockProvider {
	return &MockProvider{
		bars:  400,
		start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *MockProvider) Name() string {
	return "mock"
}

// Load synthesizes a drifting sine-wave series seeded by the symbol
func (m *MockProvider) Load(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h := fnv.New32a()
	h.Write([]byte(symbol))
	seed := float64(h.Sum32()%1000) / 1000.0

	base := 50.0 + 200.0*seed
	drift := (seed - 0.5) * 0.4
	bars := make([]models.Bar, m.bars)
	for i := range bars {
		t := float64(i)
		closePrice := base + drift*t + 5.0*math.Sin(t/9.0+seed*math.Pi*2)
		if closePrice < 1 {
			closePrice = 1
		}
		openPrice := closePrice - 0.5*math.Sin(t/5.0)
		high := math.Max(openPrice, closePrice) + 0.8
		low := math.Min(openPrice, closePrice) - 0.8
		if low < 0.5 {
			low = 0.5
		}
		bars[i] = models.Bar{
			Timestamp: m.start.AddDate(0, 0, i),
			Open:      openPrice,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    1e6 * (1 + seed + 0.1*math.Sin(t/3.0)),
		}
	}
	return models.NewPriceSeries(symbol, bars)
}

// Sentiment returns a mild deterministic sentiment wave
func (m *MockProvider) Sentiment(ctx context.Context, symbol string) ([]SentimentPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h := fnv.New32a()
	h.Write([]byte(symbol))
	seed := float64(h.Sum32()%1000) / 1000.0

	points := make([]SentimentPoint, m.bars)
	for i := range points {
		points[i] = SentimentPoint{
			Timestamp: m.start.AddDate(0, 0, i),
			Score:     0.3 * math.Sin(float64(i)/7.0+seed*math.Pi*2),
		}
	}
	return points, nil
}

// Financials returns nothing; the mock universe carries no metadata
func (m *MockProvider) Financials(ctx context.Context, symbol string) (*models.Financials, error) {
	return nil, ctx.Err()
}
