package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

var (
	// ErrUnknownProvider is returned for an unregistered provider type
	ErrUnknownProvider = errors.New("unknown provider type")
)

// Provider supplies one instrument's historical price series. It is an
// opaque collaborator: the core neither retries nor caches, and a
// symbol that cannot be served fails with models.ErrDataUnavailable.
type Provider interface {
	// Load returns the ordered price series for a symbol
	Load(ctx context.Context, symbol string) (*models.PriceSeries, error)

	// Name returns the provider type (e.g., "csv", "mock")
	Name() string
}

// SentimentPoint is one daily news-sentiment aggregate
type SentimentPoint struct {
	Timestamp time.Time
	Score     float64
}

// SentimentProvider supplies the optional daily sentiment scores merged
// into a series before SentimentScore runs. A symbol without coverage
// returns an empty slice, not an error.
type SentimentProvider interface {
	Sentiment(ctx context.Context, symbol string) ([]SentimentPoint, error)
}

// FinancialsProvider supplies the optional read-only financial metadata
// attached to a stock. A symbol without coverage returns (nil, nil).
type FinancialsProvider interface {
	Financials(ctx context.Context, symbol string) (*models.Financials, error)
}

// ProviderConfig holds provider construction options
type ProviderConfig struct {
	// Dir is the dataset root for file-backed providers
	Dir string
}

// NewProvider constructs a provider by type
func NewProvider(providerType string, cfg ProviderConfig) (Provider, error) {
	switch providerType {
	case "csv":
		return NewCSVProvider(cfg.Dir), nil
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, providerType)
	}
}

// MergeSentiment attaches a "score" column to the series: each bar takes
// the most recent sentiment point at or before its timestamp, and bars
// older than the first point take the first point's score. No points
// means no column; SentimentScore zero-fills on its own.
func MergeSentiment(series *models.PriceSeries, points []SentimentPoint) error {
	if len(points) == 0 {
		return nil
	}
	scores := make([]float64, series.Len())
	idx := -1
	for i := 0; i < series.Len(); i++ {
		ts := series.Bar(i).Timestamp
		for idx+1 < len(points) && !points[idx+1].Timestamp.After(ts) {
			idx++
		}
		if idx < 0 {
			scores[i] = points[0].Score
			continue
		}
		scores[i] = points[idx].Score
	}
	return series.SetColumn("score", scores)
}
