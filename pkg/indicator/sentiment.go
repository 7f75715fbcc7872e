package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// Column names read/written by SentimentScore
const (
	ColSentimentScore = "score"
	ColSentimentFlag  = "sentiment_flag"
)

// SentimentConfig holds news-sentiment thresholds
type SentimentConfig struct {
	AboveThreshold float64
	BelowThreshold float64
	Enabled        bool
}

// DefaultSentimentConfig returns the standard +/-0.1 thresholds
func DefaultSentimentConfig() SentimentConfig {
	return SentimentConfig{
		AboveThreshold: 0.1,
		BelowThreshold: -0.1,
		Enabled:        true,
	}
}

// SentimentScore flags bars whose externally supplied daily sentiment
// score clears a threshold. Assets without a sentiment column (indices,
// thinly covered stocks) degrade to an all-zero column instead of
// failing.
type SentimentScore struct {
	cfg SentimentConfig
}

// NewSentimentScore creates a SentimentScore indicator
func NewSentimentScore(cfg SentimentConfig) (*SentimentScore, error) {
	if cfg.BelowThreshold >= cfg.AboveThreshold {
		return nil, fmt.Errorf("sentiment below threshold (%v) must be under above threshold (%v)",
			cfg.BelowThreshold, cfg.AboveThreshold)
	}
	return &SentimentScore{cfg: cfg}, nil
}

func (s *SentimentScore) Name() string {
	return "sentiment"
}

func (s *SentimentScore) FlagColumn() string {
	return ColSentimentFlag
}

func (s *SentimentScore) MinLookback() int {
	return 1
}

// Apply adds the sentiment_flag column, zero-filling the score column
// first when the sentiment collaborator never merged one
func (s *SentimentScore) Apply(series *models.PriceSeries) error {
	if err := checkHistory(s, series); err != nil {
		return err
	}

	if !series.HasColumn(ColSentimentScore) {
		if err := series.SetColumn(ColSentimentScore, make([]float64, series.Len())); err != nil {
			return err
		}
	}
	scores, err := series.Column(ColSentimentScore)
	if err != nil {
		return err
	}

	flags := make([]float64, series.Len())
	for i, v := range scores {
		switch {
		case !finite(v):
			flags[i] = 0
		case v >= s.cfg.AboveThreshold:
			flags[i] = 1
		case v <= s.cfg.BelowThreshold:
			flags[i] = -1
		}
	}
	return series.SetColumn(ColSentimentFlag, flags)
}
