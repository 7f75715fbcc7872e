package scoring

import (
	"fmt"

	"github.com/mohamedkhairy/stock-screener/internal/models"
	"github.com/mohamedkhairy/stock-screener/pkg/indicator"
)

// Asset wraps one instrument's price series, optional financial
// metadata and its current pressure score. The series is exclusively
// owned: during a scoring run only this asset's task touches it.
type Asset struct {
	Symbol     string              `json:"symbol"`
	Kind       models.AssetKind    `json:"kind"`
	Series     *models.PriceSeries `json:"-"`
	Financials *models.Financials  `json:"financials,omitempty"`

	GlobalScore   float64        `json:"global_score"`
	DetailedScore map[string]int `json:"detailed_score"`
}

// NewAsset constructs an asset around a loaded series
func NewAsset(symbol string, kind models.AssetKind, series *models.PriceSeries) *Asset {
	return &Asset{
		Symbol:        symbol,
		Kind:          kind,
		Series:        series,
		DetailedScore: make(map[string]int),
	}
}

// ApplyIndicators applies each indicator in order, then recomputes the
// global and detailed score from scratch. Calling it twice with the same
// set overwrites rather than accumulates. An insufficient-history
// failure propagates; the score is left reset so a failed asset never
// carries a stale score.
func (a *Asset) ApplyIndicators(indicators []indicator.Indicator) error {
	a.GlobalScore = 0
	a.DetailedScore = make(map[string]int)

	for _, ind := range indicators {
		if err := ind.Apply(a.Series); err != nil {
			return fmt.Errorf("asset %s: %w", a.Symbol, err)
		}
	}

	global, detailed, err := Aggregate(a.Series, indicators)
	if err != nil {
		return fmt.Errorf("asset %s: %w", a.Symbol, err)
	}
	a.GlobalScore = global
	a.DetailedScore = detailed
	return nil
}
