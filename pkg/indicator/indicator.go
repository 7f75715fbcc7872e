package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// Indicator is one technical indicator: a fixed configuration plus a
// deterministic transform that annotates a price series with derived
// columns and, for most variants, a per-bar directional flag column
// holding values in {-1, 0, +1}.
type Indicator interface {
	// Name returns the indicator name, used as the detailed-score key
	Name() string

	// FlagColumn returns the name of the flag column this indicator
	// writes, or "" for informational-only indicators
	FlagColumn() string

	// MinLookback returns the minimum number of bars required, i.e. the
	// largest window parameter the indicator uses
	MinLookback() int

	// Apply annotates the series in place. It fails with
	// models.ErrInsufficientHistory when the series is shorter than
	// MinLookback. It never reorders or drops bars, and reapplying
	// overwrites the same columns.
	Apply(series *models.PriceSeries) error
}

func checkHistory(ind Indicator, series *models.PriceSeries) error {
	if series.Len() < ind.MinLookback() {
		return fmt.Errorf("%w: %s needs %d bars, %s has %d",
			models.ErrInsufficientHistory, ind.Name(), ind.MinLookback(),
			series.Symbol(), series.Len())
	}
	return nil
}
