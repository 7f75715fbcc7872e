package scoring

import (
	"math"

	"github.com/mohamedkhairy/stock-screener/internal/models"
	"github.com/mohamedkhairy/stock-screener/pkg/indicator"
)

// Aggregate reads the last bar's flag of every enabled indicator that
// produces one and folds them into a global score (the plain sum) and a
// detailed breakdown (the nonzero subset, keyed by indicator name).
// Informational indicators contribute nothing. The series must already
// be annotated by every indicator in the slice.
func Aggregate(series *models.PriceSeries, indicators []indicator.Indicator) (float64, map[string]int, error) {
	detailed := make(map[string]int)
	var global float64

	for _, ind := range indicators {
		col := ind.FlagColumn()
		if col == "" {
			continue
		}
		last, err := series.Last(col)
		if err != nil {
			return 0, nil, err
		}
		// Flag columns are always finite, but a NaN here must stay
		// neutral rather than poison the sum.
		if math.IsNaN(last) {
			continue
		}
		flag := int(last)
		if flag != 0 {
			detailed[ind.Name()] = flag
		}
		global += last
	}
	return global, detailed, nil
}
