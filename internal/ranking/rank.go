package ranking

import (
	"math"
	"sort"

	"github.com/mohamedkhairy/stock-screener/internal/scoring"
)

// SortByPressure orders assets by descending absolute global score,
// breaking ties by symbol. The pipeline returns completion order, so
// display always goes through here first.
func SortByPressure(assets []*scoring.Asset) {
	sort.Slice(assets, func(i, j int) bool {
		ai := math.Abs(assets[i].GlobalScore)
		aj := math.Abs(assets[j].GlobalScore)
		if ai != aj {
			return ai > aj
		}
		return assets[i].Symbol < assets[j].Symbol
	})
}

// FilterByAgreement keeps assets on which exactly n indicators agree,
// i.e. the absolute global score equals n
func FilterByAgreement(assets []*scoring.Asset, n int) []*scoring.Asset {
	out := make([]*scoring.Asset, 0, len(assets))
	for _, a := range assets {
		if int(math.Abs(a.GlobalScore)) == n {
			out = append(out, a)
		}
	}
	return out
}

// MaxAgreement returns the largest absolute global score in the set,
// the upper bound for the agreement filter
func MaxAgreement(assets []*scoring.Asset) int {
	max := 0
	for _, a := range assets {
		if v := int(math.Abs(a.GlobalScore)); v > max {
			max = v
		}
	}
	return max
}
