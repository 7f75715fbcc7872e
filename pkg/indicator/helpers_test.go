package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// seriesFromCloses builds a daily series where high/low bracket the
// close by one point
func seriesFromCloses(t *testing.T, symbol string, closes []float64) *models.PriceSeries {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	series, err := models.NewPriceSeries(symbol, bars)
	if err != nil {
		t.Fatalf("failed to build series: %v", err)
	}
	return series
}

// linearCloses returns n closes rising linearly from lo to hi
func linearCloses(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// sineCloses returns n closes oscillating around base
func sineCloses(n int, base, amplitude, period float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + amplitude*math.Sin(2*math.Pi*float64(i)/period)
	}
	return out
}

// sameSeries compares two float columns treating NaN == NaN
func sameSeries(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// assertFlagRange fails if any flag is outside {-1, 0, 1}
func assertFlagRange(t *testing.T, flags []float64) {
	t.Helper()
	for i, f := range flags {
		if f != -1 && f != 0 && f != 1 {
			t.Errorf("flag at %d out of range: %v", i, f)
		}
	}
}

// mustColumn fetches a column or fails the test
func mustColumn(t *testing.T, series *models.PriceSeries, name string) []float64 {
	t.Helper()
	col, err := series.Column(name)
	if err != nil {
		t.Fatalf("column %q: %v", name, err)
	}
	return col
}
