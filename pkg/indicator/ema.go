package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// Column names written by EMATriplet
const (
	ColEMAFast   = "ema_fast"
	ColEMAMedium = "ema_medium"
	ColEMASlow   = "ema_slow"
)

// EMATripletConfig holds the three EMA windows
type EMATripletConfig struct {
	FastPeriod   int
	MediumPeriod int
	SlowPeriod   int
	Enabled      bool
}

// DefaultEMATripletConfig returns the standard 20/50/200 setup
func DefaultEMATripletConfig() EMATripletConfig {
	return EMATripletConfig{
		FastPeriod:   20,
		MediumPeriod: 50,
		SlowPeriod:   200,
		Enabled:      true,
	}
}

// EMATriplet adds fast/medium/slow exponential moving averages over
// close prices. It is informational only and emits no flag; MACD
// composes its own triplet for trend confirmation, and charting reads
// the columns directly.
type EMATriplet struct {
	cfg EMATripletConfig
}

// NewEMATriplet creates an EMA triplet indicator
func NewEMATriplet(cfg EMATripletConfig) (*EMATriplet, error) {
	if cfg.FastPeriod < 1 || cfg.MediumPeriod < 1 || cfg.SlowPeriod < 1 {
		return nil, fmt.Errorf("EMA periods must be at least 1, got %d/%d/%d",
			cfg.FastPeriod, cfg.MediumPeriod, cfg.SlowPeriod)
	}
	if cfg.FastPeriod >= cfg.MediumPeriod || cfg.MediumPeriod >= cfg.SlowPeriod {
		return nil, fmt.Errorf("EMA periods must be increasing, got %d/%d/%d",
			cfg.FastPeriod, cfg.MediumPeriod, cfg.SlowPeriod)
	}
	return &EMATriplet{cfg: cfg}, nil
}

func (e *EMATriplet) Name() string {
	return "ema"
}

// FlagColumn returns "" since the triplet carries no directional signal
func (e *EMATriplet) FlagColumn() string {
	return ""
}

func (e *EMATriplet) MinLookback() int {
	return e.cfg.SlowPeriod
}

// Apply adds the ema_fast, ema_medium and ema_slow columns
func (e *EMATriplet) Apply(series *models.PriceSeries) error {
	if err := checkHistory(e, series); err != nil {
		return err
	}

	closes := series.Closes()
	if err := series.SetColumn(ColEMAFast, emaSeries(closes, e.cfg.FastPeriod)); err != nil {
		return err
	}
	if err := series.SetColumn(ColEMAMedium, emaSeries(closes, e.cfg.MediumPeriod)); err != nil {
		return err
	}
	return series.SetColumn(ColEMASlow, emaSeries(closes, e.cfg.SlowPeriod))
}
