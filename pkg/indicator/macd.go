package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// Column names written by MACD
const (
	ColMACD       = "macd"
	ColMACDSignal = "macd_signal"
	ColMACDHist   = "macd_hist"
	ColMACDFlag   = "macd_flag"
)

// MACDConfig holds MACD parameters plus the windows of the internally
// composed EMA triplet used as the trend reference
type MACDConfig struct {
	FastPeriod   int
	SlowPeriod   int
	SignalPeriod int

	TrendFastPeriod   int
	TrendMediumPeriod int
	TrendSlowPeriod   int

	Enabled bool
}

// DefaultMACDConfig returns the standard 12/26/9 setup with a 20/50/200
// trend triplet
func DefaultMACDConfig() MACDConfig {
	return MACDConfig{
		FastPeriod:        12,
		SlowPeriod:        26,
		SignalPeriod:      9,
		TrendFastPeriod:   20,
		TrendMediumPeriod: 50,
		TrendSlowPeriod:   200,
		Enabled:           true,
	}
}

// MACD computes the moving average convergence/divergence line, its
// signal line and histogram. The flag is a strong-signal filter: a buy
// needs price above the medium trend EMA AND a negative macd crossing up
// through the signal line; a sell is the mirror image. Both conditions
// must hold on the same bar.
type MACD struct {
	cfg   MACDConfig
	trend *EMATriplet
}

// NewMACD creates a MACD indicator
func NewMACD(cfg MACDConfig) (*MACD, error) {
	if cfg.FastPeriod < 1 || cfg.SlowPeriod < 1 || cfg.SignalPeriod < 1 {
		return nil, fmt.Errorf("MACD periods must be at least 1, got %d/%d/%d",
			cfg.FastPeriod, cfg.SlowPeriod, cfg.SignalPeriod)
	}
	if cfg.FastPeriod >= cfg.SlowPeriod {
		return nil, fmt.Errorf("MACD fast period (%d) must be below slow period (%d)",
			cfg.FastPeriod, cfg.SlowPeriod)
	}
	trend, err := NewEMATriplet(EMATripletConfig{
		FastPeriod:   cfg.TrendFastPeriod,
		MediumPeriod: cfg.TrendMediumPeriod,
		SlowPeriod:   cfg.TrendSlowPeriod,
	})
	if err != nil {
		return nil, fmt.Errorf("MACD trend triplet: %w", err)
	}
	return &MACD{cfg: cfg, trend: trend}, nil
}

func (m *MACD) Name() string {
	return "macd"
}

func (m *MACD) FlagColumn() string {
	return ColMACDFlag
}

func (m *MACD) MinLookback() int {
	lookback := m.cfg.SlowPeriod
	if m.cfg.SignalPeriod > lookback {
		lookback = m.cfg.SignalPeriod
	}
	if m.trend.MinLookback() > lookback {
		lookback = m.trend.MinLookback()
	}
	return lookback
}

// Apply adds the macd, macd_signal, macd_hist and macd_flag columns,
// plus the trend triplet's ema_* columns
func (m *MACD) Apply(series *models.PriceSeries) error {
	if err := checkHistory(m, series); err != nil {
		return err
	}
	if err := m.trend.Apply(series); err != nil {
		return err
	}

	n := series.Len()
	closes := series.Closes()

	fast := emaSeries(closes, m.cfg.FastPeriod)
	slow := emaSeries(closes, m.cfg.SlowPeriod)

	macd := nanSlice(n)
	for i := 0; i < n; i++ {
		if finite(fast[i], slow[i]) {
			macd[i] = fast[i] - slow[i]
		}
	}

	signal := emaSeries(macd, m.cfg.SignalPeriod)

	hist := nanSlice(n)
	for i := 0; i < n; i++ {
		if finite(macd[i], signal[i]) {
			hist[i] = macd[i] - signal[i]
		}
	}

	medium, err := series.Column(ColEMAMedium)
	if err != nil {
		return err
	}

	flags := macdFlags(closes, medium, macd, signal)

	if err := series.SetColumn(ColMACD, macd); err != nil {
		return err
	}
	if err := series.SetColumn(ColMACDSignal, signal); err != nil {
		return err
	}
	if err := series.SetColumn(ColMACDHist, hist); err != nil {
		return err
	}
	return series.SetColumn(ColMACDFlag, flags)
}

// macdFlags applies the strong-signal rule: both the trend confirmation
// against the medium EMA and the sign-constrained signal-line crossover
// must hold on the same bar.
func macdFlags(closes, medium, macd, signal []float64) []float64 {
	flags := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		if !finite(medium[i]) {
			continue
		}
		switch {
		case closes[i] > medium[i] && macd[i] < 0 && crossesUp(macd, signal, i):
			flags[i] = 1
		case closes[i] < medium[i] && macd[i] > 0 && crossesDown(macd, signal, i):
			flags[i] = -1
		}
	}
	return flags
}
