package indicator

import (
	"fmt"
	"math"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// Column names written by StochRSI
const (
	ColStochRSIK    = "stoch_rsi_k"
	ColStochRSID    = "stoch_rsi_d"
	ColStochRSIFlag = "stoch_rsi_flag"
)

// StochRSIConfig holds stochastic RSI parameters
type StochRSIConfig struct {
	Period    int
	K         int
	D         int
	BuyLevel  float64
	SellLevel float64
	Enabled   bool
}

// DefaultStochRSIConfig returns the standard 14/3/3 setup with 20/80 levels
func DefaultStochRSIConfig() StochRSIConfig {
	return StochRSIConfig{
		Period:    14,
		K:         3,
		D:         3,
		BuyLevel:  20,
		SellLevel: 80,
		Enabled:   true,
	}
}

// StochRSI normalizes RSI over a rolling min/max window to a 0-100
// stochastic, smooths it into %K and %D, and flags level-gated one-bar
// %K/%D crossovers: %K below the buy level crossing up is buy pressure,
// %K above the sell level crossing down is sell pressure.
type StochRSI struct {
	cfg StochRSIConfig
}

// NewStochRSI creates a StochRSI indicator
func NewStochRSI(cfg StochRSIConfig) (*StochRSI, error) {
	if cfg.Period < 2 {
		return nil, fmt.Errorf("StochRSI period must be at least 2, got %d", cfg.Period)
	}
	if cfg.K < 1 || cfg.D < 1 {
		return nil, fmt.Errorf("StochRSI smoothing windows must be at least 1, got k=%d d=%d",
			cfg.K, cfg.D)
	}
	if cfg.BuyLevel >= cfg.SellLevel {
		return nil, fmt.Errorf("StochRSI buy level (%v) must be below sell level (%v)",
			cfg.BuyLevel, cfg.SellLevel)
	}
	return &StochRSI{cfg: cfg}, nil
}

func (s *StochRSI) Name() string {
	return "stoch_rsi"
}

func (s *StochRSI) FlagColumn() string {
	return ColStochRSIFlag
}

func (s *StochRSI) MinLookback() int {
	return s.cfg.Period
}

// Apply adds the stoch_rsi_k, stoch_rsi_d and stoch_rsi_flag columns
func (s *StochRSI) Apply(series *models.PriceSeries) error {
	if err := checkHistory(s, series); err != nil {
		return err
	}

	n := series.Len()
	rsi := wilderRSI(series.Closes(), s.cfg.Period)

	// Raw stochastic of RSI over a rolling period window, scaled 0-100.
	// A flat window (max == min) has no defined normalization: NaN.
	stoch := nanSlice(n)
	for i := s.cfg.Period - 1; i < n; i++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		ok := true
		for j := i - s.cfg.Period + 1; j <= i; j++ {
			if !finite(rsi[j]) {
				ok = false
				break
			}
			lo = math.Min(lo, rsi[j])
			hi = math.Max(hi, rsi[j])
		}
		if !ok || hi == lo {
			continue
		}
		stoch[i] = (rsi[i] - lo) / (hi - lo) * 100
	}

	k := smaSeries(stoch, s.cfg.K)
	d := smaSeries(k, s.cfg.D)

	flags := stochFlags(k, d, s.cfg.BuyLevel, s.cfg.SellLevel)

	if err := series.SetColumn(ColStochRSIK, k); err != nil {
		return err
	}
	if err := series.SetColumn(ColStochRSID, d); err != nil {
		return err
	}
	return series.SetColumn(ColStochRSIFlag, flags)
}

// stochFlags applies the level-gated crossover rule. The level gate and
// the crossover are checked on the same bar: a %K/%D cross-up only
// counts while the current %K is still under the buy level, and the
// mirror for sells.
func stochFlags(k, d []float64, buyLevel, sellLevel float64) []float64 {
	flags := make([]float64, len(k))
	for i := 1; i < len(k); i++ {
		switch {
		case k[i] < buyLevel && crossesUp(k, d, i):
			flags[i] = 1
		case k[i] > sellLevel && crossesDown(k, d, i):
			flags[i] = -1
		}
	}
	return flags
}
