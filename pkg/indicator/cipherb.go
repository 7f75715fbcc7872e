package indicator

import (
	"fmt"
	"math"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// Column names written by CipherB
const (
	ColCipherWT1  = "cipher_b_wt1"
	ColCipherWT2  = "cipher_b_wt2"
	ColCipherFlag = "cipher_b_flag"
)

// CipherBConfig holds wave-trend oscillator parameters. The four
// overbought/oversold levels are carried for display and forward
// compatibility; the flag is driven purely by the wt1/wt2 crossover.
type CipherBConfig struct {
	ChannelLength int // n1
	AverageLength int // n2
	WTSmoothing   int

	OverBoughtLevel1 float64
	OverBoughtLevel2 float64
	OverSoldLevel1   float64
	OverSoldLevel2   float64

	Enabled bool
}

// DefaultCipherBConfig returns the standard 10/21/4 setup
func DefaultCipherBConfig() CipherBConfig {
	return CipherBConfig{
		ChannelLength:    10,
		AverageLength:    21,
		WTSmoothing:      4,
		OverBoughtLevel1: 60,
		OverBoughtLevel2: 53,
		OverSoldLevel1:   -60,
		OverSoldLevel2:   -53,
		Enabled:          true,
	}
}

// CipherB is the wave-trend oscillator: a channel index built from the
// typical price's deviation around its EMA, smoothed twice into wt1/wt2.
// The flag fires on wt1 crossing wt2.
type CipherB struct {
	cfg CipherBConfig
}

// NewCipherB creates a CipherB indicator
func NewCipherB(cfg CipherBConfig) (*CipherB, error) {
	if cfg.ChannelLength < 1 || cfg.AverageLength < 1 || cfg.WTSmoothing < 1 {
		return nil, fmt.Errorf("CipherB windows must be at least 1, got n1=%d n2=%d smoothing=%d",
			cfg.ChannelLength, cfg.AverageLength, cfg.WTSmoothing)
	}
	return &CipherB{cfg: cfg}, nil
}

func (c *CipherB) Name() string {
	return "cipher_b"
}

func (c *CipherB) FlagColumn() string {
	return ColCipherFlag
}

func (c *CipherB) MinLookback() int {
	lookback := c.cfg.ChannelLength
	if c.cfg.AverageLength > lookback {
		lookback = c.cfg.AverageLength
	}
	if c.cfg.WTSmoothing > lookback {
		lookback = c.cfg.WTSmoothing
	}
	return lookback
}

// Apply adds the cipher_b_wt1, cipher_b_wt2 and cipher_b_flag columns
func (c *CipherB) Apply(series *models.PriceSeries) error {
	if err := checkHistory(c, series); err != nil {
		return err
	}

	n := series.Len()
	ap := series.TypicalPrices()
	esa := emaSeries(ap, c.cfg.ChannelLength)

	dev := nanSlice(n)
	for i := 0; i < n; i++ {
		if finite(ap[i], esa[i]) {
			dev[i] = math.Abs(ap[i] - esa[i])
		}
	}
	d := emaSeries(dev, c.cfg.ChannelLength)

	// Channel index; a zero mean deviation leaves it undefined rather
	// than dividing by zero.
	ci := nanSlice(n)
	for i := 0; i < n; i++ {
		if !finite(ap[i], esa[i], d[i]) || d[i] == 0 {
			continue
		}
		ci[i] = (ap[i] - esa[i]) / (0.015 * d[i])
	}

	wt1 := emaSeries(ci, c.cfg.AverageLength)
	wt2 := smaSeries(wt1, c.cfg.WTSmoothing)

	flags := make([]float64, n)
	for i := 1; i < n; i++ {
		switch {
		case crossesUp(wt1, wt2, i):
			flags[i] = 1
		case crossesDown(wt1, wt2, i):
			flags[i] = -1
		}
	}

	if err := series.SetColumn(ColCipherWT1, wt1); err != nil {
		return err
	}
	if err := series.SetColumn(ColCipherWT2, wt2); err != nil {
		return err
	}
	return series.SetColumn(ColCipherFlag, flags)
}
