package indicator

import (
	"fmt"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// Column names written by RSI
const (
	ColRSI     = "rsi"
	ColRSIFlag = "rsi_flag"
)

// RSIConfig holds RSI parameters
type RSIConfig struct {
	Period     int
	Overbought float64
	Oversold   float64
	Enabled    bool
}

// DefaultRSIConfig returns the standard 14-period 70/30 setup
func DefaultRSIConfig() RSIConfig {
	return RSIConfig{
		Period:     14,
		Overbought: 70,
		Oversold:   30,
		Enabled:    true,
	}
}

// RSI computes Wilder's Relative Strength Index over close prices and
// flags oversold bars as buy pressure (+1) and overbought bars as sell
// pressure (-1).
type RSI struct {
	cfg RSIConfig
}

// NewRSI creates an RSI indicator
func NewRSI(cfg RSIConfig) (*RSI, error) {
	if cfg.Period < 2 {
		return nil, fmt.Errorf("RSI period must be at least 2, got %d", cfg.Period)
	}
	if cfg.Oversold >= cfg.Overbought {
		return nil, fmt.Errorf("RSI oversold level (%v) must be below overbought level (%v)",
			cfg.Oversold, cfg.Overbought)
	}
	return &RSI{cfg: cfg}, nil
}

func (r *RSI) Name() string {
	return "rsi"
}

func (r *RSI) FlagColumn() string {
	return ColRSIFlag
}

func (r *RSI) MinLookback() int {
	return r.cfg.Period
}

// Apply adds the rsi and rsi_flag columns
func (r *RSI) Apply(series *models.PriceSeries) error {
	if err := checkHistory(r, series); err != nil {
		return err
	}

	rsi := wilderRSI(series.Closes(), r.cfg.Period)

	flags := make([]float64, series.Len())
	for i, v := range rsi {
		switch {
		case !finite(v):
			flags[i] = 0
		case v < r.cfg.Oversold:
			flags[i] = 1
		case v > r.cfg.Overbought:
			flags[i] = -1
		}
	}

	if err := series.SetColumn(ColRSI, rsi); err != nil {
		return err
	}
	return series.SetColumn(ColRSIFlag, flags)
}
