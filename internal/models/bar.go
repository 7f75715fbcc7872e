package models

import (
	"math"
	"time"
)

// AssetKind distinguishes stocks (with financials and sentiment) from
// market indices
type AssetKind string

const (
	KindStock AssetKind = "stock"
	KindIndex AssetKind = "index"
)

// Bar represents a single OHLCV record in a price series
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Validate validates a Bar
func (b *Bar) Validate() error {
	if b.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	if b.High < b.Low {
		return ErrInvalidBar
	}
	for _, p := range []float64{b.Open, b.High, b.Low, b.Close} {
		if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return ErrInvalidPrice
		}
	}
	if b.Volume < 0 || math.IsNaN(b.Volume) {
		return ErrInvalidVolume
	}
	return nil
}
