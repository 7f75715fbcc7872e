package models

import (
	"fmt"
	"math"
)

// PriceSeries holds one instrument's ordered bars plus named derived
// columns added by indicators. The bar backbone is fixed at construction;
// derived columns are overwritten freely but always span the full length.
// A series is exclusively owned by one asset and must not be shared
// between concurrent scoring tasks.
type PriceSeries struct {
	symbol  string
	bars    []Bar
	columns map[string][]float64
}

// NewPriceSeries validates the bars and wraps them in a PriceSeries.
// Timestamps must be strictly increasing (which also rules out
// duplicates).
func NewPriceSeries(symbol string, bars []Bar) (*PriceSeries, error) {
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeries, symbol)
	}
	for i := range bars {
		if err := bars[i].Validate(); err != nil {
			return nil, fmt.Errorf("bar %d of %s: %w", i, symbol, err)
		}
		if i > 0 && !bars[i].Timestamp.After(bars[i-1].Timestamp) {
			return nil, fmt.Errorf("bar %d of %s: %w", i, symbol, ErrUnorderedSeries)
		}
	}
	return &PriceSeries{
		symbol:  symbol,
		bars:    bars,
		columns: make(map[string][]float64),
	}, nil
}

// Symbol returns the instrument symbol this series belongs to
func (s *PriceSeries) Symbol() string {
	return s.symbol
}

// Len returns the number of bars
func (s *PriceSeries) Len() int {
	return len(s.bars)
}

// Bar returns the bar at index i
func (s *PriceSeries) Bar(i int) Bar {
	return s.bars[i]
}

// LastBar returns the most recent bar
func (s *PriceSeries) LastBar() Bar {
	return s.bars[len(s.bars)-1]
}

// Closes returns a copy of the close prices
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.bars))
	for i := range s.bars {
		out[i] = s.bars[i].Close
	}
	return out
}

// TypicalPrices returns (high+low+close)/3 per bar
func (s *PriceSeries) TypicalPrices() []float64 {
	out := make([]float64, len(s.bars))
	for i := range s.bars {
		out[i] = (s.bars[i].High + s.bars[i].Low + s.bars[i].Close) / 3
	}
	return out
}

// SetColumn attaches or overwrites a derived column. The column must
// cover every bar.
func (s *PriceSeries) SetColumn(name string, values []float64) error {
	if len(values) != len(s.bars) {
		return fmt.Errorf("column %q: %w (got %d, want %d)",
			name, ErrColumnLength, len(values), len(s.bars))
	}
	s.columns[name] = values
	return nil
}

// Column returns a derived column by name
func (s *PriceSeries) Column(name string) ([]float64, error) {
	col, ok := s.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrMissingColumn, name, s.symbol)
	}
	return col, nil
}

// HasColumn reports whether a derived column exists
func (s *PriceSeries) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Last returns the most recent value of a derived column
func (s *PriceSeries) Last(name string) (float64, error) {
	col, err := s.Column(name)
	if err != nil {
		return math.NaN(), err
	}
	return col[len(col)-1], nil
}

// ColumnNames lists the derived columns currently attached
func (s *PriceSeries) ColumnNames() []string {
	names := make([]string, 0, len(s.columns))
	for name := range s.columns {
		names = append(names, name)
	}
	return names
}
