package models

import "errors"

var (
	// ErrInsufficientHistory is returned when a series has fewer bars than
	// an indicator's minimum lookback
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrDataUnavailable is returned by data providers when a symbol's
	// series cannot be loaded
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrMissingColumn is returned when a derived column is read before the
	// indicator that produces it was applied
	ErrMissingColumn = errors.New("missing column")

	ErrInvalidSymbol    = errors.New("invalid symbol")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidBar       = errors.New("invalid bar (high < low)")
	ErrInvalidVolume    = errors.New("invalid volume")
	ErrEmptySeries      = errors.New("empty series")
	ErrUnorderedSeries  = errors.New("series timestamps must be strictly increasing")
	ErrColumnLength     = errors.New("column length must match series length")
)
