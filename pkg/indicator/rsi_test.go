package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

func TestNewRSI_Validation(t *testing.T) {
	if _, err := NewRSI(RSIConfig{Period: 1, Overbought: 70, Oversold: 30}); err == nil {
		t.Error("expected error for period < 2")
	}
	if _, err := NewRSI(RSIConfig{Period: 14, Overbought: 30, Oversold: 70}); err == nil {
		t.Error("expected error for inverted levels")
	}
	rsi, err := NewRSI(DefaultRSIConfig())
	if err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}
	if rsi.Name() != "rsi" || rsi.FlagColumn() != ColRSIFlag || rsi.MinLookback() != 14 {
		t.Errorf("unexpected identity: %s/%s/%d", rsi.Name(), rsi.FlagColumn(), rsi.MinLookback())
	}
}

func TestRSI_InsufficientHistory(t *testing.T) {
	rsi, _ := NewRSI(DefaultRSIConfig())
	series := seriesFromCloses(t, "SHORT", linearCloses(5, 100, 110))

	err := rsi.Apply(series)
	if !errors.Is(err, models.ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
}

func TestRSI_ExactMinimumHistory(t *testing.T) {
	rsi, _ := NewRSI(DefaultRSIConfig())
	series := seriesFromCloses(t, "EXACT", linearCloses(14, 100, 130))

	if err := rsi.Apply(series); err != nil {
		t.Fatalf("14 bars must satisfy a 14-period RSI: %v", err)
	}

	col := mustColumn(t, series, ColRSI)
	for i := 0; i < 13; i++ {
		if !math.IsNaN(col[i]) {
			t.Errorf("expected NaN at %d during warm-up, got %v", i, col[i])
		}
	}
	if math.IsNaN(col[13]) {
		t.Error("last RSI value must be defined on an exact-lookback series")
	}
}

func TestRSI_UptrendFlagsOverbought(t *testing.T) {
	rsi, _ := NewRSI(DefaultRSIConfig())
	series := seriesFromCloses(t, "UP", linearCloses(300, 100, 400))

	if err := rsi.Apply(series); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	flags := mustColumn(t, series, ColRSIFlag)
	assertFlagRange(t, flags)

	// A strong uptrend pins RSI above 70: overbought means sell pressure
	if flags[len(flags)-1] != -1 {
		t.Errorf("expected last flag -1 on a strong uptrend, got %v", flags[len(flags)-1])
	}
}

func TestRSI_DowntrendFlagsOversold(t *testing.T) {
	rsi, _ := NewRSI(DefaultRSIConfig())
	series := seriesFromCloses(t, "DOWN", linearCloses(300, 400, 100))

	if err := rsi.Apply(series); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	flags := mustColumn(t, series, ColRSIFlag)
	if flags[len(flags)-1] != 1 {
		t.Errorf("expected last flag +1 on a strong downtrend, got %v", flags[len(flags)-1])
	}
}

func TestRSI_Deterministic(t *testing.T) {
	rsi, _ := NewRSI(DefaultRSIConfig())
	series := seriesFromCloses(t, "DET", sineCloses(120, 100, 10, 17))

	if err := rsi.Apply(series); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	first := append([]float64(nil), mustColumn(t, series, ColRSI)...)
	firstFlags := append([]float64(nil), mustColumn(t, series, ColRSIFlag)...)

	if err := rsi.Apply(series); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if !sameSeries(first, mustColumn(t, series, ColRSI)) {
		t.Error("reapplying must produce bit-identical RSI values")
	}
	if !sameSeries(firstFlags, mustColumn(t, series, ColRSIFlag)) {
		t.Error("reapplying must produce bit-identical flags")
	}
}
