package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

func TestFormatFinancials_Nil(t *testing.T) {
	lines := FormatFinancials(nil)
	require.Len(t, lines, 7)
	for _, line := range lines {
		assert.Contains(t, line, "N/A")
	}
}

func TestFormatFinancials_Populated(t *testing.T) {
	price := 250.5
	low, high := 240.0, 255.25
	pct := 1.234
	cap_ := int64(3_000_000_000_000)
	vol := int64(52_000_000)

	lines := FormatFinancials(&models.Financials{
		TargetMeanPrice:        &price,
		RegularMarketDayLow:    &low,
		RegularMarketDayHigh:   &high,
		RegularMarketChangePct: &pct,
		MarketCap:              &cap_,
		AvgDailyVolume10Day:    &vol,
	})
	require.Len(t, lines, 7)

	assert.Equal(t, "Target price (1 year): $250.50", lines[0])
	assert.Equal(t, "Day Low - Day High: $240.00 - $255.25", lines[1])
	assert.Equal(t, "Market Change: 1.234%", lines[2])
	assert.Equal(t, "1 year week change: N/A", lines[3])
	assert.Equal(t, "Market Cap: $3000000000000", lines[4])
	assert.Equal(t, "Total Revenue: N/A", lines[5])
	assert.Equal(t, "Average Daily Volume (last 10 days): 52000000", lines[6])
}
