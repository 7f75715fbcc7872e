package ranking

import (
	"fmt"

	"github.com/mohamedkhairy/stock-screener/internal/models"
)

// Presentation-only formatting for financial metadata. Absent fields
// render "N/A" instead of crashing score display.

func formatMoney(v *int64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%d", *v)
}

func formatPrice(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func formatPct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.3f%%", *v)
}

func formatCount(v *int64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

// FormatFinancials renders a financials record as display lines. A nil
// record yields all-N/A lines.
func FormatFinancials(fin *models.Financials) []string {
	if fin == nil {
		fin = &models.Financials{}
	}
	return []string{
		"Target price (1 year): " + formatPrice(fin.TargetMeanPrice),
		"Day Low - Day High: " + formatPrice(fin.RegularMarketDayLow) +
			" - " + formatPrice(fin.RegularMarketDayHigh),
		"Market Change: " + formatPct(fin.RegularMarketChangePct),
		"1 year week change: " + formatPct(fin.FiftyTwoWeekChangePct),
		"Market Cap: " + formatMoney(fin.MarketCap),
		"Total Revenue: " + formatMoney(fin.TotalRevenue),
		"Average Daily Volume (last 10 days): " + formatCount(fin.AvgDailyVolume10Day),
	}
}
