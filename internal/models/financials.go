package models

// Financials is the optional per-stock metadata supplied by the
// financial-metadata collaborator. Every field may be absent; readers
// must tolerate nil fields, so everything optional is a pointer.
type Financials struct {
	CompanyName            *string  `json:"company_name,omitempty"`
	TargetMeanPrice        *float64 `json:"target_mean_price,omitempty"`
	RegularMarketDayLow    *float64 `json:"regular_market_day_low,omitempty"`
	RegularMarketDayHigh   *float64 `json:"regular_market_day_high,omitempty"`
	RegularMarketChangePct *float64 `json:"regular_market_change_percent,omitempty"`
	FiftyTwoWeekChangePct  *float64 `json:"fifty_two_week_change_percent,omitempty"`
	MarketCap              *int64   `json:"market_cap,omitempty"`
	TotalRevenue           *int64   `json:"total_revenue,omitempty"`
	AvgDailyVolume10Day    *int64   `json:"average_daily_volume_10_day,omitempty"`
}
