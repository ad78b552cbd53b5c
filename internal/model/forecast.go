package model

import "github.com/shopspring/decimal"

// AggregateRow 按期间分组后的聚合度量行
// Period 为月度的 month_name（如 "April 2025"）或周度的 week_name
type AggregateRow struct {
	ActualUnits          decimal.Decimal `json:"actual_units"`
	BaselineForecast     decimal.Decimal `json:"baseline_forecast"`
	MLForecast           decimal.Decimal `json:"ml_forecast"`
	SalesUnits           decimal.Decimal `json:"sales_units"`
	PromotionMarketing   decimal.Decimal `json:"promotion_marketing"`
	ConsensusForecast    decimal.Decimal `json:"consensus_forecast"`
	RevenueForecastLakhs decimal.Decimal `json:"revenue_forecast_lakhs"`
	InventoryLevelPct    decimal.Decimal `json:"inventory_level_pct"`
	StockOutDays         decimal.Decimal `json:"stock_out_days"`
	OnHandUnits          decimal.Decimal `json:"on_hand_units"`
	Mape                 decimal.Decimal `json:"mape"`
	Period               string          `json:"period"`
}
