package entity

import "github.com/shopspring/decimal"

// DashboardKPIs instantánea calculada por el procedimiento get_dashboard_kpis.
// Se reemplaza completa en cada carga.
type DashboardKPIs struct {
	TotalStockKg  decimal.Decimal `json:"total_stock_kg"`
	SKUCount      int             `json:"sku_count"`
	LowStockCount int             `json:"low_stock_count"`
	Sales7dKg     decimal.Decimal `json:"sales_7d_kg"`
}
