package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardView instantánea serializable que consume la capa de presentación.
type DashboardView struct {
	// Seq crece con cada transición; un cliente descarta cualquier vista con Seq menor a la última aplicada.
	Seq uint64 `json:"seq"`

	LoggedIn    bool   `json:"logged_in"`
	AuthError   string `json:"auth_error,omitempty"`
	Loading     bool   `json:"loading"`
	ActiveTab   string `json:"active_tab"`
	SearchQuery string `json:"search_query"`

	Modal ModalView `json:"modal"`

	// KPIs en cero cuando el almacén no respondió; KPIsAvailable lo distingue.
	KPIs          KPIView         `json:"kpis"`
	KPIsAvailable bool            `json:"kpis_available"`
	SalesDelta    *SalesDeltaView `json:"sales_delta"`
	SalesSeries   SalesSeriesView `json:"sales_series"`

	Products     []ProductRow     `json:"products"` // ya filtrados por SearchQuery
	Transactions []TransactionRow `json:"transactions"`
	Categories   []string         `json:"categories"`
}

// ModalView estado del modal de movimiento.
type ModalView struct {
	Open      bool   `json:"open"`
	ProductID string `json:"product_id,omitempty"`
	Type      string `json:"type,omitempty"`
}

// KPIView indicadores del panel.
type KPIView struct {
	TotalStockKg  decimal.Decimal `json:"total_stock_kg"`
	SKUCount      int             `json:"sku_count"`
	LowStockCount int             `json:"low_stock_count"`
	Sales7dKg     decimal.Decimal `json:"sales_7d_kg"`
}

// SalesDeltaView variación semanal de ventas; nil si la semana previa no tuvo ventas.
type SalesDeltaView struct {
	Value      decimal.Decimal `json:"value"`
	IsPositive bool            `json:"is_positive"`
	Label      string          `json:"label"`
}

// SalesSeriesView serie diaria lista para el gráfico (30 puntos, del más antiguo al más reciente).
type SalesSeriesView struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// ProductRow fila de la tabla de inventario con su badge de estado.
type ProductRow struct {
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	NameTH         string          `json:"name_th,omitempty"`
	Category       string          `json:"category"`
	PackSizeKg     decimal.Decimal `json:"pack_size_kg"`
	ReorderPointKg decimal.Decimal `json:"reorder_point_kg"`
	OnHandKg       decimal.Decimal `json:"on_hand_kg"`
	Status         string          `json:"status"` // ok | low | out
}

// TransactionRow fila del historial.
type TransactionRow struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	Type        string          `json:"type"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	QtyKg       decimal.Decimal `json:"qty_kg"`
	Ref         string          `json:"ref,omitempty"`
	Note        string          `json:"note,omitempty"`
}
