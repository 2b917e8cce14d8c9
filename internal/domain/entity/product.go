package entity

import (
	"github.com/shopspring/decimal"
)

// Category categorías fijas de arroz.
type Category string

const (
	CategoryJasmine   Category = "Jasmine"
	CategoryWhite     Category = "White"
	CategoryBrown     Category = "Brown"
	CategorySticky    Category = "Sticky"
	CategorySpecialty Category = "Specialty"
)

// Categories lista ordenada para formularios.
var Categories = []Category{CategoryJasmine, CategoryWhite, CategoryBrown, CategorySticky, CategorySpecialty}

// Valid indica si la categoría pertenece al conjunto fijo.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Product representa un SKU de arroz con su saldo calculado por el almacén.
// OnHandKg se deriva del libro de transacciones; este sistema nunca lo escribe.
type Product struct {
	ProductID      string          `json:"product_id"`
	OrgID          string          `json:"org_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	NameTH         string          `json:"name_th,omitempty"`
	Category       Category        `json:"category"`
	PackSizeKg     decimal.Decimal `json:"pack_size_kg"`
	ReorderPointKg decimal.Decimal `json:"reorder_point_kg"`
	OnHandKg       decimal.Decimal `json:"on_hand_kg"`
}

// StockStatus clasificación visual del saldo.
type StockStatus string

const (
	StockOK  StockStatus = "ok"
	StockLow StockStatus = "low"
	StockOut StockStatus = "out"
)

// IsLow true si hay punto de reorden y el saldo quedó por debajo.
func (p Product) IsLow() bool {
	return p.ReorderPointKg.IsPositive() && p.OnHandKg.LessThan(p.ReorderPointKg)
}

// Status out tiene prioridad sobre low; reorden 0 nunca marca low.
func (p Product) Status() StockStatus {
	if !p.OnHandKg.IsPositive() {
		return StockOut
	}
	if p.IsLow() {
		return StockLow
	}
	return StockOK
}

// NewProduct datos de alta de un producto. SKU lo genera el sistema.
type NewProduct struct {
	SKU            string
	Name           string
	NameTH         string
	Category       Category
	PackSizeKg     decimal.Decimal
	ReorderPointKg decimal.Decimal
}
