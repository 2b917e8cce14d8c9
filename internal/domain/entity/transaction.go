package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType tipo de movimiento del libro de inventario.
type TxnType string

const (
	TxnIN     TxnType = "IN"     // recepción
	TxnOUT    TxnType = "OUT"    // venta / salida
	TxnADJUST TxnType = "ADJUST" // corrección manual; el efecto lo define el almacén
)

// Valid indica si el tipo es uno de IN, OUT o ADJUST.
func (t TxnType) Valid() bool {
	return t == TxnIN || t == TxnOUT || t == TxnADJUST
}

// Transaction movimiento inmutable; ID y CreatedAt los asigna el almacén.
type Transaction struct {
	ID          string          `json:"id"`
	OrgID       string          `json:"org_id"`
	CreatedAt   time.Time       `json:"created_at"`
	Type        TxnType         `json:"type"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"` // enriquecido vía join con products
	QtyKg       decimal.Decimal `json:"qty_kg"`
	Ref         *string         `json:"ref,omitempty"`
	Note        *string         `json:"note,omitempty"`
}

// NewTransaction parámetros del procedimiento de creación.
type NewTransaction struct {
	Type      TxnType
	ProductID string
	QtyKg     decimal.Decimal
	Ref       *string
	Note      *string
}

// SalePoint una salida (OUT) dentro de una ventana de ventas.
type SalePoint struct {
	CreatedAt time.Time       `json:"created_at"`
	QtyKg     decimal.Decimal `json:"qty_kg"`
}
