package repository

import (
	"context"
	"time"

	"github.com/jhoicas/rice-stock/internal/domain/entity"
)

// TransactionHistoryLimit tamaño máximo del historial que se trae en cada carga.
const TransactionHistoryLimit = 50

// SalesWindow rango [From, To) sobre created_at. To cero = sin límite superior.
type SalesWindow struct {
	From time.Time
	To   time.Time
}

// TxnResult respuesta estructurada del procedimiento create_transaction.
// Success=false con Error es un rechazo de negocio (p. ej. stock insuficiente), no un fallo de transporte.
type TxnResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// InventoryRepository contrato de acceso al almacén relacional (DIP).
// Todas las operaciones quedan acotadas al org_id fijo con el que se construyó el adaptador.
// Un fallo de transporte o del servidor se devuelve siempre como error, nunca como panic.
type InventoryRepository interface {
	FetchKPIs(ctx context.Context) (*entity.DashboardKPIs, error)
	FetchProducts(ctx context.Context) ([]entity.Product, error)
	FetchTransactions(ctx context.Context, limit int) ([]entity.Transaction, error)
	FetchSalesWindow(ctx context.Context, w SalesWindow) ([]entity.SalePoint, error)
	CreateProduct(ctx context.Context, p entity.NewProduct) error
	CreateTransaction(ctx context.Context, t entity.NewTransaction) (*TxnResult, error)
}
