package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/rice-stock/internal/domain"
	"github.com/jhoicas/rice-stock/internal/domain/entity"
	"github.com/jhoicas/rice-stock/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo adaptador del contrato de acceso sobre el almacén PostgreSQL (Supabase).
// Las reglas de saldo viven en el almacén: vista inventory_on_hand y procedimientos
// get_dashboard_kpis / create_transaction. Aquí solo se consulta y se invoca.
type InventoryRepo struct {
	q     Querier
	orgID string
}

// NewInventoryRepository construye el adaptador acotado a orgID.
func NewInventoryRepository(q Querier, orgID string) *InventoryRepo {
	return &InventoryRepo{q: q, orgID: orgID}
}

// FetchKPIs invoca el procedimiento de agregación. Devuelve un único registro.
func (r *InventoryRepo) FetchKPIs(ctx context.Context) (*entity.DashboardKPIs, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT to_jsonb(get_dashboard_kpis($1::uuid))`, r.orgID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("inventory.FetchKPIs: %w", err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("inventory.FetchKPIs: %w", domain.ErrNotFound)
	}
	var kpis entity.DashboardKPIs
	if err := json.Unmarshal(raw, &kpis); err != nil {
		return nil, fmt.Errorf("inventory.FetchKPIs decode: %w", err)
	}
	return &kpis, nil
}

// FetchProducts lista los productos con su saldo, ordenados por código (sku) ascendente.
func (r *InventoryRepo) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	const query = `
	SELECT
	    product_id,
	    org_id,
	    sku,
	    name,
	    COALESCE(name_th, '')          AS name_th,
	    category,
	    pack_size_kg,
	    COALESCE(reorder_point_kg, 0)  AS reorder_point_kg,
	    COALESCE(on_hand_kg, 0)        AS on_hand_kg
	FROM inventory_on_hand
	WHERE org_id = $1
	ORDER BY sku ASC`

	rows, err := r.q.Query(ctx, query, r.orgID)
	if err != nil {
		return nil, fmt.Errorf("inventory.FetchProducts: %w", err)
	}
	defer rows.Close()

	list := []entity.Product{}
	for rows.Next() {
		var p entity.Product
		var category string
		if err := rows.Scan(
			&p.ProductID,
			&p.OrgID,
			&p.SKU,
			&p.Name,
			&p.NameTH,
			&category,
			&p.PackSizeKg,
			&p.ReorderPointKg,
			&p.OnHandKg,
		); err != nil {
			return nil, fmt.Errorf("inventory.FetchProducts scan: %w", err)
		}
		p.Category = entity.Category(category)
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory.FetchProducts rows: %w", err)
	}
	return list, nil
}

// FetchTransactions devuelve los movimientos más recientes (created_at DESC) con el nombre del producto.
func (r *InventoryRepo) FetchTransactions(ctx context.Context, limit int) ([]entity.Transaction, error) {
	if limit <= 0 || limit > repository.TransactionHistoryLimit {
		limit = repository.TransactionHistoryLimit
	}
	const query = `
	SELECT
	    t.id,
	    t.org_id,
	    t.created_at,
	    t.type,
	    t.product_id,
	    COALESCE(p.name, '')  AS product_name,
	    t.qty_kg,
	    t.ref,
	    t.note
	FROM inventory_txn t
	LEFT JOIN products p ON p.id = t.product_id
	WHERE t.org_id = $1
	ORDER BY t.created_at DESC
	LIMIT $2`

	rows, err := r.q.Query(ctx, query, r.orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("inventory.FetchTransactions: %w", err)
	}
	defer rows.Close()

	list := []entity.Transaction{}
	for rows.Next() {
		var t entity.Transaction
		var typ string
		if err := rows.Scan(
			&t.ID,
			&t.OrgID,
			&t.CreatedAt,
			&typ,
			&t.ProductID,
			&t.ProductName,
			&t.QtyKg,
			&t.Ref,
			&t.Note,
		); err != nil {
			return nil, fmt.Errorf("inventory.FetchTransactions scan: %w", err)
		}
		t.Type = entity.TxnType(typ)
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory.FetchTransactions rows: %w", err)
	}
	return list, nil
}

// FetchSalesWindow devuelve (created_at, qty_kg) de las salidas OUT en [From, To).
// To cero se envía como NULL: ventana abierta hasta el presente.
func (r *InventoryRepo) FetchSalesWindow(ctx context.Context, w repository.SalesWindow) ([]entity.SalePoint, error) {
	const query = `
	SELECT created_at, qty_kg
	FROM inventory_txn
	WHERE org_id = $1
	  AND type = 'OUT'
	  AND created_at >= $2
	  AND ($3::timestamptz IS NULL OR created_at < $3)
	ORDER BY created_at ASC`

	var to any
	if !w.To.IsZero() {
		to = w.To
	}
	rows, err := r.q.Query(ctx, query, r.orgID, w.From, to)
	if err != nil {
		return nil, fmt.Errorf("inventory.FetchSalesWindow: %w", err)
	}
	defer rows.Close()

	points := []entity.SalePoint{}
	for rows.Next() {
		var sp entity.SalePoint
		if err := rows.Scan(&sp.CreatedAt, &sp.QtyKg); err != nil {
			return nil, fmt.Errorf("inventory.FetchSalesWindow scan: %w", err)
		}
		points = append(points, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory.FetchSalesWindow rows: %w", err)
	}
	return points, nil
}

// CreateProduct inserta el producto. La unicidad del sku la garantiza el almacén.
// Los rechazos del servidor se devuelven con su mensaje original para mostrarlo al usuario.
func (r *InventoryRepo) CreateProduct(ctx context.Context, p entity.NewProduct) error {
	const query = `
	INSERT INTO products (org_id, sku, name, name_th, category, pack_size_kg, reorder_point_kg)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.q.Exec(ctx, query,
		r.orgID, p.SKU, p.Name, nullIfEmpty(p.NameTH), string(p.Category), p.PackSizeKg, p.ReorderPointKg,
	)
	if err == nil {
		return nil
	}
	if pgErr, ok := pgError(err); ok {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.Message)
		case isCheckViolation(err):
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message)
		default:
			return fmt.Errorf("%w: %s", domain.ErrRejected, pgErr.Message)
		}
	}
	return fmt.Errorf("inventory.CreateProduct: %w", err)
}

// CreateTransaction invoca el procedimiento validador, que aplica el efecto sobre el saldo de forma atómica.
// Un RAISE del procedimiento es un rechazo de negocio: se devuelve como TxnResult fallido, no como error.
func (r *InventoryRepo) CreateTransaction(ctx context.Context, t entity.NewTransaction) (*repository.TxnResult, error) {
	const query = `SELECT to_jsonb(create_transaction($1::uuid, $2::uuid, $3, $4, $5, $6))`

	var raw []byte
	err := r.q.QueryRow(ctx, query,
		r.orgID, t.ProductID, string(t.Type), t.QtyKg, t.Ref, t.Note,
	).Scan(&raw)
	if err != nil {
		if pgErr, ok := pgError(err); ok {
			return &repository.TxnResult{Success: false, Error: pgErr.Message}, nil
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("inventory.CreateTransaction: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("inventory.CreateTransaction: %w", err)
	}

	// Un procedimiento que no devuelve cuerpo se considera exitoso.
	if len(raw) == 0 || string(raw) == "null" {
		return &repository.TxnResult{Success: true}, nil
	}
	var res repository.TxnResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("inventory.CreateTransaction decode: %w", err)
	}
	if !res.Success && res.Error == "" {
		res.Error = domain.ErrRejected.Error()
	}
	return &res, nil
}
