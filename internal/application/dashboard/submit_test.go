package dashboard_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/application/dto"
	"github.com/jhoicas/rice-stock/internal/domain"
	"github.com/jhoicas/rice-stock/internal/domain/entity"
	"github.com/jhoicas/rice-stock/internal/domain/repository"
)

func submitError(t *testing.T, err error) *dashboard.SubmitError {
	t.Helper()
	var se *dashboard.SubmitError
	require.True(t, errors.As(err, &se), "se esperaba *SubmitError, got %T", err)
	return se
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitProduct_ExitoGeneraSKUYVuelveAlPanel(t *testing.T) {
	repo := newFakeRepo()
	o, _ := loggedInOrchestrator(repo)
	require.NoError(t, o.SetTab(dashboard.TabProducts))
	before := repo.fetchCalls()

	err := o.SubmitProduct(context.Background(), dto.CreateProductForm{
		Name:           "  Hom Mali 5kg ",
		NameTH:         "ข้าวหอมมะลิ 5 กก.",
		Category:       "Jasmine",
		PackSizeKg:     "5",
		ReorderPointKg: "abc",
	})
	require.NoError(t, err)

	require.Len(t, repo.newProducts, 1)
	p := repo.newProducts[0]
	assert.Equal(t, dashboard.SKUPrefix+strconv.FormatInt(fixedNow.UnixMilli(), 10), p.SKU)
	assert.Equal(t, "Hom Mali 5kg", p.Name)
	assert.Equal(t, entity.CategoryJasmine, p.Category)
	assert.True(t, p.PackSizeKg.Equal(d("5")))
	assert.True(t, p.ReorderPointKg.IsZero(), "un punto de reorden inválido se guarda como 0")

	assert.Equal(t, dashboard.TabOverview, o.Snapshot().ActiveTab)
	assert.Equal(t, before+6, repo.fetchCalls(), "tras el alta se recarga todo")
}

func TestSubmitProduct_PuntoDeReordenNegativoEsCero(t *testing.T) {
	repo := newFakeRepo()
	o, _ := loggedInOrchestrator(repo)

	require.NoError(t, o.SubmitProduct(context.Background(), dto.CreateProductForm{
		Name: "Brown", Category: "Brown", PackSizeKg: "1.5", ReorderPointKg: "-10",
	}))
	require.Len(t, repo.newProducts, 1)
	assert.True(t, repo.newProducts[0].ReorderPointKg.IsZero())
	assert.True(t, repo.newProducts[0].PackSizeKg.Equal(d("1.5")))
}

func TestSubmitProduct_ValidacionNoLlegaAlAlmacen(t *testing.T) {
	cases := []struct {
		name string
		form dto.CreateProductForm
	}{
		{"sin nombre", dto.CreateProductForm{Name: "   ", Category: "White", PackSizeKg: "5"}},
		{"categoría fuera del conjunto", dto.CreateProductForm{Name: "Basmati", Category: "Basmati", PackSizeKg: "5"}},
		{"tamaño cero", dto.CreateProductForm{Name: "White", Category: "White", PackSizeKg: "0"}},
		{"tamaño negativo", dto.CreateProductForm{Name: "White", Category: "White", PackSizeKg: "-1"}},
		{"tamaño no numérico", dto.CreateProductForm{Name: "White", Category: "White", PackSizeKg: "cinco"}},
		{"tamaño ausente", dto.CreateProductForm{Name: "White", Category: "White"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			o, _ := loggedInOrchestrator(repo)
			require.NoError(t, o.SetTab(dashboard.TabProducts))

			err := o.SubmitProduct(context.Background(), tc.form)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.NotEmpty(t, submitError(t, err).Message)
			assert.Equal(t, 0, repo.count("create_product"))
			assert.Equal(t, dashboard.TabProducts, o.Snapshot().ActiveTab)
		})
	}
}

func TestSubmitProduct_RechazoDelAlmacenConservaMensaje(t *testing.T) {
	repo := newFakeRepo()
	repo.createProductErr = fmt.Errorf("%w: %s", domain.ErrDuplicate, `duplicate key value violates unique constraint "products_sku_key"`)
	o, _ := loggedInOrchestrator(repo)
	require.NoError(t, o.SetTab(dashboard.TabProducts))
	before := repo.fetchCalls()

	err := o.SubmitProduct(context.Background(), dto.CreateProductForm{Name: "White", Category: "White", PackSizeKg: "5"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, `duplicate key value violates unique constraint "products_sku_key"`, err.Error())
	assert.Equal(t, dashboard.TabProducts, o.Snapshot().ActiveTab)
	assert.Equal(t, before, repo.fetchCalls())
}

func TestSubmitProduct_SinSesion(t *testing.T) {
	repo := newFakeRepo()
	o := newOrchestrator(repo, &memFlags{})

	err := o.SubmitProduct(context.Background(), dto.CreateProductForm{Name: "White", Category: "White", PackSizeKg: "5"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 0, repo.count("create_product"))
}

// ──────────────────────────────────────────────────────────────────────────────
// SubmitTransaction
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitTransaction_ExitoCierraModalYRecarga(t *testing.T) {
	repo := newFakeRepo()
	o, _ := loggedInOrchestrator(repo)
	require.NoError(t, o.OpenModal(jasmineID, entity.TxnIN))
	before := repo.fetchCalls()

	err := o.SubmitTransaction(context.Background(), dto.CreateTransactionForm{
		Type: "IN", ProductID: jasmineID, QtyKg: "250.5", Ref: " PO-1001 ",
	})
	require.NoError(t, err)

	require.Len(t, repo.newTxns, 1)
	txn := repo.newTxns[0]
	assert.Equal(t, entity.TxnIN, txn.Type)
	assert.Equal(t, jasmineID, txn.ProductID)
	assert.True(t, txn.QtyKg.Equal(d("250.5")))
	require.NotNil(t, txn.Ref)
	assert.Equal(t, "PO-1001", *txn.Ref)
	assert.Nil(t, txn.Note, "campo opcional vacío se envía como ausente")

	assert.False(t, o.Snapshot().Modal.Open)
	assert.Equal(t, before+6, repo.fetchCalls())
}

func TestSubmitTransaction_SalidaRechazadaNoCambiaEstado(t *testing.T) {
	repo := newFakeRepo()
	o, _ := loggedInOrchestrator(repo)
	require.NoError(t, o.OpenModal(stickyID, entity.TxnOUT))
	repo.txnResult = &repository.TxnResult{Success: false, Error: "Insufficient stock: on hand 0 kg"}
	before := o.Snapshot()
	calls := repo.fetchCalls()

	err := o.SubmitTransaction(context.Background(), dto.CreateTransactionForm{
		Type: "OUT", ProductID: stickyID, QtyKg: "10",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRejected)
	assert.Equal(t, "Insufficient stock: on hand 0 kg", err.Error(), "el mensaje del almacén se muestra tal cual")

	after := o.Snapshot()
	assert.True(t, after.Modal.Open, "el modal sigue abierto para corregir")
	assert.Equal(t, before.Products, after.Products)
	assert.Equal(t, before.Transactions, after.Transactions)
	assert.Equal(t, calls, repo.fetchCalls(), "un rechazo no dispara recarga")
}

func TestSubmitTransaction_ErrorDeTransporte(t *testing.T) {
	repo := newFakeRepo()
	o, _ := loggedInOrchestrator(repo)
	require.NoError(t, o.OpenModal("", ""))
	repo.txnErr = errStoreDown

	err := o.SubmitTransaction(context.Background(), dto.CreateTransactionForm{
		Type: "ADJUST", ProductID: jasmineID, QtyKg: "1",
	})

	assert.ErrorIs(t, err, errStoreDown)
	assert.True(t, o.Snapshot().Modal.Open)
}

func TestSubmitTransaction_ValidacionNoLlegaAlAlmacen(t *testing.T) {
	cases := []struct {
		name string
		form dto.CreateTransactionForm
	}{
		{"sin producto", dto.CreateTransactionForm{Type: "IN", QtyKg: "5"}},
		{"producto sin forma de uuid", dto.CreateTransactionForm{Type: "IN", ProductID: "abc", QtyKg: "5"}},
		{"tipo desconocido", dto.CreateTransactionForm{Type: "TRANSFER", ProductID: jasmineID, QtyKg: "5"}},
		{"cantidad cero", dto.CreateTransactionForm{Type: "OUT", ProductID: jasmineID, QtyKg: "0"}},
		{"cantidad negativa", dto.CreateTransactionForm{Type: "OUT", ProductID: jasmineID, QtyKg: "-3"}},
		{"cantidad ausente", dto.CreateTransactionForm{Type: "OUT", ProductID: jasmineID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			o, _ := loggedInOrchestrator(repo)

			err := o.SubmitTransaction(context.Background(), tc.form)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.NotEmpty(t, submitError(t, err).Message)
			assert.Equal(t, 0, repo.count("create_transaction"))
		})
	}
}

func TestSubmitTransaction_SinSesion(t *testing.T) {
	repo := newFakeRepo()
	o := newOrchestrator(repo, &memFlags{})

	err := o.SubmitTransaction(context.Background(), dto.CreateTransactionForm{Type: "IN", ProductID: jasmineID, QtyKg: "5"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 0, repo.count("create_transaction"))
}
