package dashboard_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/rice-stock/internal/application/auth"
	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/application/dto"
	"github.com/jhoicas/rice-stock/internal/domain/entity"
	"github.com/jhoicas/rice-stock/internal/domain/repository"
)

const (
	jasmineID = "0b6f3c1e-6a39-4c34-9f1d-0c2a1d1e7a01"
	stickyID  = "0b6f3c1e-6a39-4c34-9f1d-0c2a1d1e7a02"
)

var (
	errStoreDown = errors.New("almacén no disponible")
	fixedNow     = time.Date(2026, 10, 16, 10, 30, 0, 0, time.UTC)
)

// fakeRepo almacén en memoria con contadores por operación.
type fakeRepo struct {
	mu sync.Mutex

	kpis        *entity.DashboardKPIs
	kpisErr     error
	products    []entity.Product
	productsErr error
	// productsFn sustituye a products cuando se define; n empieza en 1.
	productsFn func(n int) ([]entity.Product, error)
	txns       []entity.Transaction
	txnsErr    error
	sales      func(w repository.SalesWindow) ([]entity.SalePoint, error)

	createProductErr error
	txnResult        *repository.TxnResult
	txnErr           error

	calls          map[string]int
	newProducts    []entity.NewProduct
	newTxns        []entity.NewTransaction
	requestedLimit int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		kpis: &entity.DashboardKPIs{
			TotalStockKg:  d("1250"),
			SKUCount:      2,
			LowStockCount: 1,
			Sales7dKg:     d("120"),
		},
		products: []entity.Product{
			{ProductID: jasmineID, SKU: "RICE-001", Name: "Jasmine Rice", NameTH: "ข้าวหอมมะลิ",
				Category: entity.CategoryJasmine, PackSizeKg: d("5"), ReorderPointKg: d("100"), OnHandKg: d("1250")},
			{ProductID: stickyID, SKU: "RICE-002", Name: "Sticky Rice", NameTH: "ข้าวเหนียว",
				Category: entity.CategorySticky, PackSizeKg: d("1"), ReorderPointKg: d("50"), OnHandKg: d("0")},
		},
		txns: []entity.Transaction{
			{ID: "t1", CreatedAt: fixedNow.Add(-time.Hour), Type: entity.TxnOUT, ProductID: jasmineID,
				ProductName: "Jasmine Rice", QtyKg: d("25")},
		},
		txnResult: &repository.TxnResult{Success: true},
		calls:     map[string]int{},
	}
}

func (f *fakeRepo) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRepo) fetchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls["kpis"] + f.calls["products"] + f.calls["transactions"] + f.calls["sales"]
}

func (f *fakeRepo) inc(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.calls[op]
}

func (f *fakeRepo) FetchKPIs(context.Context) (*entity.DashboardKPIs, error) {
	f.inc("kpis")
	if f.kpisErr != nil {
		return nil, f.kpisErr
	}
	k := *f.kpis
	return &k, nil
}

func (f *fakeRepo) FetchProducts(context.Context) ([]entity.Product, error) {
	n := f.inc("products")
	if f.productsFn != nil {
		return f.productsFn(n)
	}
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return append([]entity.Product(nil), f.products...), nil
}

func (f *fakeRepo) FetchTransactions(_ context.Context, limit int) ([]entity.Transaction, error) {
	f.inc("transactions")
	f.mu.Lock()
	f.requestedLimit = limit
	f.mu.Unlock()
	if f.txnsErr != nil {
		return nil, f.txnsErr
	}
	return append([]entity.Transaction(nil), f.txns...), nil
}

func (f *fakeRepo) FetchSalesWindow(_ context.Context, w repository.SalesWindow) ([]entity.SalePoint, error) {
	f.inc("sales")
	if f.sales != nil {
		return f.sales(w)
	}
	return nil, nil
}

func (f *fakeRepo) CreateProduct(_ context.Context, p entity.NewProduct) error {
	f.inc("create_product")
	if f.createProductErr != nil {
		return f.createProductErr
	}
	f.mu.Lock()
	f.newProducts = append(f.newProducts, p)
	f.mu.Unlock()
	return nil
}

func (f *fakeRepo) CreateTransaction(_ context.Context, t entity.NewTransaction) (*repository.TxnResult, error) {
	f.inc("create_transaction")
	if f.txnErr != nil {
		return nil, f.txnErr
	}
	f.mu.Lock()
	f.newTxns = append(f.newTxns, t)
	f.mu.Unlock()
	r := *f.txnResult
	return &r, nil
}

// memFlags indicador de sesión en memoria.
type memFlags struct {
	mu      sync.Mutex
	value   bool
	saves   int
	loadErr error
}

func (m *memFlags) Load(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.loadErr
}

func (m *memFlags) Save(_ context.Context, v bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
	m.saves++
	return nil
}

func (m *memFlags) get() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// plainAuth evita el costo de bcrypt en las pruebas del orquestador.
type plainAuth struct{}

func (plainAuth) Authenticate(_ context.Context, c auth.Credentials) bool {
	return c.Username == "admin123" && c.Password == "123"
}

var goodCreds = auth.Credentials{Username: "admin123", Password: "123"}

func newOrchestrator(repo *fakeRepo, flags *memFlags) *dashboard.Orchestrator {
	return dashboard.New(repo, plainAuth{}, flags, zerolog.Nop(), dashboard.Config{
		FetchTimeout: time.Second,
		Now:          func() time.Time { return fixedNow },
	})
}

// loggedInOrchestrator orquestador con sesión abierta y primera recarga completa.
func loggedInOrchestrator(repo *fakeRepo) (*dashboard.Orchestrator, *memFlags) {
	flags := &memFlags{}
	o := newOrchestrator(repo, flags)
	o.Login(context.Background(), goodCreds)
	return o, flags
}

// viewRecorder guarda las vistas publicadas; los listeners se invocan desde varias gorutinas.
type viewRecorder struct {
	mu    sync.Mutex
	views []dto.DashboardView
}

func (r *viewRecorder) listen(v dto.DashboardView) {
	r.mu.Lock()
	r.views = append(r.views, v)
	r.mu.Unlock()
}

func (r *viewRecorder) all() []dto.DashboardView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dto.DashboardView(nil), r.views...)
}
