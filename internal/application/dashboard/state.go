package dashboard

import (
	"github.com/jhoicas/rice-stock/internal/domain/entity"
)

// Tab vista navegable del tablero.
type Tab string

const (
	TabOverview     Tab = "overview"
	TabProducts     Tab = "products" // alta de producto
	TabTransactions Tab = "transactions"
	TabSales        Tab = "sales"
)

// Valid indica si la pestaña existe.
func (t Tab) Valid() bool {
	switch t {
	case TabOverview, TabProducts, TabTransactions, TabSales:
		return true
	}
	return false
}

// Slice porción de estado que escribe cada consulta. Las porciones son disjuntas.
type Slice string

const (
	SliceKPIs         Slice = "kpis"
	SliceProducts     Slice = "products"
	SliceTransactions Slice = "transactions"
	SliceSalesSeries  Slice = "sales_series"
	SliceSalesDelta   Slice = "sales_delta"
)

var allSlices = []Slice{SliceKPIs, SliceProducts, SliceTransactions, SliceSalesSeries, SliceSalesDelta}

// Modal estado del modal de movimiento; ProductID y Type son la preselección del formulario.
type Modal struct {
	Open      bool
	ProductID string
	Type      entity.TxnType
}

// State todo el estado de vista que mantiene el orquestador.
type State struct {
	Products     []entity.Product
	Transactions []entity.Transaction
	KPIs         *entity.DashboardKPIs // nil = sin datos, se muestra en cero
	SalesDelta   *SalesDelta           // nil = semana previa sin ventas
	SalesSeries  []SeriesPoint

	Loading     bool
	SearchQuery string
	ActiveTab   Tab
	Modal       Modal

	LoggedIn  bool
	AuthError string
}

// initialState estado al arrancar, antes de leer el indicador de sesión.
func initialState() State {
	return State{
		Products:     []entity.Product{},
		Transactions: []entity.Transaction{},
		ActiveTab:    TabOverview,
	}
}

// action transición pura sobre el estado. Todas las escrituras pasan por Orchestrator.dispatch.
type action func(s *State)

func kpisLoaded(k *entity.DashboardKPIs) action {
	return func(s *State) { s.KPIs = k }
}

func productsLoaded(p []entity.Product) action {
	return func(s *State) { s.Products = p }
}

func transactionsLoaded(t []entity.Transaction) action {
	return func(s *State) { s.Transactions = t }
}

func salesSeriesLoaded(points []SeriesPoint) action {
	return func(s *State) { s.SalesSeries = points }
}

func salesDeltaLoaded(d *SalesDelta) action {
	return func(s *State) { s.SalesDelta = d }
}

func loadingSet(v bool) action {
	return func(s *State) { s.Loading = v }
}

func searchSet(q string) action {
	return func(s *State) { s.SearchQuery = q }
}

func tabSet(t Tab) action {
	return func(s *State) { s.ActiveTab = t }
}

func modalOpened(productID string, typ entity.TxnType) action {
	return func(s *State) {
		s.Modal = Modal{Open: true, ProductID: productID, Type: typ}
	}
}

func modalClosed() action {
	return func(s *State) { s.Modal = Modal{} }
}

func loggedIn() action {
	return func(s *State) {
		s.LoggedIn = true
		s.AuthError = ""
	}
}

// loginFailed solo informa el error; la puerta queda como estaba.
func loginFailed(msg string) action {
	return func(s *State) { s.AuthError = msg }
}

// loggedOut cierra la puerta y descarta los datos retenidos.
func loggedOut() action {
	return func(s *State) {
		s.LoggedIn = false
		s.Loading = false
		s.Modal = Modal{}
		s.Products = []entity.Product{}
		s.Transactions = []entity.Transaction{}
		s.KPIs = nil
		s.SalesDelta = nil
		s.SalesSeries = nil
	}
}

// clone copia superficial con slices propios para entregar fuera del lock.
func (s State) clone() State {
	c := s
	c.Products = append([]entity.Product(nil), s.Products...)
	c.Transactions = append([]entity.Transaction(nil), s.Transactions...)
	c.SalesSeries = append([]SeriesPoint(nil), s.SalesSeries...)
	if s.KPIs != nil {
		k := *s.KPIs
		c.KPIs = &k
	}
	if s.SalesDelta != nil {
		d := *s.SalesDelta
		c.SalesDelta = &d
	}
	return c
}
