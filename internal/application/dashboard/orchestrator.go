// Package dashboard orquesta el estado de vista del tablero de stock de arroz.
//
// Todo el cálculo de saldos, KPIs y validación de movimientos ocurre en el almacén remoto;
// este paquete mantiene el estado en memoria y lo reconcilia tras cada efecto externo.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/rice-stock/internal/application/auth"
	"github.com/jhoicas/rice-stock/internal/application/dto"
	"github.com/jhoicas/rice-stock/internal/domain"
	"github.com/jhoicas/rice-stock/internal/domain/entity"
	"github.com/jhoicas/rice-stock/internal/domain/repository"
	"github.com/jhoicas/rice-stock/internal/infrastructure/metrics"
)

// AuthFailedMessage mensaje mostrado en el formulario de acceso.
const AuthFailedMessage = "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"

// Listener recibe la vista tras cada transición, en orden y de a una. Debe retornar rápido
// y no llamar de vuelta al orquestador.
type Listener func(dto.DashboardView)

// Config parámetros opcionales del orquestador.
type Config struct {
	FetchTimeout time.Duration    // por consulta; 0 = 10s
	Now          func() time.Time // reloj inyectable para pruebas
}

// Orchestrator dueño único del State. Las recargas concurrentes se etiquetan con una
// generación creciente: una porción ya escrita por una generación más nueva no se sobrescribe.
type Orchestrator struct {
	repo  repository.InventoryRepository
	auth  auth.Authenticator
	flags repository.LoginFlagStore
	log   zerolog.Logger

	fetchTimeout time.Duration
	now          func() time.Time

	mu        sync.RWMutex
	state     State
	gen       uint64
	seq       uint64
	written   map[Slice]uint64
	listeners []Listener

	// notifyMu serializa las entregas; published es el Seq de la última vista entregada.
	notifyMu  sync.Mutex
	published uint64
}

// New construye el orquestador.
func New(
	repo repository.InventoryRepository,
	authenticator auth.Authenticator,
	flags repository.LoginFlagStore,
	log zerolog.Logger,
	cfg Config,
) *Orchestrator {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Orchestrator{
		repo:         repo,
		auth:         authenticator,
		flags:        flags,
		log:          log,
		fetchTimeout: cfg.FetchTimeout,
		now:          cfg.Now,
		state:        initialState(),
		written:      make(map[Slice]uint64),
	}
}

// Subscribe registra un Listener (p. ej. el hub de websockets).
func (o *Orchestrator) Subscribe(l Listener) {
	o.mu.Lock()
	o.listeners = append(o.listeners, l)
	o.mu.Unlock()
}

// Snapshot copia del estado actual.
func (o *Orchestrator) Snapshot() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.clone()
}

// View estado listo para presentación.
func (o *Orchestrator) View() dto.DashboardView {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v := buildView(o.state)
	v.Seq = o.seq
	return v
}

// LoggedIn indica si la puerta de acceso está abierta.
func (o *Orchestrator) LoggedIn() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state.LoggedIn
}

// dispatch punto único de escritura del estado fuera de las recargas.
func (o *Orchestrator) dispatch(a action) {
	o.mu.Lock()
	a(&o.state)
	seq, view, listeners := o.transitionLocked()
	o.mu.Unlock()
	o.publish(seq, view, listeners)
}

// commit escribe el resultado de una consulta salvo que una generación más nueva ya haya escrito esa
// porción o que la sesión se haya cerrado mientras la consulta estaba en vuelo.
func (o *Orchestrator) commit(gen uint64, slice Slice, a action) bool {
	o.mu.Lock()
	if gen < o.written[slice] || !o.state.LoggedIn {
		o.mu.Unlock()
		metrics.StaleResultsDiscarded.WithLabelValues(string(slice)).Inc()
		o.log.Debug().Str("slice", string(slice)).Uint64("gen", gen).Msg("resultado obsoleto descartado")
		return false
	}
	o.written[slice] = gen
	a(&o.state)
	seq, view, listeners := o.transitionLocked()
	o.mu.Unlock()
	o.publish(seq, view, listeners)
	return true
}

// transitionLocked numera la transición recién aplicada y construye su vista. Requiere o.mu tomado.
func (o *Orchestrator) transitionLocked() (uint64, dto.DashboardView, []Listener) {
	o.seq++
	view := buildView(o.state)
	view.Seq = o.seq
	return o.seq, view, o.listeners
}

// publish entrega la vista fuera de o.mu. Las gorutinas de una recarga compiten por llegar aquí:
// una vista más vieja que la última entregada se descarta, la más nueva ya la contiene.
func (o *Orchestrator) publish(seq uint64, view dto.DashboardView, listeners []Listener) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()
	if seq <= o.published {
		return
	}
	o.published = seq
	for _, l := range listeners {
		l(view)
	}
}

// Init lee una sola vez el indicador persistido; si hay sesión, recarga todo.
func (o *Orchestrator) Init(ctx context.Context) {
	ok, err := o.flags.Load(ctx)
	if err != nil {
		o.log.Error().Err(err).Msg("leer indicador de sesión")
		return
	}
	if !ok {
		return
	}
	o.dispatch(loggedIn())
	_ = o.RefreshAll(ctx)
}

// Login abre la puerta solo con el par exacto. Un fallo no dispara ninguna consulta.
func (o *Orchestrator) Login(ctx context.Context, c auth.Credentials) bool {
	if !o.auth.Authenticate(ctx, c) {
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		o.dispatch(loginFailed(AuthFailedMessage))
		return false
	}
	metrics.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	if err := o.flags.Save(ctx, true); err != nil {
		// La sesión en memoria sigue válida; solo no sobrevivirá a un reinicio.
		o.log.Error().Err(err).Msg("persistir indicador de sesión")
	}
	o.dispatch(loggedIn())
	_ = o.RefreshAll(ctx)
	return true
}

// Logout borra el indicador persistido y cierra la puerta.
func (o *Orchestrator) Logout(ctx context.Context) {
	if err := o.flags.Save(ctx, false); err != nil {
		o.log.Error().Err(err).Msg("borrar indicador de sesión")
	}

	// Las consultas en vuelo quedan obsoletas: no deben repoblar el estado tras el cierre.
	o.mu.Lock()
	o.gen++
	for _, sl := range allSlices {
		o.written[sl] = o.gen
	}
	loggedOut()(&o.state)
	seq, view, listeners := o.transitionLocked()
	o.mu.Unlock()
	o.publish(seq, view, listeners)
}

// RefreshAll lanza en paralelo las seis consultas; cada una escribe solo su porción.
// Loading vuelve a false cuando terminan todas, haya o no fallos.
func (o *Orchestrator) RefreshAll(ctx context.Context) error {
	o.mu.Lock()
	if !o.state.LoggedIn {
		o.mu.Unlock()
		return domain.ErrUnauthorized
	}
	o.gen++
	gen := o.gen
	loadingSet(true)(&o.state)
	seq, view, listeners := o.transitionLocked()
	o.mu.Unlock()
	o.publish(seq, view, listeners)

	began := time.Now()
	start := o.now()
	w := windowsAt(start)

	var wg sync.WaitGroup
	run := func(fn func(context.Context, uint64)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fctx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
			defer cancel()
			fn(fctx, gen)
		}()
	}

	run(o.loadKPIs)
	run(o.loadProducts)
	run(o.loadTransactions)
	run(func(ctx context.Context, gen uint64) { o.loadSalesSeries(ctx, gen, w.series, start) })
	run(func(ctx context.Context, gen uint64) { o.loadSalesDelta(ctx, gen, w.current, w.previous) })
	wg.Wait()

	metrics.RefreshDuration.Observe(time.Since(began).Seconds())

	o.mu.Lock()
	latest := gen == o.gen && o.state.LoggedIn
	if latest {
		loadingSet(false)(&o.state)
		seq, view, listeners = o.transitionLocked()
	}
	o.mu.Unlock()
	if latest {
		o.publish(seq, view, listeners)
	}
	o.log.Debug().Uint64("gen", gen).Dur("took", time.Since(began)).Msg("recarga completa")
	return nil
}

func (o *Orchestrator) fetchFailed(slice Slice, err error) {
	metrics.FetchFailuresTotal.WithLabelValues(string(slice)).Inc()
	o.log.Error().Err(err).Str("slice", string(slice)).Msg("consulta al almacén fallida")
}

func (o *Orchestrator) loadKPIs(ctx context.Context, gen uint64) {
	k, err := o.repo.FetchKPIs(ctx)
	if err != nil {
		o.fetchFailed(SliceKPIs, err)
		return
	}
	o.commit(gen, SliceKPIs, kpisLoaded(k))
}

func (o *Orchestrator) loadProducts(ctx context.Context, gen uint64) {
	p, err := o.repo.FetchProducts(ctx)
	if err != nil {
		o.fetchFailed(SliceProducts, err)
		return
	}
	if p == nil {
		p = []entity.Product{}
	}
	o.commit(gen, SliceProducts, productsLoaded(p))
}

func (o *Orchestrator) loadTransactions(ctx context.Context, gen uint64) {
	t, err := o.repo.FetchTransactions(ctx, repository.TransactionHistoryLimit)
	if err != nil {
		o.fetchFailed(SliceTransactions, err)
		return
	}
	if t == nil {
		t = []entity.Transaction{}
	}
	o.commit(gen, SliceTransactions, transactionsLoaded(t))
}

func (o *Orchestrator) loadSalesSeries(ctx context.Context, gen uint64, w repository.SalesWindow, today time.Time) {
	records, err := o.repo.FetchSalesWindow(ctx, w)
	if err != nil {
		o.fetchFailed(SliceSalesSeries, err)
		return
	}
	o.commit(gen, SliceSalesSeries, salesSeriesLoaded(ComputeSalesSeries(records, today)))
}

// loadSalesDelta consulta las dos semanas en paralelo; si alguna falla la variación queda como estaba.
func (o *Orchestrator) loadSalesDelta(ctx context.Context, gen uint64, current, previous repository.SalesWindow) {
	type windowResult struct {
		points []entity.SalePoint
		err    error
	}
	prevCh := make(chan windowResult, 1)
	go func() {
		p, err := o.repo.FetchSalesWindow(ctx, previous)
		prevCh <- windowResult{p, err}
	}()

	cur, curErr := o.repo.FetchSalesWindow(ctx, current)
	prev := <-prevCh

	if curErr != nil {
		o.fetchFailed(SliceSalesDelta, curErr)
		return
	}
	if prev.err != nil {
		o.fetchFailed(SliceSalesDelta, prev.err)
		return
	}
	o.commit(gen, SliceSalesDelta, salesDeltaLoaded(ComputeSalesDelta(SumQty(cur), SumQty(prev.points))))
}

// ── Intenciones de UI ─────────────────────────────────────────────────────────

// SetSearch actualiza la búsqueda; el filtrado es local y sin debounce.
func (o *Orchestrator) SetSearch(query string) {
	o.dispatch(searchSet(query))
}

// SetTab cambia de vista.
func (o *Orchestrator) SetTab(t Tab) error {
	if !t.Valid() {
		return domain.ErrInvalidInput
	}
	o.dispatch(tabSet(t))
	return nil
}

// OpenModal abre el modal de movimiento con preselección opcional de producto y tipo.
func (o *Orchestrator) OpenModal(productID string, typ entity.TxnType) error {
	if typ != "" && !typ.Valid() {
		return domain.ErrInvalidInput
	}
	o.dispatch(modalOpened(productID, typ))
	return nil
}

// CloseModal cierra el modal y descarta la preselección.
func (o *Orchestrator) CloseModal() {
	o.dispatch(modalClosed())
}
