package dashboard

import (
	"context"
	"time"

	"github.com/jhoicas/rice-stock/internal/domain/entity"
)

// StockReport datos del reporte imprimible de inventario.
type StockReport struct {
	GeneratedAt   time.Time
	KPIs          entity.DashboardKPIs
	KPIsAvailable bool
	Products      []entity.Product // sin filtrar, en el orden del almacén
}

// ReportRenderer genera la representación imprimible del reporte.
type ReportRenderer interface {
	RenderStockReport(ctx context.Context, r StockReport) ([]byte, error)
}

// StockReport arma el reporte con el último estado cargado; no consulta al almacén.
func (o *Orchestrator) StockReport() StockReport {
	s := o.Snapshot()
	r := StockReport{
		GeneratedAt: o.now(),
		Products:    s.Products,
	}
	if s.KPIs != nil {
		r.KPIs = *s.KPIs
		r.KPIsAvailable = true
	}
	return r
}
