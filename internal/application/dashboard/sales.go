package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rice-stock/internal/domain/entity"
	"github.com/jhoicas/rice-stock/internal/domain/repository"
)

const (
	SeriesDays  = 30 // días del gráfico de ventas, hoy incluido
	deltaDays   = 7  // ventana semanal para la variación
	seriesLabel = "2006-01-02"
)

var hundred = decimal.NewFromInt(100)

// SalesDelta variación porcentual de las salidas de los últimos 7 días frente a los 7 anteriores.
type SalesDelta struct {
	Value      decimal.Decimal
	IsPositive bool
}

// SeriesPoint total de salidas (OUT) de un día calendario.
type SeriesPoint struct {
	Date    time.Time
	Label   string
	TotalKg decimal.Decimal
}

// ComputeSalesDelta (current - previous) / previous * 100.
// Con previous <= 0 devuelve nil: sin semana de referencia no se muestra variación.
func ComputeSalesDelta(current, previous decimal.Decimal) *SalesDelta {
	if !previous.IsPositive() {
		return nil
	}
	delta := current.Sub(previous).Div(previous).Mul(hundred)
	return &SalesDelta{Value: delta, IsPositive: !delta.IsNegative()}
}

// SumQty suma qty_kg de los registros.
func SumQty(points []entity.SalePoint) decimal.Decimal {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.QtyKg)
	}
	return total
}

// ComputeSalesSeries agrupa los registros por fecha local (zona de today) en los 30 días que terminan hoy.
// Los días sin ventas quedan en cero; los registros fuera de rango se ignoran.
func ComputeSalesSeries(records []entity.SalePoint, today time.Time) []SeriesPoint {
	loc := today.Location()
	last := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	points := make([]SeriesPoint, SeriesDays)
	index := make(map[string]int, SeriesDays)
	for i := 0; i < SeriesDays; i++ {
		d := last.AddDate(0, 0, i-(SeriesDays-1))
		label := d.Format(seriesLabel)
		points[i] = SeriesPoint{Date: d, Label: label, TotalKg: decimal.Zero}
		index[label] = i
	}

	for _, r := range records {
		if i, ok := index[r.CreatedAt.In(loc).Format(seriesLabel)]; ok {
			points[i].TotalKg = points[i].TotalKg.Add(r.QtyKg)
		}
	}
	return points
}

// salesWindows ventanas consultadas en cada recarga, relativas a now.
type salesWindows struct {
	series   repository.SalesWindow
	current  repository.SalesWindow
	previous repository.SalesWindow
}

func windowsAt(now time.Time) salesWindows {
	weekAgo := now.AddDate(0, 0, -deltaDays)
	return salesWindows{
		series:   repository.SalesWindow{From: now.AddDate(0, 0, -SeriesDays)},
		current:  repository.SalesWindow{From: weekAgo},
		previous: repository.SalesWindow{From: now.AddDate(0, 0, -2*deltaDays), To: weekAgo},
	}
}
