// Package pdf genera el reporte de inventario de arroz en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Rice Stock + fecha de generación                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: stock total | SKUs | bajo mínimo | ventas 7 días     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Categoría | Saldo | Reorden | Est. │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 125, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLow     = &props.Color{Red: 230, Green: 140, Blue: 0}
	colorOut     = &props.Color{Red: 198, Green: 40, Blue: 40}
)

var _ dashboard.ReportRenderer = (*StockReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator implementa dashboard.ReportRenderer usando Maroto v2.
// La fuente helvetica no tiene glifos tailandeses: el reporte usa el nombre en inglés.
type StockReportGenerator struct {
	title string
}

// NewStockReportGenerator construye el generador; title aparece en el encabezado.
func NewStockReportGenerator(title string) *StockReportGenerator {
	if title == "" {
		title = "Rice Stock"
	}
	return &StockReportGenerator{title: title}
}

// RenderStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) RenderStockReport(_ context.Context, r dashboard.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title+" - Inventory Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(r.Products)...)
	if len(r.Products) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No products", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, r dashboard.StockReport) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("INVENTORY REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+r.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

// kpiRow: cuatro indicadores; guiones si el almacén no respondió.
func kpiRow(r dashboard.StockReport) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 6, Align: align.Center}),
		)
	}
	total, skus, low, sales := "-", "-", "-", "-"
	if r.KPIsAvailable {
		total = formatKg(r.KPIs.TotalStockKg)
		skus = fmt.Sprintf("%d", r.KPIs.SKUCount)
		low = fmt.Sprintf("%d", r.KPIs.LowStockCount)
		sales = formatKg(r.KPIs.Sales7dKg)
	}
	return row.New(16).Add(
		kpi("Total stock", total),
		kpi("SKUs", skus),
		kpi("Low stock", low),
		kpi("Sales (7 days)", sales),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Product", 3, align.Left),
		h("Category", 2, align.Left),
		h("On hand", 2, align.Right),
		h("Reorder", 2, align.Right),
		h("Status", 1, align.Center),
	)
}

func productRows(products []entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		status := p.Status()
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(p.Category), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatKg(p.OnHandKg), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatKg(p.ReorderPointKg), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(string(status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor(status),
			})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusColor(s entity.StockStatus) *props.Color {
	switch s {
	case entity.StockOut:
		return colorOut
	case entity.StockLow:
		return colorLow
	}
	return colorPrimary
}

// formatKg cantidad con separador de miles y sufijo, ej: 12500.5 -> "12,500.5 kg".
func formatKg(v decimal.Decimal) string {
	s := v.Round(2).String()
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	return sign + groupThousands(intPart) + frac + " kg"
}

// groupThousands inserta comas de miles en un entero sin signo.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
