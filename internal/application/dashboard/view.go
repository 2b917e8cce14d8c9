package dashboard

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rice-stock/internal/application/dto"
	"github.com/jhoicas/rice-stock/internal/domain/entity"
)

// DeltaLabel texto de la variación semanal, ej: "↑ 20.0% จากสัปดาห์ก่อน".
func DeltaLabel(d SalesDelta) string {
	arrow := "↓"
	if d.IsPositive {
		arrow = "↑"
	}
	return fmt.Sprintf("%s %s%% จากสัปดาห์ก่อน", arrow, d.Value.Abs().StringFixed(1))
}

// buildView proyecta el estado a la vista. Se llama con el lock tomado.
// Sin sesión no se expone ningún dato del almacén.
func buildView(s State) dto.DashboardView {
	if !s.LoggedIn {
		s.Products, s.Transactions, s.SalesSeries = nil, nil, nil
		s.KPIs, s.SalesDelta = nil, nil
	}
	v := dto.DashboardView{
		LoggedIn:    s.LoggedIn,
		AuthError:   s.AuthError,
		Loading:     s.Loading,
		ActiveTab:   string(s.ActiveTab),
		SearchQuery: s.SearchQuery,
		Modal: dto.ModalView{
			Open:      s.Modal.Open,
			ProductID: s.Modal.ProductID,
			Type:      string(s.Modal.Type),
		},
		KPIs: dto.KPIView{TotalStockKg: decimal.Zero, Sales7dKg: decimal.Zero},
	}

	if s.KPIs != nil {
		v.KPIsAvailable = true
		v.KPIs = dto.KPIView{
			TotalStockKg:  s.KPIs.TotalStockKg,
			SKUCount:      s.KPIs.SKUCount,
			LowStockCount: s.KPIs.LowStockCount,
			Sales7dKg:     s.KPIs.Sales7dKg,
		}
	}

	if s.SalesDelta != nil {
		v.SalesDelta = &dto.SalesDeltaView{
			Value:      s.SalesDelta.Value,
			IsPositive: s.SalesDelta.IsPositive,
			Label:      DeltaLabel(*s.SalesDelta),
		}
	}

	v.SalesSeries = dto.SalesSeriesView{
		Labels: make([]string, 0, len(s.SalesSeries)),
		Values: make([]decimal.Decimal, 0, len(s.SalesSeries)),
	}
	for _, p := range s.SalesSeries {
		v.SalesSeries.Labels = append(v.SalesSeries.Labels, p.Label)
		v.SalesSeries.Values = append(v.SalesSeries.Values, p.TotalKg)
	}

	filtered := Filter(s.Products, s.SearchQuery)
	v.Products = make([]dto.ProductRow, 0, len(filtered))
	for _, p := range filtered {
		v.Products = append(v.Products, productRow(p))
	}

	v.Transactions = make([]dto.TransactionRow, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		v.Transactions = append(v.Transactions, transactionRow(t))
	}

	v.Categories = make([]string, 0, len(entity.Categories))
	for _, c := range entity.Categories {
		v.Categories = append(v.Categories, string(c))
	}
	return v
}

func productRow(p entity.Product) dto.ProductRow {
	return dto.ProductRow{
		ProductID:      p.ProductID,
		SKU:            p.SKU,
		Name:           p.Name,
		NameTH:         p.NameTH,
		Category:       string(p.Category),
		PackSizeKg:     p.PackSizeKg,
		ReorderPointKg: p.ReorderPointKg,
		OnHandKg:       p.OnHandKg,
		Status:         string(p.Status()),
	}
}

func transactionRow(t entity.Transaction) dto.TransactionRow {
	row := dto.TransactionRow{
		ID:          t.ID,
		CreatedAt:   t.CreatedAt,
		Type:        string(t.Type),
		ProductID:   t.ProductID,
		ProductName: t.ProductName,
		QtyKg:       t.QtyKg,
	}
	if t.Ref != nil {
		row.Ref = *t.Ref
	}
	if t.Note != nil {
		row.Note = *t.Note
	}
	return row
}
