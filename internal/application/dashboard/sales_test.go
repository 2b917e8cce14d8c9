package dashboard_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/domain/entity"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// ──────────────────────────────────────────────────────────────────────────────
// ComputeSalesDelta
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeSalesDelta_VectorExacto(t *testing.T) {
	got := dashboard.ComputeSalesDelta(d("120"), d("100"))
	require.NotNil(t, got)
	assert.True(t, got.Value.Equal(d("20")), "120 vs 100 debe dar +20%%, got %s", got.Value)
	assert.True(t, got.IsPositive)
}

func TestComputeSalesDelta_Casos(t *testing.T) {
	cases := []struct {
		name     string
		current  string
		previous string
		want     string
		positive bool
	}{
		{"caída", "80", "100", "-20", false},
		{"sin cambio es positivo", "100", "100", "0", true},
		{"semana actual vacía", "0", "50", "-100", false},
		{"decimales", "37.5", "25", "50", true},
		{"duplica", "200.5", "100.25", "100", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := dashboard.ComputeSalesDelta(d(tc.current), d(tc.previous))
			require.NotNil(t, got)
			assert.True(t, got.Value.Equal(d(tc.want)), "got %s want %s", got.Value, tc.want)
			assert.Equal(t, tc.positive, got.IsPositive)
		})
	}
}

func TestComputeSalesDelta_SemanaPreviaEnCeroEsNil(t *testing.T) {
	assert.Nil(t, dashboard.ComputeSalesDelta(d("0"), d("0")))
	assert.Nil(t, dashboard.ComputeSalesDelta(d("500"), d("0")))
}

func TestDeltaLabel(t *testing.T) {
	assert.Equal(t, "↑ 20.0% จากสัปดาห์ก่อน",
		dashboard.DeltaLabel(dashboard.SalesDelta{Value: d("20"), IsPositive: true}))
	assert.Equal(t, "↓ 12.3% จากสัปดาห์ก่อน",
		dashboard.DeltaLabel(dashboard.SalesDelta{Value: d("-12.345"), IsPositive: false}))
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeSalesSeries
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeSalesSeries_TreintaDiasOrdenadosYEnCero(t *testing.T) {
	today := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)
	series := dashboard.ComputeSalesSeries(nil, today)

	require.Len(t, series, dashboard.SeriesDays)
	assert.Equal(t, "2026-09-17", series[0].Label, "el primer día es hoy-29")
	assert.Equal(t, "2026-10-16", series[29].Label, "el último día es hoy")
	for i, p := range series {
		assert.True(t, p.TotalKg.IsZero(), "día %d debe ser 0", i)
		if i > 0 {
			assert.True(t, p.Date.After(series[i-1].Date), "orden cronológico")
		}
	}
}

func TestComputeSalesSeries_AcumulaYSumaTotal(t *testing.T) {
	today := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	records := []entity.SalePoint{
		{CreatedAt: time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC), QtyKg: d("25")},
		{CreatedAt: time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC), QtyKg: d("5.5")},
		{CreatedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC), QtyKg: d("100")},
		{CreatedAt: time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC), QtyKg: d("10")},
		// fuera de rango: hoy-30
		{CreatedAt: time.Date(2026, 9, 16, 23, 0, 0, 0, time.UTC), QtyKg: d("999")},
	}

	series := dashboard.ComputeSalesSeries(records, today)
	require.Len(t, series, 30)

	total := decimal.Zero
	for _, p := range series {
		assert.False(t, p.TotalKg.IsNegative())
		total = total.Add(p.TotalKg)
	}
	assert.True(t, total.Equal(d("140.5")), "la suma debe ignorar registros fuera de rango, got %s", total)
	assert.True(t, series[29].TotalKg.Equal(d("30.5")))
	assert.True(t, series[0].TotalKg.Equal(d("10")))
	assert.True(t, series[14].TotalKg.Equal(d("100")), "2026-10-01 es el índice 14")
}

func TestComputeSalesSeries_AgrupaPorFechaLocal(t *testing.T) {
	bkk := time.FixedZone("ICT", 7*3600)
	today := time.Date(2026, 10, 16, 10, 0, 0, 0, bkk)

	// 2026-10-15 18:30 UTC = 2026-10-16 01:30 en Bangkok
	records := []entity.SalePoint{
		{CreatedAt: time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC), QtyKg: d("40")},
	}
	series := dashboard.ComputeSalesSeries(records, today)
	assert.True(t, series[29].TotalKg.Equal(d("40")), "debe caer en el día local de hoy")
	assert.True(t, series[28].TotalKg.IsZero())
}

func TestSumQty(t *testing.T) {
	assert.True(t, dashboard.SumQty(nil).IsZero())
	assert.True(t, dashboard.SumQty([]entity.SalePoint{{QtyKg: d("1.25")}, {QtyKg: d("2.75")}}).Equal(d("4")))
}
