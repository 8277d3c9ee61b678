package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/report"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func invoice(id, customer string, typ entity.InvoiceType, status entity.InvoiceStatus, at string, items ...entity.InvoiceItem) *entity.Invoice {
	inv := &entity.Invoice{
		ID:         id,
		BranchID:   "b1",
		CustomerID: customer,
		Type:       typ,
		Status:     status,
		Items:      items,
		CreatedAt:  day(at),
	}
	inv.ApplyTotals()
	return inv
}

func item(product string, qty int64, price string) entity.InvoiceItem {
	return entity.InvoiceItem{ProductID: product, Quantity: qty, Price: decimal.RequireFromString(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rango de fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeRange_VacioUsaPorDefecto(t *testing.T) {
	r := report.NormalizeRange("", "", now, time.UTC, 30)
	assert.False(t, r.Invalid)
	assert.Equal(t, now, r.End)
	assert.Equal(t, now.AddDate(0, 0, -30), r.Start)
}

func TestNormalizeRange_FechaInvalida(t *testing.T) {
	r := report.NormalizeRange("ayer", "2026-10-01", now, time.UTC, 30)
	assert.True(t, r.Invalid, "una fecha ilegible se marca como inválida")
	assert.Equal(t, now.AddDate(0, 0, -30), r.Start)
	assert.Equal(t, now, r.End)
}

func TestNormalizeRange_IntercambiaExtremos(t *testing.T) {
	r := report.NormalizeRange("2026-03-10", "2026-03-01", now, time.UTC, 30)
	require.False(t, r.Invalid)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999999999, time.UTC), r.End)
}

func TestNormalizeRange_FinSinHoraCubreElDia(t *testing.T) {
	r := report.NormalizeRange("2024-01-05T10:00", "2024-01-05", now, time.UTC, 30)
	require.False(t, r.Invalid)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 1, 5, 23, 59, 59, 999999999, time.UTC), r.End)

	r = report.NormalizeRange("2024-01-06T10:00", "2024-01-05", now, time.UTC, 30)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC), r.End)
}

func TestNormalizeRange_RecortaFuturo(t *testing.T) {
	r := report.NormalizeRange("2026-10-01T00:00:00Z", "2027-01-01", now, time.UTC, 30)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, now, r.End)

	r = report.NormalizeRange("2027-01-01", "", now, time.UTC, 30)
	assert.False(t, r.Start.After(r.End))
	assert.False(t, r.End.After(now))
}

func TestNormalizeRange_SiempreOrdenado(t *testing.T) {
	cases := [][2]string{
		{"", ""},
		{"2026-05-01", ""},
		{"", "2026-05-01"},
		{"2026-12-31", "2026-01-01"},
		{"2030-01-01", "2031-01-01"},
		{"2026-05-01T10:30", "2026-05-01T08:00"},
		{"x", "y"},
	}
	for _, c := range cases {
		r := report.NormalizeRange(c[0], c[1], now, time.UTC, 30)
		assert.False(t, r.Start.After(r.End), "start <= end para %v", c)
		assert.False(t, r.End.After(now), "end <= now para %v", c)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Buckets
// ──────────────────────────────────────────────────────────────────────────────

func TestParsePeriod(t *testing.T) {
	p, ok := report.ParsePeriod("")
	assert.True(t, ok)
	assert.Equal(t, report.PeriodDay, p)

	p, ok = report.ParsePeriod(" Week ")
	assert.True(t, ok)
	assert.Equal(t, report.PeriodWeek, p)

	_, ok = report.ParsePeriod("quarter")
	assert.False(t, ok)
}

func TestBucketKey(t *testing.T) {
	cases := []struct {
		at     string
		period report.Period
		want   string
	}{
		{"2026-10-21T15:00", report.PeriodDay, "2026-10-21"},
		{"2026-10-21T15:00", report.PeriodWeek, "2026-10-18"},
		{"2026-10-18T23:59", report.PeriodWeek, "2026-10-18"},
		{"2026-02-28T10:00", report.PeriodWeek, "2026-02-22"},
		{"2026-03-03T10:00", report.PeriodWeek, "2026-03-01"},
		{"2026-10-21T15:00", report.PeriodMonth, "2026-10"},
	}
	for _, tc := range cases {
		t.Run(string(tc.period)+"/"+tc.at, func(t *testing.T) {
			assert.Equal(t, tc.want, report.BucketKey(day(tc.at), tc.period, time.UTC))
		})
	}
}

func TestBucketKey_ZonaHoraria(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	at := day("2026-01-01T02:00")
	assert.Equal(t, "2026-01-01", report.BucketKey(at, report.PeriodDay, time.UTC))
	assert.Equal(t, "2025-12-31", report.BucketKey(at, report.PeriodDay, bogota))
	assert.Equal(t, "2025-12", report.BucketKey(at, report.PeriodMonth, bogota))
}

// ──────────────────────────────────────────────────────────────────────────────
// Serie temporal
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_DosMeses(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("i1", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-01-15T10:00", item("p1", 2, "5"), item("p2", 1, "30")),
		invoice("i2", "c2", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-02-03T10:00", item("p1", 2, "5")),
		invoice("i3", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPending, "2026-02-04T10:00", item("p1", 10, "5")),
		invoice("i4", "", entity.InvoiceTypePurchase, entity.InvoiceStatusDraft, "2026-02-10T10:00", item("p3", 5, "5")),
	}
	customers := []*entity.Customer{{ID: "c3", CreatedAt: day("2026-01-20T09:00")}}

	rows := report.Aggregate(invoices, customers, report.PeriodMonth, time.UTC)
	require.Len(t, rows, 2)

	jan, feb := rows[0], rows[1]
	assert.Equal(t, "2026-01", jan.Date)
	assert.Equal(t, int64(1), jan.SaleCount)
	assert.True(t, decimal.NewFromInt(40).Equal(jan.SalesRevenue))
	assert.Equal(t, int64(1), jan.NewCustomerCount)
	assert.Equal(t, int64(1), jan.ActiveCustomerCount)
	assert.Equal(t, int64(0), jan.PurchaseCount)

	assert.Equal(t, "2026-02", feb.Date)
	assert.Equal(t, int64(1), feb.SaleCount, "las ventas pendientes no cuentan")
	assert.True(t, decimal.NewFromInt(10).Equal(feb.SalesRevenue))
	assert.Equal(t, int64(1), feb.PurchaseCount)
	assert.True(t, decimal.NewFromInt(25).Equal(feb.PurchaseAmount))
	assert.Equal(t, int64(1), feb.ActiveCustomerCount)
}

func TestAggregate_ClientesActivosDistintos(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("i1", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-01T10:00", item("p1", 1, "1")),
		invoice("i2", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-01T11:00", item("p1", 1, "1")),
		invoice("i3", "c2", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-01T12:00", item("p1", 1, "1")),
	}
	rows := report.Aggregate(invoices, nil, report.PeriodDay, time.UTC)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0].SaleCount)
	assert.Equal(t, int64(2), rows[0].ActiveCustomerCount)
}

func TestAggregate_IgnoraEliminadas(t *testing.T) {
	deleted := invoice("i1", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-01T10:00", item("p1", 1, "1"))
	at := now
	deleted.DeletedAt = &at
	assert.Empty(t, report.Aggregate([]*entity.Invoice{deleted}, nil, report.PeriodDay, time.UTC))
}

func TestAggregate_ItemsIlegiblesUsaTotalItems(t *testing.T) {
	legacy := &entity.Invoice{
		ID: "old", CustomerID: "c1",
		Type: entity.InvoiceTypeSale, Status: entity.InvoiceStatusPaid,
		TotalItems: 7, ItemsUnreadable: true, CreatedAt: day("2026-05-01T10:00"),
	}
	rows := report.Aggregate([]*entity.Invoice{legacy}, nil, report.PeriodDay, time.UTC)
	require.Len(t, rows, 1)
	assert.True(t, decimal.NewFromInt(7).Equal(rows[0].SalesRevenue))
}

func TestAggregate_Idempotente(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("i1", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-03T10:00", item("p1", 3, "2.5")),
		invoice("i2", "c2", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-01T10:00", item("p1", 1, "9.99")),
		invoice("i3", "", entity.InvoiceTypePurchase, entity.InvoiceStatusPaid, "2026-05-02T10:00", item("p2", 1, "4")),
	}
	first := report.Aggregate(invoices, nil, report.PeriodDay, time.UTC)
	second := report.Aggregate(invoices, nil, report.PeriodDay, time.UTC)
	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "2026-05-01", first[0].Date, "filas en orden ascendente")
	assert.Equal(t, "2026-05-03", first[2].Date)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes detallados
// ──────────────────────────────────────────────────────────────────────────────

func TestDetailedSales(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("i1", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-01T10:00", item("p1", 2, "5")),
		invoice("i2", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-02T10:00", item("p1", 1, "20")),
		invoice("i3", "c2", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-02T11:00", item("p2", 1, "15")),
		invoice("i4", "c3", entity.InvoiceTypeSale, entity.InvoiceStatusCanceled, "2026-05-02T12:00", item("p2", 1, "99")),
	}
	rep := report.DetailedSales(invoices, report.PeriodDay, time.UTC)

	require.Len(t, rep.Rows, 2)
	assert.Equal(t, int64(2), rep.Rows[1].Transactions)
	assert.True(t, decimal.NewFromInt(35).Equal(rep.Rows[1].Revenue))
	assert.True(t, decimal.RequireFromString("17.5").Equal(rep.Rows[1].AverageOrderValue))

	assert.Equal(t, int64(3), rep.Summary.TransactionCount)
	assert.True(t, decimal.NewFromInt(45).Equal(rep.Summary.TotalRevenue))
	assert.True(t, decimal.NewFromInt(15).Equal(rep.Summary.AverageOrderValue))
	assert.Equal(t, int64(2), rep.Summary.UniqueCustomers)
	assert.Equal(t, int64(1), rep.Summary.RepeatCustomers)
	assert.Equal(t, int64(4), rep.Summary.UnitsSold)
}

func TestDetailedSales_SinVentas(t *testing.T) {
	rep := report.DetailedSales(nil, report.PeriodWeek, time.UTC)
	assert.Empty(t, rep.Rows)
	assert.True(t, rep.Summary.AverageOrderValue.IsZero())
	assert.True(t, rep.Summary.TotalRevenue.IsZero())
}

func TestByCustomer(t *testing.T) {
	invoices := []*entity.Invoice{
		invoice("i1", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-01T10:00", item("p1", 1, "10")),
		invoice("i2", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-05T10:00", item("p1", 1, "30")),
		invoice("i3", "c2", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-03T10:00", item("p1", 1, "50")),
	}
	directory := []*entity.Customer{
		{ID: "c1", FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"},
		{ID: "c2", FirstName: "Luis", LastName: "Pardo"},
	}
	newOnes := []*entity.Customer{{ID: "c2"}}

	rep := report.ByCustomer(invoices, directory, newOnes)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "c2", rep.Rows[0].CustomerID, "ordenado por ingreso descendente")
	assert.Equal(t, "Ana Silva", rep.Rows[1].Name)
	assert.Equal(t, int64(2), rep.Rows[1].Orders)
	assert.True(t, decimal.NewFromInt(20).Equal(rep.Rows[1].AverageOrderValue))
	assert.Equal(t, day("2026-05-01T10:00"), rep.Rows[1].FirstOrderAt)
	assert.Equal(t, day("2026-05-05T10:00"), rep.Rows[1].LastOrderAt)

	assert.Equal(t, int64(2), rep.Summary.TotalCustomers)
	assert.Equal(t, int64(1), rep.Summary.RepeatCustomers)
	assert.Equal(t, int64(1), rep.Summary.NewCustomers)
	assert.True(t, decimal.NewFromInt(90).Equal(rep.Summary.TotalRevenue))
	assert.True(t, decimal.NewFromInt(30).Equal(rep.Summary.AverageOrderValue))
}

func TestByProduct(t *testing.T) {
	legacy := &entity.Invoice{
		ID: "old", Type: entity.InvoiceTypeSale, Status: entity.InvoiceStatusPaid,
		TotalItems: 3, ItemsUnreadable: true, CreatedAt: day("2026-05-01T10:00"),
	}
	invoices := []*entity.Invoice{
		invoice("i1", "c1", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-01T10:00", item("p1", 2, "5"), item("p2", 1, "40")),
		invoice("i2", "c2", entity.InvoiceTypeSale, entity.InvoiceStatusPaid, "2026-05-02T10:00", item("p1", 4, "5")),
		legacy,
	}
	products := []*entity.Product{{ID: "p1", Name: "Café"}, {ID: "p2", Name: "Taza"}}

	rep := report.ByProduct(invoices, products)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "p2", rep.Rows[0].ProductID)
	assert.Equal(t, "Café", rep.Rows[1].Name)
	assert.Equal(t, int64(6), rep.Rows[1].UnitsSold)
	assert.Equal(t, int64(2), rep.Rows[1].Orders)
	assert.True(t, decimal.NewFromInt(30).Equal(rep.Rows[1].Revenue))
	assert.True(t, decimal.NewFromInt(5).Equal(rep.Rows[1].AveragePrice))

	assert.Equal(t, int64(1), rep.Summary.UnreadableInvoices)
	assert.Equal(t, int64(7), rep.Summary.TotalUnits)
	assert.True(t, decimal.NewFromInt(70).Equal(rep.Summary.TotalRevenue))
	assert.True(t, decimal.NewFromInt(35).Equal(rep.Summary.AverageOrderValue))
}
