package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/authz"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/sqlite/sqlitetest"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type reportFixture struct {
	env     *sqlitetest.Env
	uc      *ReportUseCase
	branch  *entity.Branch
	manager authz.Actor
	owner   authz.Actor
	shirt   *entity.Product
	socks   *entity.Product
}

func setupReports(t *testing.T) *reportFixture {
	t.Helper()
	env := sqlitetest.New(t)
	b := env.Branch(t, "Centro")
	staff, manager := env.Staff(t, b.ID, entity.RoleManager)
	_, owner := env.Staff(t, b.ID, entity.RoleOwner)
	shirt := env.Product(t, b.ID, "Camisa", "30", 10)
	socks := env.Product(t, b.ID, "Medias", "5", 10)
	c := env.Customer(t, b.ID, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))

	sale := func(at time.Time, status entity.InvoiceStatus, items ...entity.InvoiceItem) {
		env.Invoice(t, b.ID, c.ID, staff.ID, entity.InvoiceTypeSale, status, at, items...)
	}
	sale(time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC), entity.InvoiceStatusPaid,
		entity.InvoiceItem{ProductID: socks.ID, Quantity: 2, Price: decimal.NewFromInt(5)})
	sale(time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC), entity.InvoiceStatusPaid,
		entity.InvoiceItem{ProductID: shirt.ID, Quantity: 1, Price: decimal.NewFromInt(30)})
	sale(time.Date(2026, 2, 22, 10, 0, 0, 0, time.UTC), entity.InvoiceStatusCanceled,
		entity.InvoiceItem{ProductID: shirt.ID, Quantity: 9, Price: decimal.NewFromInt(30)})
	env.Invoice(t, b.ID, "", staff.ID, entity.InvoiceTypePurchase, entity.InvoiceStatusPending,
		time.Date(2026, 2, 21, 10, 0, 0, 0, time.UTC),
		entity.InvoiceItem{ProductID: socks.ID, Quantity: 1, Price: decimal.NewFromInt(5)})

	uc := NewReportUseCase(env.Repos, ReportConfig{Location: time.UTC}, zerolog.Nop())
	uc.now = func() time.Time { return fixedNow }
	return &reportFixture{env: env, uc: uc, branch: b, manager: manager, owner: owner, shirt: shirt, socks: socks}
}

func TestGetReports_PorMes(t *testing.T) {
	f := setupReports(t)

	got, err := f.uc.GetReports(context.Background(), f.manager, map[string]any{
		"start_date": "2026-01-01",
		"end_date":   "2026-02-28",
		"period":     "month",
	})
	require.NoError(t, err)
	assert.Equal(t, "month", got.Period)
	require.Len(t, got.Rows, 2)

	jan, feb := got.Rows[0], got.Rows[1]
	assert.Equal(t, "2026-01", jan.Date)
	assert.Equal(t, int64(1), jan.SaleCount)
	assert.True(t, jan.SalesRevenue.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(1), jan.NewCustomerCount)
	assert.Equal(t, int64(1), jan.ActiveCustomerCount)

	assert.Equal(t, "2026-02", feb.Date)
	assert.Equal(t, int64(1), feb.SaleCount, "la venta anulada no cuenta")
	assert.True(t, feb.SalesRevenue.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(1), feb.PurchaseCount, "las compras cuentan en cualquier estado")
	assert.True(t, feb.PurchaseAmount.Equal(decimal.NewFromInt(5)))
}

func TestGetReports_FechaInvalidaUsaRangoPorDefecto(t *testing.T) {
	f := setupReports(t)

	got, err := f.uc.GetReports(context.Background(), f.manager, map[string]any{"start_date": "ayer"})
	require.NoError(t, err)
	assert.True(t, got.Range.Invalid)
	assert.True(t, got.Range.End.Equal(fixedNow))
	assert.True(t, got.Range.Start.Equal(fixedNow.AddDate(0, 0, -30)))
	// 13 de febrero a 15 de marzo: solo las facturas de febrero
	for _, r := range got.Rows {
		assert.Equal(t, "2026-02", r.Date[:7])
	}
}

func TestGetReports_PeriodoInvalido(t *testing.T) {
	f := setupReports(t)

	_, err := f.uc.GetReports(context.Background(), f.manager, map[string]any{"period": "year"})
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CauseValidation, de.Cause)
}

func TestGetReports_OtraSucursalSoloOwner(t *testing.T) {
	f := setupReports(t)
	other := f.env.Branch(t, "Norte")
	ctx := context.Background()

	_, err := f.uc.GetReports(ctx, f.manager, map[string]any{"branch_id": other.ID})
	assert.ErrorIs(t, err, domain.ErrNotAllowed)

	got, err := f.uc.GetReports(ctx, f.owner, map[string]any{"branch_id": other.ID, "start_date": "2026-01-01"})
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
}

func TestGetReports_EmpleadoNoAutorizado(t *testing.T) {
	f := setupReports(t)
	_, employee := f.env.Staff(t, f.branch.ID, entity.RoleEmployee)

	_, err := f.uc.GetReports(context.Background(), employee, map[string]any{})
	assert.ErrorIs(t, err, domain.ErrNotAllowed)
}

func TestGetDetailedSales_Resumen(t *testing.T) {
	f := setupReports(t)

	got, err := f.uc.GetDetailedSales(context.Background(), f.manager, map[string]any{
		"start_date": "2026-01-01", "end_date": "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Summary.TransactionCount)
	assert.True(t, got.Summary.TotalRevenue.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, int64(3), got.Summary.UnitsSold)
	assert.Equal(t, int64(1), got.Summary.UniqueCustomers)
	assert.Equal(t, int64(1), got.Summary.RepeatCustomers)
}

func TestGetProductReport_NombraProductosEliminados(t *testing.T) {
	f := setupReports(t)
	ctx := context.Background()
	require.NoError(t, f.env.Repos.Products.SoftDelete(ctx, f.shirt.ID))

	got, err := f.uc.GetProductReport(ctx, f.manager, map[string]any{"start_date": "2026-01-01"})
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	names := map[string]string{}
	for _, r := range got.Rows {
		names[r.ProductID] = r.Name
	}
	assert.Equal(t, "Camisa", names[f.shirt.ID])
	assert.Equal(t, "Medias", names[f.socks.ID])
	assert.Equal(t, int64(3), got.Summary.TotalUnits)
}

func TestGetCustomerReport(t *testing.T) {
	f := setupReports(t)

	got, err := f.uc.GetCustomerReport(context.Background(), f.manager, map[string]any{"start_date": "2026-01-01"})
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "Ana Gómez", got.Rows[0].Name)
	assert.Equal(t, int64(2), got.Rows[0].Orders)
	assert.True(t, got.Rows[0].Revenue.Equal(decimal.NewFromInt(40)))
}

func TestGetDashboard(t *testing.T) {
	f := setupReports(t)
	today := fixedNow.Add(-2 * time.Hour)
	staff, err := f.env.Repos.Staff.GetByEmail(context.Background(), f.manager.Email)
	require.NoError(t, err)
	f.env.Invoice(t, f.branch.ID, "", staff.ID, entity.InvoiceTypeSale, entity.InvoiceStatusPaid, today,
		entity.InvoiceItem{ProductID: f.socks.ID, Quantity: 4, Price: decimal.NewFromInt(5)})
	f.env.Invoice(t, f.branch.ID, "", staff.ID, entity.InvoiceTypeSale, entity.InvoiceStatusPaid, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		entity.InvoiceItem{ProductID: f.shirt.ID, Quantity: 1, Price: decimal.NewFromInt(30)})

	got, err := f.uc.GetDashboard(context.Background(), f.manager)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TodayOrders)
	assert.True(t, got.TodaySales.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, int64(2), got.MonthlyOrders)
	assert.True(t, got.MonthlySales.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "Marzo 2026", got.DateLabel)
	assert.Len(t, got.TopProducts, 2)
}
