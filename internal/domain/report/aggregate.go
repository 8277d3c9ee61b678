package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Row una fila de la serie temporal del reporte general.
type Row struct {
	Date                string
	SaleCount           int64
	PurchaseCount       int64
	NewCustomerCount    int64
	SalesRevenue        decimal.Decimal
	PurchaseAmount      decimal.Decimal
	ActiveCustomerCount int64
}

type bucket struct {
	row    Row
	active map[string]struct{}
}

type buckets map[string]*bucket

func (b buckets) get(key string) *bucket {
	bk, ok := b[key]
	if !ok {
		bk = &bucket{
			row: Row{
				Date:           key,
				SalesRevenue:   decimal.Zero,
				PurchaseAmount: decimal.Zero,
			},
			active: map[string]struct{}{},
		}
		b[key] = bk
	}
	return bk
}

// Aggregate arma la serie temporal ventas/compras/clientes.
//
// Ventas: solo facturas sale en estado paid (cantidad, ingreso y clientes distintos).
// Compras: facturas purchase en cualquier estado.
// Clientes nuevos: por bucket de creación.
// Devuelve una fila por clave encontrada, ordenadas ascendentemente.
func Aggregate(invoices []*entity.Invoice, customers []*entity.Customer, p Period, loc *time.Location) []Row {
	b := buckets{}
	for _, inv := range invoices {
		if inv == nil || inv.IsDeleted() {
			continue
		}
		switch {
		case isPaidSale(inv):
			bk := b.get(BucketKey(inv.CreatedAt, p, loc))
			bk.row.SaleCount++
			bk.row.SalesRevenue = bk.row.SalesRevenue.Add(inv.ItemsTotal())
			if inv.CustomerID != "" {
				bk.active[inv.CustomerID] = struct{}{}
			}
		case inv.Type == entity.InvoiceTypePurchase:
			bk := b.get(BucketKey(inv.CreatedAt, p, loc))
			bk.row.PurchaseCount++
			bk.row.PurchaseAmount = bk.row.PurchaseAmount.Add(inv.ItemsTotal())
		}
	}
	for _, c := range customers {
		if c == nil || c.IsDeleted() {
			continue
		}
		b.get(BucketKey(c.CreatedAt, p, loc)).row.NewCustomerCount++
	}

	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		bk := b[k]
		bk.row.ActiveCustomerCount = int64(len(bk.active))
		rows = append(rows, bk.row)
	}
	return rows
}

func isPaidSale(inv *entity.Invoice) bool {
	return inv.Type == entity.InvoiceTypeSale && inv.Status == entity.InvoiceStatusPaid
}

func paidSales(invoices []*entity.Invoice) []*entity.Invoice {
	out := make([]*entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv != nil && !inv.IsDeleted() && isPaidSale(inv) {
			out = append(out, inv)
		}
	}
	return out
}

// average monto / cantidad con 2 decimales; 0 si no hay órdenes.
func average(revenue decimal.Decimal, orders int64) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	return revenue.DivRound(decimal.NewFromInt(orders), 2)
}
