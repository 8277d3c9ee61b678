package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// SalesRow fila del reporte detallado de ventas.
type SalesRow struct {
	Date              string
	Transactions      int64
	Revenue           decimal.Decimal
	UnitsSold         int64
	AverageOrderValue decimal.Decimal
	UniqueCustomers   int64
}

// SalesSummary totales del período.
type SalesSummary struct {
	TotalRevenue      decimal.Decimal
	TransactionCount  int64
	UnitsSold         int64
	AverageOrderValue decimal.Decimal
	UniqueCustomers   int64
	RepeatCustomers   int64
}

// SalesReport reporte detallado de ventas pagadas.
type SalesReport struct {
	Rows    []SalesRow
	Summary SalesSummary
}

// DetailedSales agrupa las ventas pagadas por período.
// Cliente recurrente: más de una orden en el rango.
func DetailedSales(invoices []*entity.Invoice, p Period, loc *time.Location) SalesReport {
	type acc struct {
		row       SalesRow
		customers map[string]struct{}
	}
	byKey := map[string]*acc{}
	orders := map[string]int64{}
	sum := SalesSummary{TotalRevenue: decimal.Zero}

	for _, inv := range paidSales(invoices) {
		key := BucketKey(inv.CreatedAt, p, loc)
		a, ok := byKey[key]
		if !ok {
			a = &acc{row: SalesRow{Date: key, Revenue: decimal.Zero}, customers: map[string]struct{}{}}
			byKey[key] = a
		}
		amount := inv.ItemsTotal()
		a.row.Transactions++
		a.row.Revenue = a.row.Revenue.Add(amount)
		a.row.UnitsSold += inv.TotalItems
		if inv.CustomerID != "" {
			a.customers[inv.CustomerID] = struct{}{}
			orders[inv.CustomerID]++
		}

		sum.TransactionCount++
		sum.TotalRevenue = sum.TotalRevenue.Add(amount)
		sum.UnitsSold += inv.TotalItems
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]SalesRow, 0, len(keys))
	for _, k := range keys {
		a := byKey[k]
		a.row.UniqueCustomers = int64(len(a.customers))
		a.row.AverageOrderValue = average(a.row.Revenue, a.row.Transactions)
		rows = append(rows, a.row)
	}

	sum.UniqueCustomers = int64(len(orders))
	for _, n := range orders {
		if n > 1 {
			sum.RepeatCustomers++
		}
	}
	sum.AverageOrderValue = average(sum.TotalRevenue, sum.TransactionCount)

	return SalesReport{Rows: rows, Summary: sum}
}
