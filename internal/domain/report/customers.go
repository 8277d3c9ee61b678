package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// CustomerRow métricas de compra de un cliente.
type CustomerRow struct {
	CustomerID        string
	Name              string
	Email             string
	Orders            int64
	Revenue           decimal.Decimal
	AverageOrderValue decimal.Decimal
	FirstOrderAt      time.Time
	LastOrderAt       time.Time
}

// CustomerSummary totales del reporte por cliente.
type CustomerSummary struct {
	TotalCustomers    int64
	NewCustomers      int64
	RepeatCustomers   int64
	TotalRevenue      decimal.Decimal
	TotalOrders       int64
	AverageOrderValue decimal.Decimal
}

// CustomerReport reporte por cliente.
type CustomerReport struct {
	Rows    []CustomerRow
	Summary CustomerSummary
}

// ByCustomer agrupa las ventas pagadas por cliente.
// directory resuelve nombre y email; newCustomers son los clientes dados de alta en el rango.
// Filas ordenadas por ingreso descendente y luego por id.
func ByCustomer(invoices []*entity.Invoice, directory []*entity.Customer, newCustomers []*entity.Customer) CustomerReport {
	known := make(map[string]*entity.Customer, len(directory))
	for _, c := range directory {
		if c != nil {
			known[c.ID] = c
		}
	}

	byID := map[string]*CustomerRow{}
	sum := CustomerSummary{TotalRevenue: decimal.Zero}
	for _, inv := range paidSales(invoices) {
		if inv.CustomerID == "" {
			continue
		}
		row, ok := byID[inv.CustomerID]
		if !ok {
			row = &CustomerRow{
				CustomerID:   inv.CustomerID,
				Revenue:      decimal.Zero,
				FirstOrderAt: inv.CreatedAt,
				LastOrderAt:  inv.CreatedAt,
			}
			if c, found := known[inv.CustomerID]; found {
				row.Name = c.FullName()
				row.Email = c.Email
			}
			byID[inv.CustomerID] = row
		}
		amount := inv.ItemsTotal()
		row.Orders++
		row.Revenue = row.Revenue.Add(amount)
		if inv.CreatedAt.Before(row.FirstOrderAt) {
			row.FirstOrderAt = inv.CreatedAt
		}
		if inv.CreatedAt.After(row.LastOrderAt) {
			row.LastOrderAt = inv.CreatedAt
		}
		sum.TotalOrders++
		sum.TotalRevenue = sum.TotalRevenue.Add(amount)
	}

	rows := make([]CustomerRow, 0, len(byID))
	for _, row := range byID {
		row.AverageOrderValue = average(row.Revenue, row.Orders)
		if row.Orders > 1 {
			sum.RepeatCustomers++
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})

	for _, c := range newCustomers {
		if c != nil && !c.IsDeleted() {
			sum.NewCustomers++
		}
	}
	sum.TotalCustomers = int64(len(rows))
	sum.AverageOrderValue = average(sum.TotalRevenue, sum.TotalOrders)

	return CustomerReport{Rows: rows, Summary: sum}
}
