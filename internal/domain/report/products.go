package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProductRow ventas de un producto.
type ProductRow struct {
	ProductID    string
	Name         string
	UnitsSold    int64
	Revenue      decimal.Decimal
	Orders       int64
	AveragePrice decimal.Decimal
}

// ProductSummary totales del reporte por producto.
type ProductSummary struct {
	ProductsSold       int64
	TotalUnits         int64
	TotalRevenue       decimal.Decimal
	TotalOrders        int64
	AverageOrderValue  decimal.Decimal
	UnreadableInvoices int64
}

// ProductReport reporte por producto.
type ProductReport struct {
	Rows    []ProductRow
	Summary ProductSummary
}

// ByProduct desglosa las ventas pagadas por producto a partir de los ítems.
// Las facturas con ítems ilegibles no aportan filas; se cuentan en UnreadableInvoices.
func ByProduct(invoices []*entity.Invoice, products []*entity.Product) ProductReport {
	names := make(map[string]string, len(products))
	for _, p := range products {
		if p != nil {
			names[p.ID] = p.Name
		}
	}

	byID := map[string]*ProductRow{}
	sum := ProductSummary{TotalRevenue: decimal.Zero}
	for _, inv := range paidSales(invoices) {
		if inv.ItemsUnreadable {
			sum.UnreadableInvoices++
			continue
		}
		sum.TotalOrders++
		seen := map[string]struct{}{}
		for _, it := range inv.Items {
			row, ok := byID[it.ProductID]
			if !ok {
				row = &ProductRow{ProductID: it.ProductID, Name: names[it.ProductID], Revenue: decimal.Zero}
				byID[it.ProductID] = row
			}
			sub := it.Subtotal()
			row.UnitsSold += it.Quantity
			row.Revenue = row.Revenue.Add(sub)
			if _, dup := seen[it.ProductID]; !dup {
				row.Orders++
				seen[it.ProductID] = struct{}{}
			}
			sum.TotalUnits += it.Quantity
			sum.TotalRevenue = sum.TotalRevenue.Add(sub)
		}
	}

	rows := make([]ProductRow, 0, len(byID))
	for _, row := range byID {
		row.AveragePrice = average(row.Revenue, row.UnitsSold)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	sum.ProductsSold = int64(len(rows))
	sum.AverageOrderValue = average(sum.TotalRevenue, sum.TotalOrders)
	return ProductReport{Rows: rows, Summary: sum}
}
