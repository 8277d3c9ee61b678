package entity

import "github.com/shopspring/decimal"

// InvoiceItem línea de factura. Price es el precio del producto capturado en el
// momento de crear la línea; cambios posteriores del producto no lo afectan.
type InvoiceItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal precio × cantidad.
func (it InvoiceItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(it.Quantity))
}

// InvoiceItems lista tipada de líneas.
type InvoiceItems []InvoiceItem

// TotalItems Σ cantidad.
func (items InvoiceItems) TotalItems() int64 {
	var n int64
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// TotalPrice Σ (precio × cantidad).
func (items InvoiceItems) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ProductIDs ids de producto sin repetir, en orden de aparición.
func (items InvoiceItems) ProductIDs() []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
