package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// InvoiceLine línea lista para imprimir: ítem de factura + nombre del producto.
type InvoiceLine struct {
	ProductName string
	Quantity    int64
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoiceDocument todo lo que necesita el generador para representar una factura.
// Customer puede ser nil (facturas de compra sin cliente).
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Branch   *entity.Branch
	Customer *entity.Customer
	Lines    []InvoiceLine
}

// InvoicePDFGenerator genera la representación en PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}
