package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func TestGenerateInvoicePDF(t *testing.T) {
	inv := &entity.Invoice{
		ID:        "3f1c2a9e-0000-4000-8000-000000000001",
		Type:      entity.InvoiceTypeSale,
		Status:    entity.InvoiceStatusPending,
		Items:     entity.InvoiceItems{{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(12500)}},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	inv.ApplyTotals()
	doc := appbilling.InvoiceDocument{
		Invoice:  inv,
		Branch:   &entity.Branch{ID: "b1", Name: "Sucursal Centro"},
		Customer: &entity.Customer{FirstName: "Ana", LastName: "Gómez", Code: "C-01"},
		Lines: []appbilling.InvoiceLine{{
			ProductName: "Camiseta",
			Quantity:    2,
			Price:       decimal.NewFromInt(12500),
			Subtotal:    decimal.NewFromInt(25000),
		}},
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_SinCliente(t *testing.T) {
	inv := &entity.Invoice{ID: "x", Type: entity.InvoiceTypePurchase, Status: entity.InvoiceStatusDraft}
	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), appbilling.InvoiceDocument{
		Invoice: inv,
		Branch:  &entity.Branch{Name: "Bodega"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateInvoicePDF_SinSucursal(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), appbilling.InvoiceDocument{
		Invoice: &entity.Invoice{ID: "x"},
	})
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$25.000", money(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.000.000", money(decimal.NewFromInt(1000000)))
	assert.Equal(t, "$999", money(decimal.NewFromInt(999)))
	assert.Equal(t, "-$1.500", money(decimal.NewFromInt(-1500)))
	assert.Equal(t, "$10", money(decimal.RequireFromString("9.6")))
}
