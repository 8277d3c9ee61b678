package validation_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/validation"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeBadRequest, de.Code)
	return de.Fields
}

func TestInvoiceCreate_Valido(t *testing.T) {
	customer, product := uuid.NewString(), uuid.NewString()
	in, err := validation.InvoiceCreate(map[string]any{
		"customer_id": customer,
		"type":        "SALE",
		"items": []any{
			map[string]any{"product_id": product, "quantity": "3", "price": 1},
		},
		"expires_at": "2026-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "sale", in.Type)
	assert.Equal(t, "", in.Status, "el estado por defecto lo decide el caso de uso")
	require.Len(t, in.Items, 1)
	assert.Equal(t, int64(3), in.Items[0].Quantity)
	require.NotNil(t, in.ExpiresAt)
}

func TestInvoiceCreate_RutasAnidadas(t *testing.T) {
	_, err := validation.InvoiceCreate(map[string]any{
		"type": "sale",
		"items": []any{
			map[string]any{"product_id": uuid.NewString(), "quantity": "abc"},
			map[string]any{"product_id": "no-uuid", "quantity": 0},
			"texto",
		},
	})
	fields := fieldsOf(t, err)
	assert.Equal(t, "es obligatorio", fields["customer_id"])
	assert.Equal(t, "debe ser un número", fields["items.0.quantity"])
	assert.Contains(t, fields, "items.1.quantity")
	assert.Contains(t, fields, "items.1.product_id")
	assert.Equal(t, "debe ser un objeto", fields["items.2"])
}

func TestInvoiceCreate_SinItemsYEstadoCancelado(t *testing.T) {
	_, err := validation.InvoiceCreate(map[string]any{
		"customer_id": uuid.NewString(),
		"type":        "sale",
		"status":      "canceled",
		"items":       []any{},
	})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "items")
	assert.Contains(t, fields, "status")
}

func TestInvoiceUpdate_ItemsVacios(t *testing.T) {
	_, err := validation.InvoiceUpdate(map[string]any{"id": uuid.NewString(), "items": []any{}})
	assert.Contains(t, fieldsOf(t, err), "items")

	in, err := validation.InvoiceUpdate(map[string]any{"id": uuid.NewString(), "status": "PAID"})
	require.NoError(t, err)
	require.NotNil(t, in.Status)
	assert.Equal(t, "paid", *in.Status)
	assert.Nil(t, in.Items)
}

func TestBranchCreate_Atributos(t *testing.T) {
	_, err := validation.BranchCreate(map[string]any{
		"name":       "Centro",
		"website":    "no es url",
		"attributes": map[string]any{"zip": "12-34", "city": 10, "extra": true},
	})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "website")
	assert.Contains(t, fields, "attributes.zip")
	assert.Equal(t, "debe ser texto", fields["attributes.city"])
	assert.NotContains(t, fields, "attributes.extra")

	_, err = validation.BranchCreate(map[string]any{"name": "Centro", "attributes": "x"})
	assert.Equal(t, "debe ser un objeto", fieldsOf(t, err)["attributes"])
}

func TestStaffCreate_NormalizaRol(t *testing.T) {
	in, err := validation.StaffCreate(map[string]any{
		"first_name": "Ana", "last_name": "Silva", "email": "ana@example.com", "role": " admin ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", in.Role)
	assert.True(t, in.Active)

	_, err = validation.StaffCreate(map[string]any{
		"first_name": "Ana", "last_name": "Silva", "email": "ana", "role": "ROOT",
	})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "role")
}

func TestProductCreate_Coercion(t *testing.T) {
	in, err := validation.ProductCreate(map[string]any{
		"category_id": uuid.NewString(),
		"name":        "Café",
		"price":       "9.99",
		"stock":       "12",
		"available":   "Não",
		"colors":      []any{"rojo", "azul"},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("9.99").Equal(in.Price))
	assert.Equal(t, int64(12), in.Stock)
	assert.False(t, in.Available)
	assert.Equal(t, "COP", in.Currency)
	assert.Equal(t, []string{"rojo", "azul"}, in.Colors)
}

func TestProductCreate_Errores(t *testing.T) {
	_, err := validation.ProductCreate(map[string]any{
		"category_id": uuid.NewString(),
		"name":        "Café",
		"price":       -1,
		"stock":       1.5,
		"colors":      []any{"rojo", 3},
	})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "price")
	assert.Equal(t, "debe ser un número entero", fields["stock"])
	assert.Equal(t, "debe ser texto", fields["colors.1"])

	_, err = validation.ProductCreate(map[string]any{"category_id": uuid.NewString(), "name": "Café"})
	assert.Equal(t, "es obligatorio", fieldsOf(t, err)["price"])
}

func TestStockAdjust(t *testing.T) {
	in, err := validation.StockAdjust(map[string]any{"product_id": uuid.NewString(), "delta": "-4"})
	require.NoError(t, err)
	assert.Equal(t, int64(-4), in.Delta)

	_, err = validation.StockAdjust(map[string]any{"product_id": uuid.NewString(), "delta": 0})
	assert.Contains(t, fieldsOf(t, err), "delta")
}

func TestStockAdjust_FueraDeRango(t *testing.T) {
	for _, delta := range []any{float64(1 << 63), float64(-(1 << 63)), "2000000000"} {
		_, err := validation.StockAdjust(map[string]any{"product_id": uuid.NewString(), "delta": delta})
		assert.Contains(t, fieldsOf(t, err), "delta", "delta=%v", delta)
	}
}

func TestInvoiceCreate_CantidadAcotada(t *testing.T) {
	raw := map[string]any{
		"customer_id": uuid.NewString(),
		"type":        "sale",
		"items": []any{
			map[string]any{"product_id": uuid.NewString(), "quantity": float64(9e18)},
			map[string]any{"product_id": uuid.NewString(), "quantity": float64(1000000000)},
		},
	}
	_, err := validation.InvoiceCreate(raw)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "items.0.quantity")
	assert.NotContains(t, fields, "items.1.quantity")
}

func TestReportQuery_BranchIDUsaNombreDeQuery(t *testing.T) {
	_, err := validation.ReportQuery(map[string]any{"period": "day", "branch_id": "no-uuid"})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "branch_id")
	assert.NotContains(t, fields, "BranchID")
}

func TestReportQuery_PeriodoInvalido(t *testing.T) {
	in, err := validation.ReportQuery(map[string]any{"period": "Month", "start_date": "basura"})
	require.NoError(t, err, "las fechas ilegibles no son errores de validación")
	assert.Equal(t, "month", in.Period)

	_, err = validation.ReportQuery(map[string]any{"period": "quarter"})
	assert.Contains(t, fieldsOf(t, err), "period")
}

func TestInvoiceList_Filtros(t *testing.T) {
	in, err := validation.InvoiceList(map[string]any{"status": "PAID", "limit": "500"})
	require.NoError(t, err)
	assert.Equal(t, "paid", in.Status)
	assert.Equal(t, 100, in.Limit)

	_, err = validation.InvoiceList(map[string]any{"type": "gift"})
	assert.Contains(t, fieldsOf(t, err), "type")
}

func TestID(t *testing.T) {
	_, err := validation.ID(map[string]any{"id": "no-uuid"})
	assert.Contains(t, fieldsOf(t, err), "id")

	id, err := validation.ID(map[string]any{"id": " 3f1c2d9e-8a7b-4c6d-9e0f-1a2b3c4d5e6f "})
	require.NoError(t, err)
	assert.Equal(t, "3f1c2d9e-8a7b-4c6d-9e0f-1a2b3c4d5e6f", id)
}

func TestCuerpoMalformadoSeReportaAlValidar(t *testing.T) {
	_, err := validation.ID(map[string]any{validation.MalformedBody: true, "id": uuid.NewString()})
	assert.Equal(t, map[string]string{"body": "debe ser un objeto"}, fieldsOf(t, err))
}
