// Package codec serializa los ítems de factura para los gateways.
// Postgres los guarda en JSONB y SQLite como texto JSON; el formato es el mismo:
// [{"product_id": "...", "quantity": 2, "price": "5.00"}].
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// EncodeItems serializa los ítems; una lista nil se guarda como [].
func EncodeItems(items entity.InvoiceItems) ([]byte, error) {
	if items == nil {
		items = entity.InvoiceItems{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode invoice items: %w", err)
	}
	return b, nil
}

// DecodeItems deserializa los ítems almacenados. ok=false si el contenido no es
// una lista de ítems válida (filas antiguas o corruptas); la factura se marca
// como ItemsUnreadable en lugar de fallar la lectura.
func DecodeItems(raw []byte) (entity.InvoiceItems, bool) {
	if len(raw) == 0 {
		return entity.InvoiceItems{}, true
	}
	var items entity.InvoiceItems
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	if items == nil {
		items = entity.InvoiceItems{}
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, false
		}
	}
	return items, true
}

// ApplyItems decodifica raw sobre la factura, marcando ItemsUnreadable si corresponde.
func ApplyItems(inv *entity.Invoice, raw []byte) {
	items, ok := DecodeItems(raw)
	inv.Items = items
	inv.ItemsUnreadable = !ok
}
