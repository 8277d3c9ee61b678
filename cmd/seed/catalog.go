package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogRow una línea del catálogo: categoria;nombre;precio;stock
type catalogRow struct {
	Category string
	Name     string
	Price    decimal.Decimal
	Stock    int64
}

// latin1Reader decodifica un export ISO-8859-1 (Excel en español) a UTF-8.
func latin1Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
}

// parseCatalog lee el CSV separado por ';'. La primera fila es el encabezado.
// Los precios aceptan separador de miles "." y decimales ",".
func parseCatalog(r io.Reader) ([]catalogRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 4

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("catálogo vacío")
	}
	out := make([]catalogRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		cat, name := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if cat == "" || name == "" {
			return nil, fmt.Errorf("línea %d: categoría y nombre son obligatorios", line)
		}
		price, err := parsePrice(rec[2])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio %q: %w", line, rec[2], err)
		}
		stock, err := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("línea %d: stock inválido %q", line, rec[3])
		}
		out = append(out, catalogRow{Category: cat, Name: name, Price: price, Stock: stock})
	}
	return out, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negativo")
	}
	return d, nil
}
