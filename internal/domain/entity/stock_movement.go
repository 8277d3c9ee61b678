package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// StockMovement registro de un ajuste de stock de un producto.
type StockMovement struct {
	ID         string
	BranchID   string
	ProductID  string
	StaffID    string // quién hizo el ajuste (vacío si no se resolvió)
	Type       string // in, out
	Delta      int64  // positivo entrada, negativo salida
	StockAfter int64
	Reason     string
	CreatedAt  time.Time
}

// MovementTypeFor tipo según el signo del delta.
func MovementTypeFor(delta int64) string {
	if delta < 0 {
		return MovementTypeOut
	}
	return MovementTypeIn
}
