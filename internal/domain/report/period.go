// Package report contiene el motor de agregación de reportes: normalización del
// rango de fechas, claves de bucket por período y series temporales de ventas,
// compras y clientes. Todas las funciones son puras: mismo input, mismo output.
package report

import (
	"strings"
	"time"
)

// Period granularidad del bucket.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod normaliza el período; vacío equivale a día. ok=false si no se reconoce.
func ParsePeriod(s string) (Period, bool) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case "", PeriodDay:
		return PeriodDay, true
	case PeriodWeek:
		return PeriodWeek, true
	case PeriodMonth:
		return PeriodMonth, true
	}
	return PeriodDay, false
}

// BucketKey clave del bucket que contiene t:
//   - day:   YYYY-MM-DD
//   - week:  YYYY-MM-DD del domingo que abre la semana
//   - month: YYYY-MM
//
// Las claves se ordenan lexicográficamente en orden cronológico.
func BucketKey(t time.Time, p Period, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	d := t.In(loc)
	switch p {
	case PeriodWeek:
		sunday := time.Date(d.Year(), d.Month(), d.Day()-int(d.Weekday()), 0, 0, 0, 0, loc)
		return sunday.Format("2006-01-02")
	case PeriodMonth:
		return d.Format("2006-01")
	default:
		return d.Format("2006-01-02")
	}
}
