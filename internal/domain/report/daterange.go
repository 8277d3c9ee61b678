package report

import (
	"strings"
	"time"
)

// DefaultRangeDays ventana por defecto cuando no hay fechas o son inválidas.
const DefaultRangeDays = 30

// Range rango de fechas ya validado. Siempre Start <= End.
// Invalid indica que alguna fecha no se pudo interpretar y se usó el rango por defecto.
type Range struct {
	Start   time.Time
	End     time.Time
	Invalid bool
}

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type parsedDate struct {
	t        time.Time
	dateOnly bool
}

// NormalizeRange interpreta start/end y devuelve un rango utilizable, nunca un error:
//  1. vacío → extremo por defecto (últimos defaultDays días hasta now);
//  2. fecha que no se puede interpretar → rango por defecto completo con Invalid=true;
//  3. start > end → se intercambian;
//  4. fechas futuras → se recortan a now.
//
// Un end sin hora cubre el día completo.
func NormalizeRange(startStr, endStr string, now time.Time, loc *time.Location, defaultDays int) Range {
	if loc == nil {
		loc = time.UTC
	}
	if defaultDays <= 0 {
		defaultDays = DefaultRangeDays
	}
	def := Range{Start: now.AddDate(0, 0, -defaultDays), End: now}

	start, okStart := parseDate(startStr, loc)
	end, okEnd := parseDate(endStr, loc)
	if !okStart || !okEnd {
		def.Invalid = true
		return def
	}
	if start == nil {
		start = &parsedDate{t: def.Start}
	}
	if end == nil {
		end = &parsedDate{t: def.End}
	}

	// se compara contra el end ya extendido: 10:00 → mismo día sin hora no es un rango invertido
	if start.t.After(end.until()) {
		start, end = end, start
	}

	r := Range{Start: start.t, End: end.until()}
	if r.Start.After(now) {
		r.Start = now
	}
	if r.End.After(now) {
		r.End = now
	}
	return r
}

// until último instante cubierto: una fecha sin hora llega hasta el fin del día.
func (d *parsedDate) until() time.Time {
	if d.dateOnly {
		return d.t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return d.t
}

// parseDate devuelve (nil, true) para cadena vacía y (nil, false) si no se puede interpretar.
func parseDate(s string, loc *time.Location) (*parsedDate, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return &parsedDate{t: t, dateOnly: layout == "2006-01-02"}, true
		}
	}
	return nil, false
}
