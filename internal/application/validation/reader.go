package validation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	msgString  = "debe ser texto"
	msgNumber  = "debe ser un número"
	msgInteger = "debe ser un número entero"
	msgFinite  = "debe ser un número finito"
	msgBool    = "debe ser verdadero o falso"
	msgObject  = "debe ser un objeto"
	msgArray   = "debe ser una lista"
	msgDate    = "debe ser una fecha (RFC3339 o YYYY-MM-DD)"
)

// MalformedBody clave que la capa HTTP agrega al mapa crudo cuando el cuerpo no
// es un objeto JSON. Se reporta como error del campo "body" al validar, después
// de autorizar.
const MalformedBody = "\x00body"

// reader lee campos de un objeto JSON crudo acumulando errores por ruta.
// Los métodos devuelven nil cuando el campo falta, es null o es inválido.
type reader struct {
	raw    map[string]any
	prefix string
	errs   FieldErrors
}

func newReader(raw map[string]any, errs FieldErrors) *reader {
	if raw == nil {
		raw = map[string]any{}
	}
	if _, bad := raw[MalformedBody]; bad {
		errs.Add("body", msgObject)
	}
	return &reader{raw: raw, errs: errs}
}

func (r *reader) path(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + "." + key
}

func (r *reader) nested(key string, raw map[string]any) *reader {
	return &reader{raw: raw, prefix: r.path(key), errs: r.errs}
}

func (r *reader) value(key string) (any, bool) {
	v, ok := r.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *reader) str(key string) *string {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	s, isStr := v.(string)
	if !isStr {
		r.errs.Add(r.path(key), msgString)
		return nil
	}
	s = strings.TrimSpace(s)
	return &s
}

func (r *reader) integer(key string) *int64 {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	f, isNum := CoerceNumber(v)
	if !isNum {
		r.errs.Add(r.path(key), msgNumber)
		return nil
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		r.errs.Add(r.path(key), msgInteger)
		return nil
	}
	n := int64(f)
	return &n
}

func (r *reader) dec(key string) *decimal.Decimal {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr {
		s = strings.TrimSpace(s)
		if decimalLiteral.MatchString(s) {
			d, err := decimal.NewFromString(s)
			if err == nil {
				return &d
			}
		}
	}
	f, isNum := CoerceNumber(v)
	if !isNum {
		r.errs.Add(r.path(key), msgNumber)
		return nil
	}
	if math.IsInf(f, 0) {
		r.errs.Add(r.path(key), msgFinite)
		return nil
	}
	d := decimal.NewFromFloat(f)
	return &d
}

func (r *reader) boolean(key string) *bool {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	b, isBool := CoerceBool(v, DefaultBoolOptions)
	if !isBool {
		r.errs.Add(r.path(key), msgBool)
		return nil
	}
	return &b
}

func (r *reader) object(key string) map[string]any {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	m, isObj := v.(map[string]any)
	if !isObj {
		r.errs.Add(r.path(key), msgObject)
		return nil
	}
	return m
}

func (r *reader) array(key string) []any {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	a, isArr := v.([]any)
	if !isArr {
		r.errs.Add(r.path(key), msgArray)
		return nil
	}
	return a
}

func (r *reader) strs(key string) []string {
	arr := r.array(key)
	if arr == nil {
		return nil
	}
	out := make([]string, 0, len(arr))
	for i, v := range arr {
		s, isStr := v.(string)
		if !isStr {
			r.errs.Add(r.path(key)+"."+strconv.Itoa(i), msgString)
			continue
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func (r *reader) date(key string) *time.Time {
	s := r.str(key)
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	r.errs.Add(r.path(key), msgDate)
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
