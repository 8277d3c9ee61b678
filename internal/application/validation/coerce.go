package validation

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// CoerceNumber interpreta v con la semántica de Number() de JavaScript:
// nil → 0, bool → 1/0, cadena vacía → 0, prefijos 0x/0o/0b, "Infinity".
// ok=false cuando el resultado sería NaN.
func CoerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		return parseNumber(n.String())
	case string:
		return parseNumber(n)
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(u), true
		}
	}
	if !decimalLiteral.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// BoolOptions configura StringToBool.
// DictOnly: una palabra fuera del diccionario es false; si no, cualquier cadena no vacía es true.
type BoolOptions struct {
	DictOnly   bool
	TrueWords  []string
	FalseWords []string
}

// DefaultBoolOptions diccionario bilingüe (portugués/español/inglés), solo diccionario.
var DefaultBoolOptions = BoolOptions{
	DictOnly:   true,
	TrueWords:  []string{"sim", "s", "yes", "y", "true", "1", "on", "verdadeiro", "si", "v"},
	FalseWords: []string{"nao", "n", "no", "false", "0", "off", "falso", "f"},
}

// StringToBool interpreta texto libre como booleano.
// Normaliza: recorta, minúsculas y quita diacríticos ("  Não " → "nao").
func StringToBool(s string, opts BoolOptions) bool {
	word := foldWord(s)
	for _, w := range opts.TrueWords {
		if foldWord(w) == word {
			return true
		}
	}
	for _, w := range opts.FalseWords {
		if foldWord(w) == word {
			return false
		}
	}
	if opts.DictOnly {
		return false
	}
	return word != ""
}

// CoerceBool acepta bool, números (≠ 0) y texto. ok=false para otros tipos.
func CoerceBool(v any, opts BoolOptions) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		return StringToBool(b, opts), true
	case nil:
		return false, true
	}
	if f, ok := CoerceNumber(v); ok {
		return f != 0, true
	}
	return false, false
}

func foldWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
