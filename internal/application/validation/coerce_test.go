package validation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/application/validation"
)

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{true, 1},
		{false, 0},
		{"", 0},
		{"   ", 0},
		{"  42 ", 42},
		{"-3.25", -3.25},
		{"+7", 7},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"0x1A", 26},
		{"0b101", 5},
		{"0o17", 15},
		{float64(2.5), 2.5},
		{int64(9), 9},
	}
	for _, tc := range cases {
		got, ok := validation.CoerceNumber(tc.in)
		assert.True(t, ok, "%#v debe ser numérico", tc.in)
		assert.Equal(t, tc.want, got, "%#v", tc.in)
	}
}

func TestCoerceNumber_Infinito(t *testing.T) {
	got, ok := validation.CoerceNumber("Infinity")
	assert.True(t, ok)
	assert.True(t, math.IsInf(got, 1))

	got, ok = validation.CoerceNumber("-Infinity")
	assert.True(t, ok)
	assert.True(t, math.IsInf(got, -1))
}

func TestCoerceNumber_Rechazados(t *testing.T) {
	for _, in := range []any{"abc", "12px", "infinity", "1_000", "-0x10", "0xZZ", math.NaN(), map[string]any{}, []any{1}} {
		_, ok := validation.CoerceNumber(in)
		assert.False(t, ok, "%#v no debe ser numérico", in)
	}
}

func TestStringToBool_Diccionario(t *testing.T) {
	cases := map[string]bool{
		"SIM":        true,
		"  Não  ":    false,
		"TRUE":       true,
		"0":          false,
		"Sí":         true,
		"verdadeiro": true,
		"FALSO":      false,
		"off":        false,
		"y":          true,
	}
	for in, want := range cases {
		assert.Equal(t, want, validation.StringToBool(in, validation.DefaultBoolOptions), "%q", in)
	}
}

func TestStringToBool_FueraDelDiccionario(t *testing.T) {
	assert.False(t, validation.StringToBool("talvez", validation.DefaultBoolOptions))
	assert.False(t, validation.StringToBool("", validation.DefaultBoolOptions))

	loose := validation.DefaultBoolOptions
	loose.DictOnly = false
	assert.True(t, validation.StringToBool("talvez", loose))
	assert.False(t, validation.StringToBool("não", loose), "el diccionario sigue aplicando")
	assert.False(t, validation.StringToBool("   ", loose))
}

func TestStringToBool_DiccionarioPropio(t *testing.T) {
	opts := validation.BoolOptions{DictOnly: true, TrueWords: []string{"Activo"}, FalseWords: []string{"Inactivo"}}
	assert.True(t, validation.StringToBool("ACTIVO", opts))
	assert.False(t, validation.StringToBool("inactivo", opts))
	assert.False(t, validation.StringToBool("sim", opts))
}

func TestCoerceBool(t *testing.T) {
	b, ok := validation.CoerceBool(true, validation.DefaultBoolOptions)
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = validation.CoerceBool(float64(0), validation.DefaultBoolOptions)
	assert.True(t, ok)
	assert.False(t, b)

	b, ok = validation.CoerceBool(float64(2), validation.DefaultBoolOptions)
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = validation.CoerceBool("Não", validation.DefaultBoolOptions)
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = validation.CoerceBool([]any{}, validation.DefaultBoolOptions)
	assert.False(t, ok)
}
