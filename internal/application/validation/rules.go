package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// checkStruct aplica las reglas `validate` del DTO. Las rutas que ya fallaron
// al decodificar conservan su mensaje original.
func (fe FieldErrors) checkStruct(in any) {
	fe.collect("", validate.Struct(in))
}

// checkVar aplica una regla suelta sobre un valor ubicado en path.
func (fe FieldErrors) checkVar(path string, value any, tag string) {
	fe.collect(path, validate.Var(value, tag))
}

func (fe FieldErrors) collect(path string, err error) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add(path, err.Error())
		return
	}
	for _, e := range verrs {
		p := path
		if p == "" {
			p = fieldPath(e.Namespace())
		}
		fe.Add(p, message(e))
	}
}

// fieldPath "CreateInvoiceRequest.items[0].quantity" → "items.0.quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "debe ser un email válido"
	case "url":
		return "debe ser una URL válida"
	case "uuid":
		return "debe ser un UUID válido"
	case "alphanum":
		return "solo admite letras y números"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "len":
		return lengthMessage(e, "exactamente")
	case "min":
		return lengthMessage(e, "al menos")
	case "max":
		return lengthMessage(e, "como máximo")
	case "gt":
		return "debe ser mayor que " + e.Param()
	case "gte":
		return "debe ser mayor o igual que " + e.Param()
	case "lte":
		return "debe ser menor o igual que " + e.Param()
	case "ne":
		return "no puede ser " + e.Param()
	}
	return fmt.Sprintf("no cumple la regla %q", e.Tag())
}

func lengthMessage(e validator.FieldError, qualifier string) string {
	switch e.Kind() {
	case reflect.String:
		return fmt.Sprintf("debe tener %s %s caracteres", qualifier, e.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("debe tener %s %s elementos", qualifier, e.Param())
	}
	return fmt.Sprintf("debe ser %s %s", qualifier, e.Param())
}
