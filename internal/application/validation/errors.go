// Package validation convierte cuerpos JSON crudos en entradas tipadas.
// Cada esquema decodifica con coerción (Number(), stringToBool) y luego aplica
// las reglas de validator/v10 declaradas en los DTO. Los errores se acumulan por
// ruta con puntos (items.0.quantity, attributes.zip).
package validation

import "github.com/jhoicas/backoffice-api/internal/domain"

// FieldErrors ruta del campo → mensaje.
type FieldErrors map[string]string

// Add registra el error; el primero por ruta gana.
func (fe FieldErrors) Add(path, msg string) {
	if _, ok := fe[path]; !ok {
		fe[path] = msg
	}
}

// Has indica si la ruta ya tiene error.
func (fe FieldErrors) Has(path string) bool {
	_, ok := fe[path]
	return ok
}

// Err devuelve un domain.Error BAD_REQUEST con los campos, o nil si no hay errores.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return domain.ValidationError(fe)
}
