package domain

import (
	"errors"
	"fmt"
)

// Códigos estables expuestos al cliente.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// Causas legibles por máquina; el cliente las traduce a mensajes localizados.
const (
	CauseNotAllowed              = "NOT_ALLOWED"
	CauseUnauthenticated         = "UNAUTHENTICATED"
	CauseBranchNotFound          = "BRANCH_NOT_FOUND"
	CauseStaffNotFound           = "STAFF_NOT_FOUND"
	CauseCustomerNotFound        = "CUSTOMER_NOT_FOUND"
	CauseProductNotFound         = "PRODUCT_NOT_FOUND"
	CauseCategoryNotFound        = "CATEGORY_NOT_FOUND"
	CauseInvoiceNotFound         = "INVOICE_NOT_FOUND"
	CauseAccountAlreadyExists    = "ACCOUNT_ALREADY_EXISTS"
	CauseDuplicate               = "DUPLICATE"
	CauseBranchNotEmpty          = "BRANCH_NOT_EMPTY"
	CauseProductQuantityMismatch = "PRODUCT_QUANTITY_MISMATCH"
	CauseInvalidTransition       = "INVALID_STATUS_TRANSITION"
	CauseInvoiceLocked           = "INVOICE_LOCKED"
	CauseInsufficientStock       = "INSUFFICIENT_STOCK"
	CauseValidation              = "VALIDATION_ERROR"
)

// Error es el error de dominio tipado {code, cause, message}.
// Fields solo se llena en errores de validación (ruta del campo → mensaje).
type Error struct {
	Code    string
	Cause   string
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Cause, e.Message)
}

// Is compara por causa, de modo que errors.Is(err, domain.ErrBranchNotFound)
// funciona aunque el mensaje se haya personalizado con WithMessage.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Cause == t.Cause
}

// WithMessage devuelve una copia con un mensaje más específico.
func (e *Error) WithMessage(format string, args ...any) *Error {
	c := *e
	c.Message = fmt.Sprintf(format, args...)
	return &c
}

// NewError construye un error de dominio.
func NewError(code, cause, message string) *Error {
	return &Error{Code: code, Cause: cause, Message: message}
}

// Errores de dominio (sin dependencias externas).
var (
	ErrNotAllowed              = NewError(CodeUnauthorized, CauseNotAllowed, "acción no permitida para el rol actual")
	ErrUnauthenticated         = NewError(CodeUnauthorized, CauseUnauthenticated, "autenticación requerida")
	ErrBranchNotFound          = NewError(CodeNotFound, CauseBranchNotFound, "sucursal no encontrada")
	ErrStaffNotFound           = NewError(CodeNotFound, CauseStaffNotFound, "empleado no encontrado")
	ErrCustomerNotFound        = NewError(CodeNotFound, CauseCustomerNotFound, "cliente no encontrado")
	ErrProductNotFound         = NewError(CodeNotFound, CauseProductNotFound, "producto no encontrado")
	ErrCategoryNotFound        = NewError(CodeNotFound, CauseCategoryNotFound, "categoría no encontrada")
	ErrInvoiceNotFound         = NewError(CodeNotFound, CauseInvoiceNotFound, "factura no encontrada")
	ErrAccountAlreadyExists    = NewError(CodeConflict, CauseAccountAlreadyExists, "ya existe una cuenta con ese email")
	ErrDuplicate               = NewError(CodeConflict, CauseDuplicate, "recurso duplicado")
	ErrBranchNotEmpty          = NewError(CodeConflict, CauseBranchNotEmpty, "la sucursal todavía tiene empleados activos")
	ErrProductQuantityMismatch = NewError(CodeBadRequest, CauseProductQuantityMismatch, "los ítems referencian productos inexistentes o de otra sucursal")
	ErrInvalidTransition       = NewError(CodeBadRequest, CauseInvalidTransition, "transición de estado inválida")
	ErrInvoiceLocked           = NewError(CodeConflict, CauseInvoiceLocked, "la factura está cerrada y no admite cambios")
	ErrInsufficientStock       = NewError(CodeConflict, CauseInsufficientStock, "stock insuficiente")
	ErrValidation              = NewError(CodeBadRequest, CauseValidation, "datos inválidos")
)

// ValidationError construye un error BAD_REQUEST con el mapa de campos inválidos.
func ValidationError(fields map[string]string) *Error {
	c := *ErrValidation
	c.Fields = fields
	return &c
}

// AsError extrae el *Error de una cadena de errores, si existe.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
