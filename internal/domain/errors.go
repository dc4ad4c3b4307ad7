package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// ErrorKind clasifica los fallos de una orden de salida que se reportan al cliente.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION"
	KindNoSuchEntity      ErrorKind = "NO_SUCH_ENTITY"
	KindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
)

// MessageSeparator une los mensajes de un error agregado.
const MessageSeparator = "; "

// OrderError error de una orden de salida. Messages conserva el orden de las líneas de la orden.
// Unwrap devuelve el sentinel del tipo, así los handlers pueden usar errors.Is.
type OrderError struct {
	Kind     ErrorKind
	Messages []string
}

// NewValidationError error de entrada malformada (primera ofensa).
func NewValidationError(msg string) *OrderError {
	return &OrderError{Kind: KindValidation, Messages: []string{msg}}
}

// NewNoSuchEntityError agrega todos los GTIN desconocidos de la orden.
func NewNoSuchEntityError(msgs []string) *OrderError {
	return &OrderError{Kind: KindNoSuchEntity, Messages: msgs}
}

// NewInsufficientStockError agrega todas las líneas sin stock suficiente.
func NewInsufficientStockError(msgs []string) *OrderError {
	return &OrderError{Kind: KindInsufficientStock, Messages: msgs}
}

func (e *OrderError) Error() string {
	return strings.Join(e.Messages, MessageSeparator)
}

func (e *OrderError) Unwrap() error {
	switch e.Kind {
	case KindValidation:
		return ErrInvalidInput
	case KindNoSuchEntity:
		return ErrNotFound
	case KindInsufficientStock:
		return ErrInsufficientStock
	}
	return nil
}

// AsOrderError extrae un *OrderError de la cadena de err.
func AsOrderError(err error) (*OrderError, bool) {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}
