package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInvalidState = errors.New("estado inválido para la operación")
	ErrStorage      = errors.New("fallo de persistencia")
	ErrUnauthorized = errors.New("no autorizado")
)

// ValidationError describe un campo rechazado. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Campo   string
	Mensaje string
}

func (e *ValidationError) Error() string {
	if e.Campo == "" {
		return e.Mensaje
	}
	return e.Campo + ": " + e.Mensaje
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(campo, format string, args ...any) error {
	return &ValidationError{Campo: campo, Mensaje: fmt.Sprintf(format, args...)}
}

// FilaError error de validación o escritura asociado a una fila (1-based, la fila 1 es el encabezado).
type FilaError struct {
	Fila  int    `json:"fila"`
	Error string `json:"error"`
}

// StorageError envuelve un fallo del driver para que errors.Is(err, ErrStorage) funcione.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// IsConflict informa si err corresponde a la categoría Conflict (incluye duplicados).
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrDuplicate)
}
