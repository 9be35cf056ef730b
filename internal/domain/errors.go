package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("cantidad inválida: debe ser al menos 1")
	ErrLineNotFound      = errors.New("el carrito no tiene línea para ese producto")
	ErrEmptyCart         = errors.New("el carrito está vacío")
	ErrCartTotalMismatch = errors.New("el total del carrito no coincide con la suma de sus líneas")
	ErrCommitInProgress  = errors.New("ya hay un cobro en curso para este carrito")
	ErrSessionNotFound   = errors.New("sesión de venta no encontrada")
	ErrSessionFailed     = errors.New("la sesión terminó en fallo de cobro; requiere conciliación")
)

// BackendError indica que una llamada al almacén externo falló.
// Op identifica la operación que falló (ej. "orders.insert"); no hay reintento automático.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("almacén externo: %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// PartialCommitError indica que la cabecera de la venta se persistió pero las
// líneas no. La cabecera queda huérfana en la base; el error transporta su ID
// para que un operador pueda conciliarla o eliminarla. Esta capa no compensa.
type PartialCommitError struct {
	OrderID string
	Err     error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("cobro parcial: cabecera %s sin líneas: %v", e.OrderID, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }
