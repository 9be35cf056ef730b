package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderHeader representa la cabecera de una venta persistida.
// Solo el protocolo de cobro la crea; una vez completed es inmutable salvo
// transiciones de estado.
type OrderHeader struct {
	ID            string
	Total         decimal.Decimal
	PaymentMethod string
	Status        string
	Date          time.Time
}
