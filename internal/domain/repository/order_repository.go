package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
)

// Campos de ordenamiento permitidos para el listado de ventas.
const (
	SortByDate   = "date"
	SortByTotal  = "total"
	SortByStatus = "status"
)

// TransactionFilters filtros del listado de ventas recientes.
// Todos los filtros definidos se combinan con AND.
type TransactionFilters struct {
	StartDate *time.Time // inclusive
	EndDate   *time.Time // inclusive
	Status    string     // pending|completed|cancelled; vacío = todos
	MinTotal  *decimal.Decimal
	MaxTotal  *decimal.Decimal
	GoodID    string // la venta contiene el producto en alguna línea
	SortBy    string // date|total|status (default date)
	SortDesc  bool
}

// OrderWithLines venta con sus líneas, para el listado de transacciones.
type OrderWithLines struct {
	Header entity.OrderHeader
	Lines  []entity.OrderLine
}

// OrderRepository define el puerto de persistencia para ventas.
//
// CreateHeader y CreateLines son deliberadamente operaciones separadas: el
// protocolo de cobro reconoce el fallo entre ambas como estado parcial
// (cabecera huérfana) y lo expone, no lo corrige.
type OrderRepository interface {
	// CreateHeader persiste la cabecera y devuelve el ID generado.
	CreateHeader(ctx context.Context, header *entity.OrderHeader) (string, error)
	// CreateLines persiste el lote completo de líneas de una venta.
	CreateLines(ctx context.Context, lines []*entity.OrderLine) error
	// ListWithLines devuelve ventas paginadas con sus líneas según filtros.
	ListWithLines(ctx context.Context, filters TransactionFilters, limit, offset int) ([]*OrderWithLines, error)
}
