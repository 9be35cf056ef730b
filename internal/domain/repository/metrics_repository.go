package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
)

// MetricsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only y reentrantes (consultas concurrentes
// permitidas, sin estado mutable compartido).
//
// Las ventanas [start, end] son fechas calendario inclusivas.
type MetricsRepository interface {
	// SalesTotal suma los totales de ventas completadas en la ventana.
	// Devuelve cero si no hay ventas (COALESCE en la consulta).
	SalesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// ProducedTotal suma las cantidades producidas de un producto en la ventana.
	ProducedTotal(ctx context.Context, goodID string, start, end time.Time) (decimal.Decimal, error)

	// LowStock devuelve los productos con stock actual estrictamente menor al
	// mínimo. El orden no está especificado; el llamador puede ordenar.
	LowStock(ctx context.Context) ([]entity.LowStockAlert, error)

	// ProductionEfficiency devuelve, por producto con al menos una entrada en
	// la ventana, las sumas de producido y merma. La eficiencia se calcula en
	// la capa de aplicación (protección de división por cero incluida).
	ProductionEfficiency(ctx context.Context, start, end time.Time) ([]entity.EfficiencyRecord, error)
}
