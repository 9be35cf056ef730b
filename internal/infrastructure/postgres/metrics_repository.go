package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
)

var _ repository.MetricsRepository = (*MetricsRepo)(nil)

// MetricsRepo consultas de solo lectura para el dashboard.
// Cada consulta escanea a un tipo de fila explícito; nada de filas dinámicas.
type MetricsRepo struct {
	q Querier
}

// NewMetricsRepository construye el adaptador.
func NewMetricsRepository(q Querier) *MetricsRepo {
	return &MetricsRepo{q: q}
}

// SalesTotal suma los totales de ventas completadas en la ventana.
// COALESCE devuelve cero si el período no tiene ventas.
func (r *MetricsRepo) SalesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 'completed'
		  AND date::date BETWEEN $1 AND $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("metrics.SalesTotal: %w", err)
	}
	return total, nil
}

// ProducedTotal suma las cantidades producidas de un producto en la ventana.
func (r *MetricsRepo) ProducedTotal(ctx context.Context, goodID string, start, end time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(quantity_produced), 0)
		FROM production_entries
		WHERE good_id = $1
		  AND date BETWEEN $2 AND $3`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, goodID, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("metrics.ProducedTotal: %w", err)
	}
	return total, nil
}

// LowStock devuelve los productos activos con stock actual estrictamente
// menor al mínimo. La igualdad no alerta.
func (r *MetricsRepo) LowStock(ctx context.Context) ([]entity.LowStockAlert, error) {
	const query = `
		SELECT id, name, current_stock, min_stock
		FROM goods
		WHERE active = TRUE
		  AND current_stock < min_stock`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("metrics.LowStock: %w", err)
	}
	defer rows.Close()

	var alerts []entity.LowStockAlert
	for rows.Next() {
		var a entity.LowStockAlert
		if err := rows.Scan(&a.GoodID, &a.Name, &a.CurrentStock, &a.MinStock); err != nil {
			return nil, fmt.Errorf("metrics.LowStock scan: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// ProductionEfficiency suma producido y merma por producto con al menos una
// entrada en la ventana. El porcentaje lo calcula la capa de aplicación.
func (r *MetricsRepo) ProductionEfficiency(ctx context.Context, start, end time.Time) ([]entity.EfficiencyRecord, error) {
	const query = `
		SELECT p.good_id,
		       g.name,
		       COALESCE(SUM(p.quantity_produced), 0) AS total_produced,
		       COALESCE(SUM(p.quantity_wasted), 0)   AS total_wasted
		FROM production_entries p
		JOIN goods g ON g.id = p.good_id
		WHERE p.date BETWEEN $1 AND $2
		GROUP BY p.good_id, g.name
		ORDER BY g.name`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("metrics.ProductionEfficiency: %w", err)
	}
	defer rows.Close()

	var records []entity.EfficiencyRecord
	for rows.Next() {
		var rec entity.EfficiencyRecord
		if err := rows.Scan(&rec.GoodID, &rec.Name, &rec.Produced, &rec.Wasted); err != nil {
			return nil, fmt.Errorf("metrics.ProductionEfficiency scan: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
