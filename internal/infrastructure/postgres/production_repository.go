package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo escritura del libro de producción sobre PostgreSQL.
// Solo inserta: la tabla no tiene unicidad por (fecha, producto) y las
// entradas duplicadas o correctivas se acumulan por diseño.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// Create agrega una entrada al libro de producción.
func (r *ProductionRepo) Create(ctx context.Context, entry *entity.ProductionEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO production_entries (id, date, good_id, quantity_produced, quantity_wasted, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.Date, entry.GoodID, entry.Produced, entry.Wasted, nullIfEmpty(entry.Notes),
	)
	if err != nil {
		return fmt.Errorf("insert production entry: %w", err)
	}
	return nil
}
