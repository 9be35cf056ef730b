package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
)

var _ repository.GoodRepository = (*GoodRepo)(nil)

// GoodRepo lectura de productos sobre PostgreSQL (usable con pool o tx).
type GoodRepo struct {
	q Querier
}

// NewGoodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodRepository(q Querier) *GoodRepo {
	return &GoodRepo{q: q}
}

// ListSellable devuelve los productos activos y vendibles para el catálogo del POS.
func (r *GoodRepo) ListSellable(ctx context.Context) ([]*entity.Good, error) {
	const query = `
		SELECT id, name, unit_price, current_stock, min_stock, is_sellable, active
		FROM goods
		WHERE active = TRUE AND is_sellable = TRUE
		ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sellable goods: %w", err)
	}
	defer rows.Close()

	var list []*entity.Good
	for rows.Next() {
		var g entity.Good
		if err := rows.Scan(&g.ID, &g.Name, &g.UnitPrice, &g.CurrentStock, &g.MinStock, &g.IsSellable, &g.Active); err != nil {
			return nil, fmt.Errorf("scan good: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// GetByID obtiene un producto por ID. domain.ErrNotFound si no existe.
func (r *GoodRepo) GetByID(ctx context.Context, id string) (*entity.Good, error) {
	const query = `
		SELECT id, name, unit_price, current_stock, min_stock, is_sellable, active
		FROM goods WHERE id = $1`
	var g entity.Good
	err := r.q.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.UnitPrice, &g.CurrentStock, &g.MinStock, &g.IsSellable, &g.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get good: %w", err)
	}
	return &g, nil
}
