package repository

import (
	"context"

	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
)

// GoodRepository define el puerto de lectura para productos (DIP).
// El núcleo nunca escribe en goods; el catálogo es propiedad del almacén externo.
type GoodRepository interface {
	// ListSellable devuelve los productos activos y vendibles (catálogo del POS).
	ListSellable(ctx context.Context) ([]*entity.Good, error)
	GetByID(ctx context.Context, id string) (*entity.Good, error)
}
