package repository

import (
	"context"

	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
)

// ProductionRepository define el puerto de escritura del libro de producción.
// Solo inserta: el libro es append-only, sin update ni delete.
type ProductionRepository interface {
	Create(ctx context.Context, entry *entity.ProductionEntry) error
}
