// Package catalog mantiene el snapshot en memoria del catálogo vendible del
// POS: lista de solo lectura refrescada bajo demanda desde el almacén externo.
package catalog

import (
	"context"
	"sync"

	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
)

// Snapshot copia en memoria de los productos vendibles.
// Las lecturas concurrentes son seguras; solo Refresh muta, bajo lock de escritura.
type Snapshot struct {
	goods repository.GoodRepository

	mu    sync.RWMutex
	items []entity.Good
	byID  map[string]entity.Good
}

// NewSnapshot construye el snapshot vacío. Llamar Refresh antes de vender.
func NewSnapshot(goods repository.GoodRepository) *Snapshot {
	return &Snapshot{goods: goods, byID: make(map[string]entity.Good)}
}

// Refresh recarga el catálogo desde el almacén: solo productos activos y
// vendibles. En caso de error el snapshot anterior se conserva.
func (s *Snapshot) Refresh(ctx context.Context) error {
	list, err := s.goods.ListSellable(ctx)
	if err != nil {
		return &domain.BackendError{Op: "goods.list", Err: err}
	}

	items := make([]entity.Good, 0, len(list))
	byID := make(map[string]entity.Good, len(list))
	for _, g := range list {
		items = append(items, *g)
		byID[g.ID] = *g
	}

	s.mu.Lock()
	s.items = items
	s.byID = byID
	s.mu.Unlock()
	return nil
}

// Goods devuelve una copia defensiva del catálogo actual.
func (s *Snapshot) Goods() []entity.Good {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Good, len(s.items))
	copy(out, s.items)
	return out
}

// GetByID busca un producto en el snapshot. ErrNotFound si no está.
func (s *Snapshot) GetByID(id string) (entity.Good, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.byID[id]
	if !ok {
		return entity.Good{}, domain.ErrNotFound
	}
	return g, nil
}
