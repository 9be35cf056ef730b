package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/asadero-pos/internal/application/catalog"
	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
)

type fakeGoodRepo struct {
	goods []*entity.Good
	err   error
}

func (f *fakeGoodRepo) ListSellable(context.Context) ([]*entity.Good, error) {
	return f.goods, f.err
}

func (f *fakeGoodRepo) GetByID(context.Context, string) (*entity.Good, error) {
	return nil, errors.New("no usado")
}

func TestSnapshot_RefreshCargaElCatalogo(t *testing.T) {
	repo := &fakeGoodRepo{goods: []*entity.Good{
		{ID: "g-pollo", Name: "Pollo Asado", UnitPrice: decimal.RequireFromString("18.50")},
		{ID: "g-tortilla", Name: "Tortillas", UnitPrice: decimal.RequireFromString("0.50")},
	}}
	snap := catalog.NewSnapshot(repo)

	require.NoError(t, snap.Refresh(context.Background()))

	goods := snap.Goods()
	require.Len(t, goods, 2)

	g, err := snap.GetByID("g-pollo")
	require.NoError(t, err)
	assert.Equal(t, "Pollo Asado", g.Name)

	_, err = snap.GetByID("g-inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshot_RefreshFallidoConservaElAnterior(t *testing.T) {
	repo := &fakeGoodRepo{goods: []*entity.Good{
		{ID: "g-pollo", Name: "Pollo Asado"},
	}}
	snap := catalog.NewSnapshot(repo)
	require.NoError(t, snap.Refresh(context.Background()))

	repo.err = errors.New("timeout")
	err := snap.Refresh(context.Background())

	var backendErr *domain.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "goods.list", backendErr.Op)
	assert.Len(t, snap.Goods(), 1, "el snapshot anterior se conserva ante un refresh fallido")
}

func TestSnapshot_GoodsDevuelveCopia(t *testing.T) {
	repo := &fakeGoodRepo{goods: []*entity.Good{{ID: "g-pollo", Name: "Pollo Asado"}}}
	snap := catalog.NewSnapshot(repo)
	require.NoError(t, snap.Refresh(context.Background()))

	goods := snap.Goods()
	goods[0].Name = "mutado"

	fresh, err := snap.GetByID("g-pollo")
	require.NoError(t, err)
	assert.Equal(t, "Pollo Asado", fresh.Name, "mutar la copia no debe afectar el snapshot")
}
