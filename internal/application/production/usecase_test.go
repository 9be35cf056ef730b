package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/asadero-pos/internal/application/dto"
	"github.com/tu-usuario/asadero-pos/internal/application/metrics"
	"github.com/tu-usuario/asadero-pos/internal/application/production"
	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/pkg/logger"
)

// fakeStore libro de producción en memoria que también responde las consultas
// de agregación, sumando las entradas en ventana como lo haría el SQL.
type fakeStore struct {
	entries []*entity.ProductionEntry
	names   map[string]string
}

func (f *fakeStore) Create(_ context.Context, entry *entity.ProductionEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeStore) SalesTotal(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeStore) ProducedTotal(_ context.Context, goodID string, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range f.entries {
		if e.GoodID == goodID && !e.Date.Before(start) && !e.Date.After(end) {
			total = total.Add(e.Produced)
		}
	}
	return total, nil
}

func (f *fakeStore) LowStock(context.Context) ([]entity.LowStockAlert, error) {
	return nil, nil
}

func (f *fakeStore) ProductionEfficiency(_ context.Context, start, end time.Time) ([]entity.EfficiencyRecord, error) {
	byGood := make(map[string]*entity.EfficiencyRecord)
	var order []string
	for _, e := range f.entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		rec, ok := byGood[e.GoodID]
		if !ok {
			rec = &entity.EfficiencyRecord{GoodID: e.GoodID, Name: f.names[e.GoodID]}
			byGood[e.GoodID] = rec
			order = append(order, e.GoodID)
		}
		rec.Produced = rec.Produced.Add(e.Produced)
		rec.Wasted = rec.Wasted.Add(e.Wasted)
	}
	out := make([]entity.EfficiencyRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *byGood[id])
	}
	return out, nil
}

var tracked = metrics.TrackedGoods{PrimaryGoodID: "g-pollo", SecondaryGoodID: "g-tortilla"}

func newUseCase() (*production.UseCase, *fakeStore) {
	store := &fakeStore{names: map[string]string{
		"g-pollo":    "Pollo Asado",
		"g-tortilla": "Tortillas",
	}}
	metricsUC := metrics.NewUseCase(store, nil, tracked, logger.Nop())
	return production.NewUseCase(store, metricsUC, tracked, logger.Nop()), store
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRegister_EntradaValida(t *testing.T) {
	uc, store := newUseCase()

	err := uc.Register(context.Background(), dto.RegisterProductionRequest{
		Date:     "2025-01-15",
		GoodID:   "g-pollo",
		Produced: dec("50"),
		Wasted:   dec("2"),
		Notes:    "jornada normal",
	})
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "2025-01-15", entry.Date.Format("2006-01-02"))
	assert.True(t, entry.Produced.Equal(dec("50")))
	assert.True(t, entry.Wasted.Equal(dec("2")))
}

func TestRegister_ValidacionesAntesDelAlmacen(t *testing.T) {
	cases := []struct {
		name string
		in   dto.RegisterProductionRequest
	}{
		{"producido negativo", dto.RegisterProductionRequest{Date: "2025-01-15", GoodID: "g-pollo", Produced: dec("-1")}},
		{"merma negativa", dto.RegisterProductionRequest{Date: "2025-01-15", GoodID: "g-pollo", Produced: dec("10"), Wasted: dec("-1")}},
		{"merma mayor que producido", dto.RegisterProductionRequest{Date: "2025-01-15", GoodID: "g-pollo", Produced: dec("10"), Wasted: dec("11")}},
		{"fecha inválida", dto.RegisterProductionRequest{Date: "15/01/2025", GoodID: "g-pollo", Produced: dec("10")}},
		{"sin producto", dto.RegisterProductionRequest{Date: "2025-01-15", Produced: dec("10")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, store := newUseCase()

			err := uc.Register(context.Background(), tc.in)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.entries, "la validación debe rechazar antes de tocar el almacén")
		})
	}
}

// Las entradas duplicadas se acumulan: el libro es append-only y la
// agregación en ventana las suma.
func TestRegister_DuplicadosSeAcumulan(t *testing.T) {
	uc, store := newUseCase()
	in := dto.RegisterProductionRequest{
		Date: "2025-01-15", GoodID: "g-pollo", Produced: dec("50"), Wasted: dec("2"),
	}

	require.NoError(t, uc.Register(context.Background(), in))
	require.NoError(t, uc.Register(context.Background(), in))

	assert.Len(t, store.entries, 2)
}

// Extremo a extremo: registrar pollo 50 producidos / 2 mermados y consultar la
// eficiencia del mismo día debe dar (50-2)/50×100 = 96%.
func TestRegisterYDailyStats_ExtremoAExtremo(t *testing.T) {
	uc, _ := newUseCase()

	require.NoError(t, uc.Register(context.Background(), dto.RegisterProductionRequest{
		Date: "2025-01-15", GoodID: "g-pollo", Produced: dec("50"), Wasted: dec("2"),
	}))
	require.NoError(t, uc.Register(context.Background(), dto.RegisterProductionRequest{
		Date: "2025-01-15", GoodID: "g-tortilla", Produced: dec("200"), Wasted: dec("0"),
	}))

	stats, err := uc.DailyStats(context.Background(), "2025-01-15")
	require.NoError(t, err)

	assert.True(t, stats.PrimaryProduced.Equal(dec("50")))
	assert.True(t, stats.SecondaryProduced.Equal(dec("200")))
	// promedio sin ponderar de 96% (pollo) y 100% (tortillas) = 98%
	assert.True(t, stats.AverageEfficiency.Equal(dec("98")),
		"eficiencia media esperada 98, fue %s", stats.AverageEfficiency)
}

func TestDailyStats_FechaInvalida(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.DailyStats(context.Background(), "ayer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
