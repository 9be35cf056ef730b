package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/asadero-pos/internal/application/dto"
	"github.com/tu-usuario/asadero-pos/internal/application/metrics"
	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
	"github.com/tu-usuario/asadero-pos/pkg/logger"
)

// fakeMetricsRepo resultados fijos por consulta, con fallos inyectables.
type fakeMetricsRepo struct {
	salesTotal decimal.Decimal
	salesErr   error

	producedByGood map[string]decimal.Decimal
	producedErr    error

	lowStock    []entity.LowStockAlert
	lowStockErr error

	efficiency    []entity.EfficiencyRecord
	efficiencyErr error
}

func (f *fakeMetricsRepo) SalesTotal(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return f.salesTotal, f.salesErr
}

func (f *fakeMetricsRepo) ProducedTotal(_ context.Context, goodID string, _, _ time.Time) (decimal.Decimal, error) {
	if f.producedErr != nil {
		return decimal.Zero, f.producedErr
	}
	return f.producedByGood[goodID], nil
}

func (f *fakeMetricsRepo) LowStock(context.Context) ([]entity.LowStockAlert, error) {
	return f.lowStock, f.lowStockErr
}

func (f *fakeMetricsRepo) ProductionEfficiency(context.Context, time.Time, time.Time) ([]entity.EfficiencyRecord, error) {
	return f.efficiency, f.efficiencyErr
}

// fakeOrderLister captura los argumentos del listado y devuelve lo configurado.
type fakeOrderLister struct {
	gotFilters repository.TransactionFilters
	gotLimit   int
	gotOffset  int
	result     []*repository.OrderWithLines
	err        error
}

func (f *fakeOrderLister) CreateHeader(context.Context, *entity.OrderHeader) (string, error) {
	return "", errors.New("no usado")
}

func (f *fakeOrderLister) CreateLines(context.Context, []*entity.OrderLine) error {
	return errors.New("no usado")
}

func (f *fakeOrderLister) ListWithLines(_ context.Context, filters repository.TransactionFilters, limit, offset int) ([]*repository.OrderWithLines, error) {
	f.gotFilters = filters
	f.gotLimit = limit
	f.gotOffset = offset
	return f.result, f.err
}

var tracked = metrics.TrackedGoods{PrimaryGoodID: "g-pollo", SecondaryGoodID: "g-tortilla"}

func newUseCase(repo *fakeMetricsRepo, orders *fakeOrderLister) *metrics.UseCase {
	if orders == nil {
		orders = &fakeOrderLister{}
	}
	return metrics.NewUseCase(repo, orders, tracked, logger.Nop())
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProductionEfficiency_CalculoPorProducto(t *testing.T) {
	repo := &fakeMetricsRepo{
		efficiency: []entity.EfficiencyRecord{
			{GoodID: "g-pollo", Name: "Pollo Asado", Produced: dec("50"), Wasted: dec("2")},
		},
	}
	uc := newUseCase(repo, nil)

	report, err := uc.ProductionEfficiency(context.Background(), day("2025-01-15"), day("2025-01-15"))
	require.NoError(t, err)

	require.Len(t, report.Goods, 1)
	// (50 - 2) / 50 × 100 = 96%
	assert.True(t, report.Goods[0].Efficiency.Equal(dec("96")),
		"eficiencia esperada 96, fue %s", report.Goods[0].Efficiency)
	assert.True(t, report.AverageEfficiency.Equal(dec("96")))
}

func TestProductionEfficiency_ProducidoCeroExcluido(t *testing.T) {
	repo := &fakeMetricsRepo{
		efficiency: []entity.EfficiencyRecord{
			{GoodID: "g-pollo", Name: "Pollo Asado", Produced: dec("50"), Wasted: dec("2")},
			{GoodID: "g-vacio", Name: "Sin Producción", Produced: dec("0"), Wasted: dec("0")},
		},
	}
	uc := newUseCase(repo, nil)

	report, err := uc.ProductionEfficiency(context.Background(), day("2025-01-01"), day("2025-01-31"))
	require.NoError(t, err)

	require.Len(t, report.Goods, 1, "producido 0 deja la eficiencia indefinida: fuera de la lista")
	assert.Equal(t, "g-pollo", report.Goods[0].GoodID)
	assert.True(t, report.AverageEfficiency.Equal(dec("96")),
		"el producto excluido no debe arrastrar el promedio hacia 0")
}

func TestProductionEfficiency_PromedioSinPonderar(t *testing.T) {
	repo := &fakeMetricsRepo{
		efficiency: []entity.EfficiencyRecord{
			// 96% con volumen alto
			{GoodID: "g-pollo", Name: "Pollo Asado", Produced: dec("1000"), Wasted: dec("40")},
			// 50% con volumen mínimo: pesa igual en el promedio (política documentada)
			{GoodID: "g-tortilla", Name: "Tortillas", Produced: dec("2"), Wasted: dec("1")},
		},
	}
	uc := newUseCase(repo, nil)

	report, err := uc.ProductionEfficiency(context.Background(), day("2025-01-01"), day("2025-01-31"))
	require.NoError(t, err)

	require.Len(t, report.Goods, 2)
	assert.True(t, report.AverageEfficiency.Equal(dec("73")),
		"promedio sin ponderar de 96 y 50 debe ser 73, fue %s", report.AverageEfficiency)
}

func TestProductionEfficiency_ErrorDelAlmacen(t *testing.T) {
	repo := &fakeMetricsRepo{efficiencyErr: errors.New("timeout")}
	uc := newUseCase(repo, nil)

	_, err := uc.ProductionEfficiency(context.Background(), day("2025-01-01"), day("2025-01-31"))

	var backendErr *domain.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "production.efficiency", backendErr.Op)
}

func TestDashboardMetrics_TodoExitoso(t *testing.T) {
	repo := &fakeMetricsRepo{
		salesTotal: dec("1250.75"),
		producedByGood: map[string]decimal.Decimal{
			"g-pollo":    dec("120"),
			"g-tortilla": dec("300"),
		},
		lowStock: []entity.LowStockAlert{
			{GoodID: "g-maiz", Name: "Maíz", CurrentStock: dec("3"), MinStock: dec("10")},
		},
	}
	uc := newUseCase(repo, nil)

	out := uc.DashboardMetrics(context.Background(), day("2025-01-15"), day("2025-01-15"))

	assert.True(t, out.DailySales.Equal(dec("1250.75")))
	assert.True(t, out.PrimaryProduced.Equal(dec("120")))
	assert.True(t, out.SecondaryProduced.Equal(dec("300")))
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, "g-maiz", out.LowStock[0].GoodID)
	assert.Empty(t, out.Errors)
}

func TestDashboardMetrics_SubmetricaFallidaDegradaACeroConMarca(t *testing.T) {
	repo := &fakeMetricsRepo{
		salesErr: errors.New("conexión rechazada"),
		producedByGood: map[string]decimal.Decimal{
			"g-pollo":    dec("120"),
			"g-tortilla": dec("300"),
		},
	}
	uc := newUseCase(repo, nil)

	out := uc.DashboardMetrics(context.Background(), day("2025-01-15"), day("2025-01-15"))

	assert.True(t, out.DailySales.IsZero(), "la submétrica fallida degrada a cero")
	assert.True(t, out.PrimaryProduced.Equal(dec("120")), "las demás submétricas no se ven afectadas")

	require.Len(t, out.Errors, 1, "el fallo debe ser observable, no tragado")
	assert.Equal(t, "sales", out.Errors[0].Metric)
	assert.Contains(t, out.Errors[0].Message, "conexión rechazada")
}

func TestLowStockAlerts_Mapeo(t *testing.T) {
	repo := &fakeMetricsRepo{
		lowStock: []entity.LowStockAlert{
			{GoodID: "g-maiz", Name: "Maíz", CurrentStock: dec("3"), MinStock: dec("10")},
			{GoodID: "g-carbon", Name: "Carbón", CurrentStock: dec("0"), MinStock: dec("5")},
		},
	}
	uc := newUseCase(repo, nil)

	alerts, err := uc.LowStockAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "g-maiz", alerts[0].GoodID)
	assert.True(t, alerts[1].CurrentStock.IsZero())
}

func TestRecentTransactions_OrdenInvalidoRechazado(t *testing.T) {
	orders := &fakeOrderLister{}
	uc := newUseCase(&fakeMetricsRepo{}, orders)

	_, err := uc.RecentTransactions(context.Background(),
		repository.TransactionFilters{SortBy: "payment_method"}, dto.PageRequest{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"solo date, total y status son campos de orden válidos")
}

func TestRecentTransactions_EstadoInvalidoRechazado(t *testing.T) {
	uc := newUseCase(&fakeMetricsRepo{}, &fakeOrderLister{})

	_, err := uc.RecentTransactions(context.Background(),
		repository.TransactionFilters{Status: "reembolsada"}, dto.PageRequest{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecentTransactions_DefaultsYMapeo(t *testing.T) {
	date := day("2025-01-15")
	orders := &fakeOrderLister{
		result: []*repository.OrderWithLines{
			{
				Header: entity.OrderHeader{
					ID: "o-1", Total: dec("25.00"), Status: entity.OrderStatusCompleted, Date: date,
				},
				Lines: []entity.OrderLine{
					{OrderID: "o-1", GoodID: "g-a", Quantity: dec("2"), UnitPrice: dec("10.00"), LineTotal: dec("20.00")},
				},
			},
		},
	}
	uc := newUseCase(&fakeMetricsRepo{}, orders)

	list, err := uc.RecentTransactions(context.Background(), repository.TransactionFilters{}, dto.PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, 5, orders.gotLimit, "el límite por defecto del widget es 5")
	assert.Equal(t, 0, orders.gotOffset)
	assert.Equal(t, repository.SortByDate, orders.gotFilters.SortBy, "orden por fecha por defecto")

	require.Len(t, list, 1)
	assert.Equal(t, "o-1", list[0].ID)
	assert.Equal(t, "2025-01-15", list[0].Date)
	require.Len(t, list[0].Lines, 1)
	assert.True(t, list[0].Lines[0].LineTotal.Equal(dec("20.00")))
}
