// Package metrics contiene el servicio de agregación de métricas: KPIs del
// dashboard, eficiencia de producción, alertas de stock bajo y listado de
// transacciones recientes. Todas las operaciones son de solo lectura y
// reentrantes sobre una ventana [start, end] de fechas inclusivas.
package metrics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/asadero-pos/internal/application/dto"
	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
	"github.com/tu-usuario/asadero-pos/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// TrackedGoods mapeo de rol semántico a ID estable de producto, resuelto en
// configuración. Reemplaza la identificación por substring del nombre.
type TrackedGoods struct {
	PrimaryGoodID   string // ej. pollo asado
	SecondaryGoodID string // ej. tortillas
}

// UseCase servicio de agregación de métricas.
type UseCase struct {
	metrics repository.MetricsRepository
	orders  repository.OrderRepository
	tracked TrackedGoods
	log     *logger.Logger
}

// NewUseCase construye el servicio.
func NewUseCase(
	metrics repository.MetricsRepository,
	orders repository.OrderRepository,
	tracked TrackedGoods,
	log *logger.Logger,
) *UseCase {
	return &UseCase{metrics: metrics, orders: orders, tracked: tracked, log: log}
}

// DashboardMetrics calcula los KPIs del dashboard para la ventana dada.
//
// Cuatro consultas en paralelo: ventas completadas, producción del producto
// primario, producción del secundario y alertas de stock bajo. Una submétrica
// que falla degrada a cero/vacío y queda marcada en Errors; el llamador nunca
// recibe error, pero el fallo es observable (no se confunde cero actividad
// con consulta fallida).
func (uc *UseCase) DashboardMetrics(ctx context.Context, start, end time.Time) *dto.DashboardMetricsDTO {
	type salesResult struct {
		total decimal.Decimal
		err   error
	}
	type producedResult struct {
		total decimal.Decimal
		err   error
	}
	type lowStockResult struct {
		alerts []dto.LowStockDTO
		err    error
	}

	salesCh := make(chan salesResult, 1)
	primaryCh := make(chan producedResult, 1)
	secondaryCh := make(chan producedResult, 1)
	stockCh := make(chan lowStockResult, 1)

	go func() {
		total, err := uc.metrics.SalesTotal(ctx, start, end)
		salesCh <- salesResult{total, err}
	}()
	go func() {
		total, err := uc.metrics.ProducedTotal(ctx, uc.tracked.PrimaryGoodID, start, end)
		primaryCh <- producedResult{total, err}
	}()
	go func() {
		total, err := uc.metrics.ProducedTotal(ctx, uc.tracked.SecondaryGoodID, start, end)
		secondaryCh <- producedResult{total, err}
	}()
	go func() {
		alerts, err := uc.LowStockAlerts(ctx)
		stockCh <- lowStockResult{alerts, err}
	}()

	sales := <-salesCh
	primary := <-primaryCh
	secondary := <-secondaryCh
	stock := <-stockCh

	out := &dto.DashboardMetricsDTO{
		DailySales:        decimal.Zero,
		PrimaryProduced:   decimal.Zero,
		SecondaryProduced: decimal.Zero,
		LowStock:          []dto.LowStockDTO{},
	}

	if sales.err != nil {
		out.Errors = append(out.Errors, uc.degrade("sales", sales.err))
	} else {
		out.DailySales = sales.total
	}
	if primary.err != nil {
		out.Errors = append(out.Errors, uc.degrade("primary_production", primary.err))
	} else {
		out.PrimaryProduced = primary.total
	}
	if secondary.err != nil {
		out.Errors = append(out.Errors, uc.degrade("secondary_production", secondary.err))
	} else {
		out.SecondaryProduced = secondary.total
	}
	if stock.err != nil {
		out.Errors = append(out.Errors, uc.degrade("low_stock", stock.err))
	} else {
		out.LowStock = stock.alerts
	}

	return out
}

// degrade registra la submétrica fallida y construye su marca de error.
func (uc *UseCase) degrade(metric string, err error) dto.MetricErrorDTO {
	uc.log.Warn().Str("metric", metric).Err(err).Msg("submétrica del dashboard degradada a cero")
	return dto.MetricErrorDTO{Metric: metric, Message: err.Error()}
}

// LowStockAlerts devuelve los productos con stock actual estrictamente por
// debajo del mínimo (current == min no alerta). El orden no está garantizado.
func (uc *UseCase) LowStockAlerts(ctx context.Context) ([]dto.LowStockDTO, error) {
	alerts, err := uc.metrics.LowStock(ctx)
	if err != nil {
		return nil, &domain.BackendError{Op: "goods.low_stock", Err: err}
	}
	out := make([]dto.LowStockDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.LowStockDTO{
			GoodID:       a.GoodID,
			Name:         a.Name,
			CurrentStock: a.CurrentStock,
			MinStock:     a.MinStock,
		})
	}
	return out, nil
}

// ProductionEfficiency calcula la eficiencia por producto en la ventana:
// (producido - merma) / producido × 100, sumando todas las entradas en
// ventana por producto.
//
// Producido cero deja la eficiencia indefinida: el producto se excluye de la
// lista y del promedio (no cuenta como 0%). El promedio general es la media
// sin ponderar de las eficiencias por producto, con peso igual sin importar
// el volumen (política documentada).
func (uc *UseCase) ProductionEfficiency(ctx context.Context, start, end time.Time) (*dto.EfficiencyReportDTO, error) {
	records, err := uc.metrics.ProductionEfficiency(ctx, start, end)
	if err != nil {
		return nil, &domain.BackendError{Op: "production.efficiency", Err: err}
	}

	report := &dto.EfficiencyReportDTO{
		Goods:             []dto.EfficiencyDTO{},
		AverageEfficiency: decimal.Zero,
	}
	sum := decimal.Zero
	for _, rec := range records {
		if !rec.Produced.IsPositive() {
			continue // eficiencia indefinida, fuera de lista y promedio
		}
		eff := rec.Produced.Sub(rec.Wasted).Div(rec.Produced).Mul(oneHundred).Round(2)
		report.Goods = append(report.Goods, dto.EfficiencyDTO{
			GoodID:     rec.GoodID,
			Name:       rec.Name,
			Produced:   rec.Produced,
			Wasted:     rec.Wasted,
			Efficiency: eff,
		})
		sum = sum.Add(eff)
	}
	if n := len(report.Goods); n > 0 {
		report.AverageEfficiency = sum.Div(decimal.NewFromInt(int64(n))).Round(2)
	}
	return report, nil
}

// RecentTransactions listado paginado, filtrable y ordenable de ventas con
// sus líneas. Filtros conjuntivos: rango de fechas, estado, rango de monto y
// producto presente en alguna línea.
func (uc *UseCase) RecentTransactions(
	ctx context.Context,
	filters repository.TransactionFilters,
	page dto.PageRequest,
) ([]dto.TransactionDTO, error) {
	switch filters.SortBy {
	case "":
		filters.SortBy = repository.SortByDate
	case repository.SortByDate, repository.SortByTotal, repository.SortByStatus:
	default:
		return nil, domain.ErrInvalidInput
	}
	if filters.Status != "" {
		switch filters.Status {
		case entity.OrderStatusPending, entity.OrderStatusCompleted, entity.OrderStatusCancelled:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	page.DefaultPage()

	orders, err := uc.orders.ListWithLines(ctx, filters, page.Limit, page.Offset)
	if err != nil {
		return nil, &domain.BackendError{Op: "orders.list", Err: err}
	}

	out := make([]dto.TransactionDTO, 0, len(orders))
	for _, o := range orders {
		tx := dto.TransactionDTO{
			ID:     o.Header.ID,
			Date:   o.Header.Date.Format("2006-01-02"),
			Total:  o.Header.Total,
			Status: o.Header.Status,
			Lines:  make([]dto.TransactionLineDTO, 0, len(o.Lines)),
		}
		for _, l := range o.Lines {
			tx.Lines = append(tx.Lines, dto.TransactionLineDTO{
				GoodID:    l.GoodID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				LineTotal: l.LineTotal,
			})
		}
		out = append(out, tx)
	}
	return out, nil
}
