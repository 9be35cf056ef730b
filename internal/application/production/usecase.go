// Package production implementa el libro de producción diaria: registro
// append-only de cantidades producidas y mermadas por producto.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/asadero-pos/internal/application/dto"
	appmetrics "github.com/tu-usuario/asadero-pos/internal/application/metrics"
	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
	"github.com/tu-usuario/asadero-pos/pkg/logger"
)

const dateLayout = "2006-01-02"

// UseCase registro y resumen del libro de producción.
type UseCase struct {
	entries   repository.ProductionRepository
	metricsUC *appmetrics.UseCase
	tracked   appmetrics.TrackedGoods
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	entries repository.ProductionRepository,
	metricsUC *appmetrics.UseCase,
	tracked appmetrics.TrackedGoods,
	log *logger.Logger,
) *UseCase {
	return &UseCase{entries: entries, metricsUC: metricsUC, tracked: tracked, log: log}
}

// Register agrega una entrada al libro. No hay update ni delete: las
// correcciones son entradas nuevas y la agregación en ventana las suma.
//
// Valida antes de tocar el almacén: producido ≥ 0, merma ≥ 0 y merma ≤
// producido; de lo contrario ErrInvalidInput.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterProductionRequest) error {
	if in.GoodID == "" {
		return fmt.Errorf("%w: good_id requerido", domain.ErrInvalidInput)
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return fmt.Errorf("%w: fecha %q no es YYYY-MM-DD", domain.ErrInvalidInput, in.Date)
	}
	if in.Produced.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: cantidad producida negativa", domain.ErrInvalidInput)
	}
	if in.Wasted.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: merma negativa", domain.ErrInvalidInput)
	}
	if in.Wasted.GreaterThan(in.Produced) {
		return fmt.Errorf("%w: la merma no puede superar lo producido", domain.ErrInvalidInput)
	}

	entry := &entity.ProductionEntry{
		ID:       uuid.New().String(),
		Date:     date,
		GoodID:   in.GoodID,
		Produced: in.Produced,
		Wasted:   in.Wasted,
		Notes:    in.Notes,
	}
	if err := uc.entries.Create(ctx, entry); err != nil {
		return &domain.BackendError{Op: "production_entries.insert", Err: err}
	}

	uc.log.Info().
		Str("good_id", in.GoodID).
		Str("date", in.Date).
		Str("produced", in.Produced.String()).
		Str("wasted", in.Wasted.String()).
		Msg("producción registrada")
	return nil
}

// DailyStats resume la producción de un día: totales de los dos productos
// destacados (resueltos por ID estable inyectado, no por nombre) y la
// eficiencia media de la jornada.
func (uc *UseCase) DailyStats(ctx context.Context, date string) (*dto.DailyStatsDTO, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q no es YYYY-MM-DD", domain.ErrInvalidInput, date)
	}

	report, err := uc.metricsUC.ProductionEfficiency(ctx, day, day)
	if err != nil {
		return nil, err
	}

	stats := &dto.DailyStatsDTO{
		PrimaryProduced:   decimal.Zero,
		SecondaryProduced: decimal.Zero,
		AverageEfficiency: report.AverageEfficiency,
	}
	for _, g := range report.Goods {
		switch g.GoodID {
		case uc.tracked.PrimaryGoodID:
			stats.PrimaryProduced = g.Produced
		case uc.tracked.SecondaryGoodID:
			stats.SecondaryProduced = g.Produced
		}
	}
	return stats, nil
}
