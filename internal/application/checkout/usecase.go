// Package checkout implementa el protocolo de cobro: convierte el carrito de
// una sesión en una cabecera de venta más su lote de líneas en el almacén
// externo, con contrato de atomicidad explícito (el fallo entre ambas
// escrituras se reconoce y se expone, no se compensa).
package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/cart"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
	"github.com/tu-usuario/asadero-pos/pkg/logger"
)

// UseCase ejecuta el cobro de una sesión de venta.
type UseCase struct {
	orders repository.OrderRepository
	log    *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(orders repository.OrderRepository, log *logger.Logger) *UseCase {
	return &UseCase{orders: orders, log: log}
}

// Commit persiste el carrito de la sesión como venta: primero la cabecera
// (estado completed) y luego el lote completo de líneas.
//
// Precondiciones: sesión en Draft, carrito no vacío, total igual a la suma de
// líneas (igualdad decimal exacta, más estricta que el epsilon tolerado).
//
// Resultados:
//   - éxito: carrito vaciado, la sesión vuelve a Draft, devuelve el ID de la
//     venta y el total persistido (no un snapshot previo del carrito).
//   - fallo de cabecera: ningún efecto persistido; la sesión vuelve a Draft y
//     el carrito queda intacto para reintentar. Sin reintento automático.
//   - fallo de líneas: cabecera huérfana en la base. La sesión pasa a Failed,
//     el carrito NO se vacía y se devuelve PartialCommitError con el ID para
//     conciliación manual.
//
// A lo sumo un cobro en vuelo por sesión: un segundo intento mientras uno está
// en Committing falla con ErrCommitInProgress.
func (uc *UseCase) Commit(ctx context.Context, s *Session, paymentMethod string) (string, decimal.Decimal, error) {
	if paymentMethod == "" {
		return "", decimal.Zero, domain.ErrInvalidInput
	}

	lines, total, err := uc.enterCommitting(s)
	if err != nil {
		return "", decimal.Zero, err
	}

	now := time.Now()
	header := &entity.OrderHeader{
		ID:            uuid.New().String(),
		Total:         total,
		PaymentMethod: paymentMethod,
		Status:        entity.OrderStatusCompleted,
		Date:          now,
	}

	orderID, err := uc.orders.CreateHeader(ctx, header)
	if err != nil {
		// Nada persistido: la sesión vuelve a Draft con el carrito intacto.
		uc.setState(s, StateDraft)
		return "", decimal.Zero, &domain.BackendError{Op: "orders.insert", Err: err}
	}

	orderLines := make([]*entity.OrderLine, 0, len(lines))
	for _, line := range lines {
		qty := decimal.NewFromInt(line.Quantity)
		orderLines = append(orderLines, &entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			GoodID:    line.GoodID,
			Quantity:  qty,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	if err := uc.orders.CreateLines(ctx, orderLines); err != nil {
		uc.setState(s, StateFailed)
		uc.log.Error().
			Str("order_id", orderID).
			Str("session_id", s.ID).
			Err(err).
			Msg("cobro parcial: cabecera persistida sin líneas, requiere conciliación")
		return "", decimal.Zero, &domain.PartialCommitError{OrderID: orderID, Err: err}
	}

	s.mu.Lock()
	s.cart.Clear()
	s.state = StateDraft // venta completada; la sesión queda lista para otra
	s.mu.Unlock()

	uc.log.Info().
		Str("order_id", orderID).
		Str("session_id", s.ID).
		Str("payment_method", paymentMethod).
		Str("total", total.StringFixed(2)).
		Int("lines", len(orderLines)).
		Msg("venta cobrada")

	return orderID, total, nil
}

// enterCommitting valida las precondiciones y pasa la sesión a Committing.
// Devuelve la copia de líneas y el total con los que se cobrará.
func (uc *UseCase) enterCommitting(s *Session) ([]cart.Line, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateCommitting:
		return nil, decimal.Zero, domain.ErrCommitInProgress
	case StateFailed:
		return nil, decimal.Zero, domain.ErrSessionFailed
	}
	if s.cart.IsEmpty() {
		return nil, decimal.Zero, domain.ErrEmptyCart
	}

	lines := s.cart.Lines()
	total := s.cart.Total()

	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	if !total.Equal(sum) {
		return nil, decimal.Zero, domain.ErrCartTotalMismatch
	}

	s.state = StateCommitting
	return lines, total, nil
}

func (uc *UseCase) setState(s *Session, state string) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
