package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo persistencia de ventas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// CreateHeader persiste la cabecera de la venta y devuelve el ID generado.
func (r *OrderRepo) CreateHeader(ctx context.Context, header *entity.OrderHeader) (string, error) {
	if header.ID == "" {
		header.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO orders (id, total, payment_method, status, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id string
	err := r.q.QueryRow(ctx, query,
		header.ID, header.Total, header.PaymentMethod, header.Status, header.Date,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("order id already exists: %w", err)
		}
		return "", fmt.Errorf("insert order header: %w", err)
	}
	return id, nil
}

// CreateLines persiste el lote de líneas en un batch (un solo round-trip).
func (r *OrderRepo) CreateLines(ctx context.Context, lines []*entity.OrderLine) error {
	const query = `
		INSERT INTO order_lines (id, order_id, good_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	batch := &pgx.Batch{}
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		batch.Queue(query, line.ID, line.OrderID, line.GoodID, line.Quantity, line.UnitPrice, line.LineTotal)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert order lines: %w", err)
		}
	}
	return nil
}

// ListWithLines devuelve ventas paginadas con sus líneas.
// Los filtros definidos se combinan con AND; el campo de orden viene validado
// por la capa de aplicación (date|total|status).
func (r *OrderRepo) ListWithLines(
	ctx context.Context,
	filters repository.TransactionFilters,
	limit, offset int,
) ([]*repository.OrderWithLines, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// Las cabeceras llevan hora del día; la ventana se compara por fecha
	// calendario para que el límite superior incluya el día completo.
	if filters.StartDate != nil {
		conds = append(conds, "o.date::date >= "+arg(*filters.StartDate))
	}
	if filters.EndDate != nil {
		conds = append(conds, "o.date::date <= "+arg(*filters.EndDate))
	}
	if filters.Status != "" {
		conds = append(conds, "o.status = "+arg(filters.Status))
	}
	if filters.MinTotal != nil {
		conds = append(conds, "o.total >= "+arg(*filters.MinTotal))
	}
	if filters.MaxTotal != nil {
		conds = append(conds, "o.total <= "+arg(*filters.MaxTotal))
	}
	if filters.GoodID != "" {
		conds = append(conds,
			"EXISTS (SELECT 1 FROM order_lines ol WHERE ol.order_id = o.id AND ol.good_id = "+arg(filters.GoodID)+")")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = repository.SortByDate
	}
	direction := "ASC"
	if filters.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.total, o.payment_method, o.status, o.date
		FROM orders o
		%s
		ORDER BY o.%s %s
		LIMIT %s OFFSET %s`,
		where, sortBy, direction, arg(limit), arg(offset))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		results []*repository.OrderWithLines
		byID    = make(map[string]*repository.OrderWithLines)
		ids     []string
	)
	for rows.Next() {
		var h entity.OrderHeader
		if err := rows.Scan(&h.ID, &h.Total, &h.PaymentMethod, &h.Status, &h.Date); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o := &repository.OrderWithLines{Header: h}
		results = append(results, o)
		byID[h.ID] = o
		ids = append(ids, h.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders rows: %w", err)
	}
	if len(ids) == 0 {
		return []*repository.OrderWithLines{}, nil
	}

	const linesQuery = `
		SELECT id, order_id, good_id, quantity, unit_price, line_total
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`
	lineRows, err := r.q.Query(ctx, linesQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l entity.OrderLine
		if err := lineRows.Scan(&l.ID, &l.OrderID, &l.GoodID, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		if o, ok := byID[l.OrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}
	return results, lineRows.Err()
}
