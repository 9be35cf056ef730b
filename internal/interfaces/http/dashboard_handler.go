package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/asadero-pos/internal/application/dto"
	"github.com/tu-usuario/asadero-pos/internal/application/metrics"
	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// DashboardHandler maneja los endpoints de métricas del dashboard.
type DashboardHandler struct {
	uc *metrics.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *metrics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metrics devuelve los KPIs de la ventana (por defecto, hoy).
// GET /api/dashboard/metrics?start_date&end_date
//
// Nunca falla por submétricas: cada una degrada a cero y el fallo queda en errors[].
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	today := time.Now().Format(dateLayout)
	start, err := time.Parse(dateLayout, c.Query("start_date", today))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date no es YYYY-MM-DD"})
	}
	end, err := time.Parse(dateLayout, c.Query("end_date", today))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date no es YYYY-MM-DD"})
	}
	return c.JSON(h.uc.DashboardMetrics(c.Context(), start, end))
}

// LowStock devuelve las alertas de stock bajo.
// GET /api/dashboard/low-stock
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	alerts, err := h.uc.LowStockAlerts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	return c.JSON(alerts)
}

// Efficiency devuelve la eficiencia de producción por producto en la ventana.
// GET /api/production/efficiency?start_date&end_date
func (h *DashboardHandler) Efficiency(c *fiber.Ctx) error {
	start, err := time.Parse(dateLayout, c.Query("start_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date no es YYYY-MM-DD"})
	}
	end, err := time.Parse(dateLayout, c.Query("end_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date no es YYYY-MM-DD"})
	}
	report, err := h.uc.ProductionEfficiency(c.Context(), start, end)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	return c.JSON(report)
}

// Transactions listado paginado y filtrable de ventas recientes.
// GET /api/dashboard/transactions?start_date&end_date&status&min_amount&max_amount&good_id&sort_by&sort_order&limit&offset
func (h *DashboardHandler) Transactions(c *fiber.Ctx) error {
	filters, err := parseTransactionFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}

	list, err := h.uc.RecentTransactions(c.Context(), filters, page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	return c.JSON(list)
}

// parseTransactionFilters arma los filtros conjuntivos desde la query string.
func parseTransactionFilters(c *fiber.Ctx) (repository.TransactionFilters, error) {
	var filters repository.TransactionFilters

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filters, errors.New("start_date no es YYYY-MM-DD")
		}
		filters.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filters, errors.New("end_date no es YYYY-MM-DD")
		}
		filters.EndDate = &t
	}
	if raw := c.Query("min_amount"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, errors.New("min_amount no es un número")
		}
		filters.MinTotal = &d
	}
	if raw := c.Query("max_amount"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, errors.New("max_amount no es un número")
		}
		filters.MaxTotal = &d
	}
	filters.Status = c.Query("status")
	filters.GoodID = c.Query("good_id")
	filters.SortBy = c.Query("sort_by", repository.SortByDate)
	filters.SortDesc = c.Query("sort_order", "desc") != "asc"
	return filters, nil
}
