package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/asadero-pos/internal/application/catalog"
	"github.com/tu-usuario/asadero-pos/internal/application/checkout"
	"github.com/tu-usuario/asadero-pos/internal/application/dto"
	"github.com/tu-usuario/asadero-pos/internal/domain"
)

// POSHandler maneja las sesiones de venta: carrito y cobro.
type POSHandler struct {
	sessions *checkout.Registry
	catalog  *catalog.Snapshot
	checkout *checkout.UseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(sessions *checkout.Registry, cat *catalog.Snapshot, uc *checkout.UseCase) *POSHandler {
	return &POSHandler{sessions: sessions, catalog: cat, checkout: uc}
}

// CreateSession abre una sesión de venta con carrito vacío.
// POST /api/pos/sessions
func (h *POSHandler) CreateSession(c *fiber.Ctx) error {
	s := h.sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(cartDTO(s))
}

// GetCart devuelve el snapshot del carrito de la sesión.
// GET /api/pos/sessions/:id
func (h *POSHandler) GetCart(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: err.Error()})
	}
	return c.JSON(cartDTO(s))
}

// AddLine agrega unidades de un producto al carrito.
// POST /api/pos/sessions/:id/lines
func (h *POSHandler) AddLine(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: err.Error()})
	}
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	good, err := h.catalog.GetByID(in.GoodID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "GOOD_NOT_FOUND", Message: "producto fuera del catálogo"})
	}
	if err := s.Add(good, in.Quantity); err != nil {
		return cartError(c, err)
	}
	return c.JSON(cartDTO(s))
}

// SetQuantity reemplaza la cantidad de una línea existente.
// PUT /api/pos/sessions/:id/lines/:goodId
func (h *POSHandler) SetQuantity(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: err.Error()})
	}
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := s.SetQuantity(c.Params("goodId"), in.Quantity); err != nil {
		return cartError(c, err)
	}
	return c.JSON(cartDTO(s))
}

// RemoveLine elimina la línea del producto; no es error que no exista.
// DELETE /api/pos/sessions/:id/lines/:goodId
func (h *POSHandler) RemoveLine(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: err.Error()})
	}
	if err := s.Remove(c.Params("goodId")); err != nil {
		return cartError(c, err)
	}
	return c.JSON(cartDTO(s))
}

// ClearCart vacía el carrito de la sesión.
// DELETE /api/pos/sessions/:id/lines
func (h *POSHandler) ClearCart(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: err.Error()})
	}
	if err := s.Clear(); err != nil {
		return cartError(c, err)
	}
	return c.JSON(cartDTO(s))
}

// Commit cobra el carrito de la sesión.
// POST /api/pos/sessions/:id/commit
func (h *POSHandler) Commit(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: err.Error()})
	}
	var in dto.CommitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	orderID, total, err := h.checkout.Commit(c.Context(), s, in.PaymentMethod)
	if err != nil {
		var partial *domain.PartialCommitError
		switch {
		case errors.As(err, &partial):
			// Cabecera huérfana: el operador necesita el ID para conciliar.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "PARTIAL_COMMIT",
				Message: partial.Error(),
			})
		case errors.Is(err, domain.ErrCommitInProgress):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "COMMIT_IN_PROGRESS", Message: err.Error()})
		case errors.Is(err, domain.ErrSessionFailed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_FAILED", Message: err.Error()})
		case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrCartTotalMismatch), errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CommitResponse{OrderID: orderID, Total: total})
}

// cartError mapea errores de mutación del carrito a HTTP.
func cartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrLineNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LINE_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrCommitInProgress), errors.Is(err, domain.ErrSessionFailed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_BUSY", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// cartDTO arma el snapshot del carrito para respuestas.
func cartDTO(s *checkout.Session) dto.CartDTO {
	lines, total := s.Snapshot()
	out := dto.CartDTO{
		SessionID: s.ID,
		Lines:     make([]dto.CartLineDTO, 0, len(lines)),
		Total:     total,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.CartLineDTO{
			GoodID:    l.GoodID,
			GoodName:  l.GoodName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return out
}
