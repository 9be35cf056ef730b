package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/asadero-pos/internal/application/catalog"
	"github.com/tu-usuario/asadero-pos/internal/application/dto"
)

// CatalogHandler expone el snapshot del catálogo vendible.
type CatalogHandler struct {
	snapshot *catalog.Snapshot
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(snapshot *catalog.Snapshot) *CatalogHandler {
	return &CatalogHandler{snapshot: snapshot}
}

// List devuelve el catálogo actual en memoria.
// GET /api/catalog/goods
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	goods := h.snapshot.Goods()
	out := make([]dto.GoodDTO, 0, len(goods))
	for _, g := range goods {
		out = append(out, dto.GoodDTO{
			ID:           g.ID,
			Name:         g.Name,
			UnitPrice:    g.UnitPrice,
			CurrentStock: g.CurrentStock,
		})
	}
	return c.JSON(out)
}

// Refresh recarga el catálogo desde el almacén externo.
// POST /api/catalog/refresh
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	if err := h.snapshot.Refresh(c.Context()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND", Message: err.Error()})
	}
	return h.List(c)
}
