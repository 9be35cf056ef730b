// Package cart implementa el carrito de una sesión de venta: estado en
// memoria, sin efectos persistidos. El estado es un objeto explícito que la
// sesión posee y pasa por referencia; no hay acceso global ambiente.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/asadero-pos/internal/domain"
	"github.com/tu-usuario/asadero-pos/internal/domain/entity"
)

// Line una línea del carrito: a lo sumo una por producto.
// LineTotal se recalcula en cada mutación; nunca queda obsoleto.
type Line struct {
	GoodID    string
	GoodName  string
	Quantity  int64
	UnitPrice decimal.Decimal // precio al momento de agregar
	LineTotal decimal.Decimal // Quantity × UnitPrice
}

// Cart colección ordenada de líneas, indexada por ID de producto.
// Invariante: Total() == suma de LineTotal en todo momento.
type Cart struct {
	lines []*Line
	index map[string]*Line
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{index: make(map[string]*Line)}
}

// Add agrega quantity unidades del producto. Si ya existe una línea para el
// producto, incrementa su cantidad (merge, no duplicación) y recalcula el
// total de la línea. Falla con ErrInvalidQuantity si quantity < 1.
func (c *Cart) Add(good entity.Good, quantity int64) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	if line, ok := c.index[good.ID]; ok {
		line.Quantity += quantity
		line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity))
		return nil
	}
	line := &Line{
		GoodID:    good.ID,
		GoodName:  good.Name,
		Quantity:  quantity,
		UnitPrice: good.UnitPrice,
		LineTotal: good.UnitPrice.Mul(decimal.NewFromInt(quantity)),
	}
	c.lines = append(c.lines, line)
	c.index[good.ID] = line
	return nil
}

// Remove elimina la línea del producto si existe. No es error que no exista.
func (c *Cart) Remove(goodID string) {
	if _, ok := c.index[goodID]; !ok {
		return
	}
	delete(c.index, goodID)
	for i, line := range c.lines {
		if line.GoodID == goodID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

// SetQuantity reemplaza la cantidad de la línea y recalcula su total.
// Falla con ErrInvalidQuantity si quantity < 1 y con ErrLineNotFound si no
// hay línea para el producto.
func (c *Cart) SetQuantity(goodID string, quantity int64) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	line, ok := c.index[goodID]
	if !ok {
		return domain.ErrLineNotFound
	}
	line.Quantity = quantity
	line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(quantity))
	return nil
}

// Clear vacía todas las líneas.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]*Line)
}

// Total devuelve la suma de los totales de línea.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	return out
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
