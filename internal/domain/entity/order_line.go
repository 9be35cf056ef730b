package entity

import "github.com/shopspring/decimal"

// OrderLine representa una línea de detalle de una venta.
// Se crean en lote y siempre referencian una OrderHeader existente.
type OrderLine struct {
	ID        string
	OrderID   string
	GoodID    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
