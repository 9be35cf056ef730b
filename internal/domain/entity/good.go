package entity

import "github.com/shopspring/decimal"

// Good representa un artículo vendible o rastreable (producto terminado o insumo).
// La fuente de verdad es el almacén externo; el núcleo mantiene copias de solo lectura.
type Good struct {
	ID           string
	Name         string
	UnitPrice    decimal.Decimal // precio de venta
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal // umbral para alerta de stock bajo
	IsSellable   bool            // producto final (entra al catálogo del POS)
	Active       bool
}

// LowStockAlert fila derivada: un producto cuyo stock actual está por debajo
// del mínimo configurado. current == min no genera alerta.
type LowStockAlert struct {
	GoodID       string
	Name         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
}
