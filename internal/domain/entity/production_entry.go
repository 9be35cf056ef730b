package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionEntry registra la producción diaria de un producto.
// El libro es append-only: las correcciones son entradas nuevas y la
// agregación aguas abajo siempre suma todas las entradas de la ventana.
type ProductionEntry struct {
	ID       string
	Date     time.Time // fecha calendario (día)
	GoodID   string
	Produced decimal.Decimal
	Wasted   decimal.Decimal
	Notes    string
}

// EfficiencyRecord fila derivada por producto y ventana: eficiencia % =
// (producido - merma) / producido * 100. No se almacena.
type EfficiencyRecord struct {
	GoodID     string
	Name       string
	Produced   decimal.Decimal
	Wasted     decimal.Decimal
	Efficiency decimal.Decimal
}
