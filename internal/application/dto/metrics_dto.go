package dto

import "github.com/shopspring/decimal"

// MetricErrorDTO marca de fallo de una submétrica del dashboard.
// Distingue "sin actividad" (cero real) de "la consulta falló" (cero degradado).
type MetricErrorDTO struct {
	Metric  string `json:"metric"` // sales|primary_production|secondary_production|low_stock
	Message string `json:"message"`
}

// DashboardMetricsDTO respuesta de GET /api/dashboard/metrics.
// Cada submétrica degrada a cero/vacío si su consulta falla; el fallo queda
// registrado en Errors, nunca se traga en esta capa.
type DashboardMetricsDTO struct {
	DailySales        decimal.Decimal  `json:"daily_sales"`
	PrimaryProduced   decimal.Decimal  `json:"primary_produced"`   // ej. pollos
	SecondaryProduced decimal.Decimal  `json:"secondary_produced"` // ej. tortillas
	LowStock          []LowStockDTO    `json:"low_stock"`
	Errors            []MetricErrorDTO `json:"errors,omitempty"`
}

// LowStockDTO una alerta de stock bajo.
type LowStockDTO struct {
	GoodID       string          `json:"good_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
}

// EfficiencyDTO eficiencia de producción de un producto en la ventana.
type EfficiencyDTO struct {
	GoodID     string          `json:"good_id"`
	Name       string          `json:"name"`
	Produced   decimal.Decimal `json:"total_produced"`
	Wasted     decimal.Decimal `json:"total_wasted"`
	Efficiency decimal.Decimal `json:"efficiency_percentage"`
}

// EfficiencyReportDTO respuesta de GET /api/production/efficiency.
// AverageEfficiency es la media sin ponderar de las eficiencias por producto
// (peso igual sin importar el volumen; política documentada).
type EfficiencyReportDTO struct {
	Goods             []EfficiencyDTO `json:"goods"`
	AverageEfficiency decimal.Decimal `json:"average_efficiency"`
}

// TransactionLineDTO línea de una venta en el listado.
type TransactionLineDTO struct {
	GoodID    string          `json:"good_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// TransactionDTO una venta con sus líneas.
type TransactionDTO struct {
	ID     string               `json:"id"`
	Date   string               `json:"date"` // YYYY-MM-DD
	Total  decimal.Decimal      `json:"total"`
	Status string               `json:"status"`
	Lines  []TransactionLineDTO `json:"lines"`
}
