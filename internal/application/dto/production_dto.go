package dto

import "github.com/shopspring/decimal"

// RegisterProductionRequest body para POST /api/production/entries.
type RegisterProductionRequest struct {
	Date     string          `json:"date"` // YYYY-MM-DD
	GoodID   string          `json:"good_id"`
	Produced decimal.Decimal `json:"quantity_produced"`
	Wasted   decimal.Decimal `json:"waste_quantity"`
	Notes    string          `json:"notes,omitempty"`
}

// DailyStatsDTO resumen de producción de un día para el dashboard de
// producción: totales de los dos productos destacados y eficiencia media.
type DailyStatsDTO struct {
	PrimaryProduced   decimal.Decimal `json:"primary_produced"`
	SecondaryProduced decimal.Decimal `json:"secondary_produced"`
	AverageEfficiency decimal.Decimal `json:"average_efficiency"`
}
