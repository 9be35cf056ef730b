package dto

import "github.com/shopspring/decimal"

// AddLineRequest body para POST /api/pos/sessions/:id/lines.
type AddLineRequest struct {
	GoodID   string `json:"good_id"`
	Quantity int64  `json:"quantity"`
}

// SetQuantityRequest body para PUT /api/pos/sessions/:id/lines/:goodId.
type SetQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// CommitRequest body para POST /api/pos/sessions/:id/commit.
type CommitRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// CommitResponse respuesta del cobro exitoso.
type CommitResponse struct {
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

// CartLineDTO una línea del carrito en respuestas.
type CartLineDTO struct {
	GoodID    string          `json:"good_id"`
	GoodName  string          `json:"good_name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartDTO snapshot del carrito de una sesión.
type CartDTO struct {
	SessionID string          `json:"session_id"`
	Lines     []CartLineDTO   `json:"lines"`
	Total     decimal.Decimal `json:"total"`
}

// GoodDTO un producto del catálogo del POS.
type GoodDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentStock decimal.Decimal `json:"current_stock"`
}
