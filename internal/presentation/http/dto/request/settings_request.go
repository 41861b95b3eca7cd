package request

import "github.com/shopspring/decimal"

// UpdateSettingsRequest represents a settings update request. Nil fields
// keep their current value.
type UpdateSettingsRequest struct {
	StoreName *string          `json:"store_name" binding:"omitempty,min=1,max=255"`
	Currency  *string          `json:"currency" binding:"omitempty,min=1,max=10"`
	TaxRate   *decimal.Decimal `json:"tax_rate"`
}
