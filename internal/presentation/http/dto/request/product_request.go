package request

import (
	"encoding/json"

	"github.com/pasalhq/pasal-api/internal/domain/uom"
	"github.com/shopspring/decimal"
)

// UnitsPayload accepts the unit list either as a JSON array or as a
// JSON-encoded string, which is how form-based clients submit it.
type UnitsPayload []uom.Unit

// UnmarshalJSON decodes both accepted shapes of the units field
func (u *UnitsPayload) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		var units []uom.Unit
		if err := json.Unmarshal([]byte(encoded), &units); err != nil {
			return err
		}
		*u = units
		return nil
	}

	var units []uom.Unit
	if err := json.Unmarshal(data, &units); err != nil {
		return err
	}
	*u = units
	return nil
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=255"`
	Category          string           `json:"category" binding:"required,min=1,max=255"`
	Description       *string          `json:"description"`
	ImageURL          *string          `json:"image_url" binding:"omitempty,max=1024"`
	Price             *decimal.Decimal `json:"price"`
	Quantity          decimal.Decimal  `json:"quantity"`
	QuantityUnitLevel int              `json:"quantity_unit_level" binding:"min=0"`
	Units             UnitsPayload     `json:"units"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Category          *string          `json:"category" binding:"omitempty,min=1,max=255"`
	Description       *string          `json:"description"`
	ImageURL          *string          `json:"image_url" binding:"omitempty,max=1024"`
	Price             *decimal.Decimal `json:"price"`
	Quantity          *decimal.Decimal `json:"quantity"`
	QuantityUnitLevel int              `json:"quantity_unit_level" binding:"min=0"`
	Units             *UnitsPayload    `json:"units"`
}

// PurchaseRequest represents an incoming stock purchase
type PurchaseRequest struct {
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitLevel int             `json:"unit_level" binding:"min=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search      string `form:"search"`
	Category    string `form:"category"`
	MinPrice    string `form:"min_price"`
	MaxPrice    string `form:"max_price"`
	StockStatus string `form:"stock_status"` // "low" or "out"
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}
