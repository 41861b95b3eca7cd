package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/uom"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the inventory. Quantity is always held
// in the base unit; Units describes the sellable denominations.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Category    string          `gorm:"size:255;not null;index" json:"category"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	ImageURL    *string         `gorm:"size:1024" json:"image_url,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	Units       []uom.Unit      `gorm:"serializer:json" json:"units"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// MarshalJSON adds the derived unit projections to every serialized
// product, so clients never recompute them.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		BaseUnitName   string               `json:"base_unit_name"`
		StockBreakdown []uom.BreakdownEntry `json:"stock_breakdown"`
	}{
		alias:          alias(p),
		BaseUnitName:   p.BaseUnitName(),
		StockBreakdown: uom.StockBreakdown(p.Units, p.Quantity),
	})
}

// BaseUnitName returns the label of the product's base unit.
func (p *Product) BaseUnitName() string {
	return uom.BaseUnitName(p.Units)
}

// IsLowStock reports whether the base quantity is below the threshold.
func (p *Product) IsLowStock(threshold decimal.Decimal) bool {
	return p.Quantity.LessThan(threshold)
}
