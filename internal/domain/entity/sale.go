package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a finished checkout. Item rows carry full snapshots of the
// product and unit so later catalog edits never rewrite history.
type Sale struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID     *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName   *string         `gorm:"size:255" json:"customer_name,omitempty"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	Discount       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount"`
	DiscountNote   *string         `gorm:"size:255" json:"discount_note,omitempty"`
	Tax            decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax"`
	Total          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total"`
	ReceivedAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"received_amount"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"paid_amount"`
	DueAmount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"due_amount"`
	Currency       string          `gorm:"size:10;not null" json:"currency"`
	PaymentMethod  string          `gorm:"size:50;not null;default:cash" json:"payment_method"`
	Status         enum.SaleStatus `gorm:"size:20;not null;index" json:"status"`
	Notes          *string         `gorm:"type:text" json:"notes,omitempty"`
	DueNote        *string         `gorm:"size:255" json:"due_note,omitempty"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// IsOpen reports whether the sale still carries an outstanding balance.
func (s *Sale) IsOpen() bool {
	return s.DueAmount.IsPositive()
}

// SaleItem is one sold line. Unit fields are snapshots taken at checkout.
type SaleItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName      string          `gorm:"size:255;not null" json:"product_name"`
	UnitQuantity     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_quantity"`
	UnitLabel        string          `gorm:"size:100;not null" json:"unit_label"`
	UnitLevel        int             `gorm:"not null" json:"unit_level"`
	UnitMultiplier   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_multiplier"`
	BaseQuantity     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"base_quantity"`
	BaseUnitLabel    string          `gorm:"size:100;not null" json:"base_unit_label"`
	PricePerBaseUnit decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price_per_base_unit"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
	CreatedAt        time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
