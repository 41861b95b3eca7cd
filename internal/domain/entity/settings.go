package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StoreSettings is the single row of store-wide configuration. It is
// created lazily with defaults the first time it is read.
type StoreSettings struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StoreName string          `gorm:"size:255;not null" json:"store_name"`
	Currency  string          `gorm:"size:10;not null" json:"currency"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(10,4);default:0" json:"tax_rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DefaultStoreSettings returns the settings used until an admin edits them.
func DefaultStoreSettings() *StoreSettings {
	return &StoreSettings{
		StoreName: "My Local Grocery",
		Currency:  "USD",
		TaxRate:   decimal.NewFromFloat(0.07),
	}
}

// BeforeCreate generates a UUID before creating the settings row
func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}
