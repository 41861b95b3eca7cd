package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is a credit account holder. Balance is the total owed across
// all open sales and never goes negative.
type Customer struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null;index" json:"name"`
	Phone     *string         `gorm:"size:50" json:"phone,omitempty"`
	Email     *string         `gorm:"size:255" json:"email,omitempty"`
	Address   *string         `gorm:"type:text" json:"address,omitempty"`
	Notes     *string         `gorm:"type:text" json:"notes,omitempty"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// HasOutstandingBalance reports whether the customer still owes money.
func (c *Customer) HasOutstandingBalance() bool {
	return c.Balance.IsPositive()
}
