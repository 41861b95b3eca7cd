package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one row in a customer's append-only ledger. Charges are
// written when a sale leaves a due amount, payments when money comes in.
type Payment struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID             `gorm:"type:uuid;not null;index" json:"customer_id"`
	SaleID     *uuid.UUID            `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	EntryType  enum.PaymentEntryType `gorm:"size:20;not null" json:"entry_type"`
	Amount     decimal.Decimal       `gorm:"type:decimal(20,4);not null" json:"amount"`
	Method     string                `gorm:"size:50;not null;default:cash" json:"method"`
	Note       *string               `gorm:"size:255" json:"note,omitempty"`
	CreatedAt  time.Time             `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
