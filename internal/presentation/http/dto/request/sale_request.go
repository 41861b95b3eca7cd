package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutItemRequest is one cart line
type CheckoutItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitLevel int             `json:"unit_level" binding:"min=0"`
}

// CheckoutRequest represents a checkout request. AmountReceived left out
// means the customer paid the exact total.
type CheckoutRequest struct {
	CustomerID     *uuid.UUID            `json:"customer_id"`
	CustomerName   *string               `json:"customer_name" binding:"omitempty,max=255"`
	Items          []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	DiscountNote   *string               `json:"discount_note" binding:"omitempty,max=255"`
	AmountReceived *decimal.Decimal      `json:"amount_received"`
	PaymentMethod  string                `json:"payment_method" binding:"omitempty,max=50"`
	Notes          *string               `json:"notes"`
	DueNote        *string               `json:"due_note" binding:"omitempty,max=255"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// SaleExportRequest represents sale export parameters
type SaleExportRequest struct {
	Format     string `form:"format"`
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
	From       string `form:"from"`
	To         string `form:"to"`
}

// RecordPaymentRequest represents a customer payment request
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	SaleID *uuid.UUID      `json:"sale_id"`
	Method string          `json:"method" binding:"omitempty,max=50"`
	Note   *string         `json:"note" binding:"omitempty,max=255"`
}
