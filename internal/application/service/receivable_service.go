package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/internal/domain/enum"
	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ReceivableService settles customer debt. Incoming money is spread over
// open sales oldest first, or pinned to a single sale when one is named.
type ReceivableService struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
}

// NewReceivableService creates a new receivable service
func NewReceivableService(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
) *ReceivableService {
	return &ReceivableService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
	}
}

// RecordPaymentInput represents the record payment input. SaleID pins the
// payment to one sale instead of the oldest-first sweep.
type RecordPaymentInput struct {
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	SaleID     *uuid.UUID
	Method     string
	Note       *string
}

// PaymentResult reports how a payment landed: the customer with the
// adjusted balance and their refreshed sales history. Leftover is money
// that exceeded the open debt; it is handed back, never kept on account.
type PaymentResult struct {
	Customer      *entity.Customer `json:"customer"`
	AppliedAmount decimal.Decimal  `json:"applied"`
	Leftover      decimal.Decimal  `json:"remaining"`
	Sales         []entity.Sale    `json:"sales"`
}

// RecordPayment applies a customer payment against open sales and writes
// a single ledger row for the applied amount.
func (s *ReceivableService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*PaymentResult, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Payment amount must be greater than zero")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	openSales, err := s.openSales(ctx, customer.ID, input.SaleID)
	if err != nil {
		return nil, err
	}

	remaining := input.Amount
	applied := decimal.Zero

	for i := range openSales {
		if !remaining.IsPositive() {
			break
		}
		sale := &openSales[i]

		apply := decimal.Min(sale.DueAmount, remaining)
		sale.PaidAmount = sale.PaidAmount.Add(apply)
		sale.DueAmount = sale.DueAmount.Sub(apply).Round(2)
		if sale.DueAmount.IsNegative() {
			sale.DueAmount = decimal.Zero
		}
		sale.Status = saleStatus(sale.PaidAmount, sale.DueAmount)

		if err := s.saleRepo.Update(ctx, sale); err != nil {
			return nil, err
		}

		remaining = remaining.Sub(apply)
		applied = applied.Add(apply)
	}

	if !applied.IsPositive() {
		return nil, apperror.NewBadRequestError("Customer has no outstanding balance to apply this payment to")
	}

	// The balance mirrors the open due amounts and never dips below zero.
	customer.Balance = customer.Balance.Sub(applied)
	if customer.Balance.IsNegative() {
		customer.Balance = decimal.Zero
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	method := input.Method
	if method == "" {
		method = "cash"
	}
	payment := &entity.Payment{
		CustomerID: customer.ID,
		SaleID:     input.SaleID,
		EntryType:  enum.PaymentEntryPayment,
		Amount:     applied,
		Method:     method,
		Note:       input.Note,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	return &PaymentResult{
		Customer:      customer,
		AppliedAmount: applied,
		Leftover:      remaining,
		Sales:         sales,
	}, nil
}

// ListCustomerPayments returns the customer's ledger, newest first.
func (s *ReceivableService) ListCustomerPayments(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return s.paymentRepo.ListByCustomer(ctx, customerID)
}

// openSales resolves the target sales for a payment. A pinned sale must
// belong to the customer and still be open.
func (s *ReceivableService) openSales(ctx context.Context, customerID uuid.UUID, saleID *uuid.UUID) ([]entity.Sale, error) {
	if saleID == nil {
		return s.saleRepo.ListOpenByCustomer(ctx, customerID)
	}

	sale, err := s.saleRepo.GetByID(ctx, *saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.CustomerID == nil || *sale.CustomerID != customerID {
		return nil, apperror.NewBadRequestError("Sale does not belong to this customer")
	}
	if !sale.IsOpen() {
		return []entity.Sale{}, nil
	}
	return []entity.Sale{*sale}, nil
}
