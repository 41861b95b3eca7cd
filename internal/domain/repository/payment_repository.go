package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/entity"
)

// PaymentRepository defines the interface for the payment ledger.
// Rows are append-only; there is no update or delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error)
}
