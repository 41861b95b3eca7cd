package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/internal/domain/enum"
	"github.com/pasalhq/pasal-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create stores the sale together with its item snapshots.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListForExport returns all matching sales with items, oldest first,
	// without pagination.
	ListForExport(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, error)
	// ListOpenByCustomer returns the customer's sales that still carry a
	// due amount, oldest first.
	ListOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Sale, error)
	// ListByCustomer returns all of the customer's sales, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Sale, error)
	// ListRecentByCustomer returns the customer's newest sales up to limit.
	ListRecentByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]entity.Sale, error)
	Count(ctx context.Context) (int64, error)
	// TotalRevenue sums the total column over all sales.
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	// TotalReceivables sums the outstanding due amounts over all sales.
	TotalReceivables(ctx context.Context) (decimal.Decimal, error)
	// TopSellingProducts aggregates sold base quantities per product.
	TopSellingProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Status     enum.SaleStatus
	From       *time.Time
	To         *time.Time
}

// TopProduct is one row of the best-sellers aggregate.
type TopProduct struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	BaseQuantity decimal.Decimal `json:"base_quantity"`
	Revenue      decimal.Decimal `json:"revenue"`
}
