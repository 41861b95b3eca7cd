package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListCategories(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold decimal.Decimal) (int64, error)
	// TotalInventoryValue sums price * quantity over the whole catalog.
	TotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
	// AtomicDecrementBatch atomically decrements stock for multiple products.
	// Returns the IDs that failed the sufficient-stock check; if any product
	// fails, the entire transaction is rolled back.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]decimal.Decimal) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically increments stock for multiple products
	// (compensation when a checkout cannot be persisted).
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]decimal.Decimal) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	LowStock   bool
	OutOfStock bool
	SortBy     string
	SortOrder  string
}
