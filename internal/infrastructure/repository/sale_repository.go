package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/entity"
	domainRepo "github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.applyFilters(r.db.WithContext(ctx).Model(&entity.Sale{}), params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").Preload("Customer").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

// ListForExport returns all matching sales with items, oldest first.
func (r *saleRepository) ListForExport(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.applyFilters(r.db.WithContext(ctx).Model(&entity.Sale{}), params).
		Preload("Items").Preload("Customer").
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

// ListOpenByCustomer returns open sales oldest first so payments settle
// the longest-standing debt before newer ones.
func (r *saleRepository) ListOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND due_amount > 0", customerID).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Preload("Items").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) ListRecentByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Items").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).Count(&total).Error
	return total, err
}

func (r *saleRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "total")
}

func (r *saleRepository) TotalReceivables(ctx context.Context) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "due_amount")
}

// TopSellingProducts aggregates sold base quantities per product from the
// item snapshots, best sellers first.
func (r *saleRepository) TopSellingProducts(ctx context.Context, limit int) ([]domainRepo.TopProduct, error) {
	var rows []domainRepo.TopProduct
	err := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Select("product_id, MAX(product_name) AS product_name, SUM(base_quantity) AS base_quantity, SUM(line_total) AS revenue").
		Group("product_id").
		Order("base_quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepository) applyFilters(query *gorm.DB, params *domainRepo.SaleFilterParams) *gorm.DB {
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != "" && params.Status.IsValid() {
		query = query.Where("status = ?", params.Status)
	}
	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("created_at <= ?", *params.To)
	}
	return query
}

func (r *saleRepository) sumColumn(ctx context.Context, column string) (decimal.Decimal, error) {
	var value decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&value).Error
	if err != nil || !value.Valid {
		return decimal.Zero, err
	}
	return value.Decimal, nil
}
