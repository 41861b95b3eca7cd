package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/internal/domain/uom"
	"github.com/pasalhq/pasal-api/pkg/apperror"
	"github.com/pasalhq/pasal-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CatalogService handles product catalog operations
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name        string
	Category    string
	Description *string
	ImageURL    *string
	// Price is the flat product price; nil means the caller relies on the
	// base unit carrying its own price.
	Price    *decimal.Decimal
	Quantity decimal.Decimal
	// QuantityUnitLevel is the unit level the quantity was entered in;
	// zero means the base unit.
	QuantityUnitLevel int
	Units             []uom.Unit
}

// UpdateProductInput represents the update product input. Nil fields are
// left untouched.
type UpdateProductInput struct {
	Name              *string
	Category          *string
	Description       *string
	ImageURL          *string
	Price             *decimal.Decimal
	Quantity          *decimal.Decimal
	QuantityUnitLevel int
	Units             *[]uom.Unit
}

// CreateProduct validates the unit hierarchy and stores a new product.
// The product price and the base unit price are kept in sync both ways.
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, apperror.NewBadRequestError("Product category is required")
	}

	units := input.Units
	if len(units) == 0 {
		units = []uom.Unit{uom.DefaultUnit()}
	}
	units, err := uom.Normalize(units)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	if units[0].Price == nil && input.Price == nil {
		return nil, apperror.NewBadRequestError("A base unit price or a product price is required")
	}

	price := decimal.Zero
	if input.Price != nil {
		price = *input.Price
	}
	price, units, err = syncBasePrice(price, units)
	if err != nil {
		return nil, err
	}

	baseQuantity, err := uom.ToBaseQuantity(input.Quantity, units, input.QuantityUnitLevel, true)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	product := &entity.Product{
		Name:        name,
		Category:    category,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Price:       price,
		Quantity:    baseQuantity,
		Units:       units,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct applies a partial update, revalidating units when they change.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewBadRequestError("Product name is required")
		}
		product.Name = name
	}

	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, apperror.NewBadRequestError("Product category is required")
		}
		product.Category = category
	}

	if input.Description != nil {
		product.Description = input.Description
	}

	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}

	if input.Units != nil {
		units, err := uom.Normalize(*input.Units)
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		product.Price, product.Units, err = syncBasePrice(product.Price, units)
		if err != nil {
			return nil, err
		}
	}

	// An explicit price update wins over whatever the base unit carried,
	// and is written onto both so they stay aligned.
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.Price = *input.Price
		if len(product.Units) > 0 {
			p := *input.Price
			product.Units[0].Price = &p
		}
	}

	// An explicit quantity update replaces the stored base quantity; zero
	// is rejected here, unlike at creation.
	if input.Quantity != nil {
		baseQuantity, err := uom.ToBaseQuantity(*input.Quantity, product.Units, input.QuantityUnitLevel, false)
		if err != nil {
			return nil, apperror.NewBadRequestError(err.Error())
		}
		product.Quantity = baseQuantity
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// RecordPurchase adds incoming stock, entered in any of the product's
// unit levels, as an atomic increment in base units.
func (s *CatalogService) RecordPurchase(ctx context.Context, id uuid.UUID, quantity decimal.Decimal, unitLevel int) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	baseQuantity, err := uom.ToBaseQuantity(quantity, product.Units, unitLevel, false)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	increment := map[uuid.UUID]decimal.Decimal{product.ID: baseQuantity}
	if err := s.productRepo.AtomicIncrementBatch(ctx, increment); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product from the catalog
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering and pagination
func (s *CatalogService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListCategories returns the distinct category names in use
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.ListCategories(ctx)
}

// syncBasePrice keeps the product price and the base unit price aligned.
// An explicit base unit price wins; otherwise the flat product price is
// written onto the base unit.
func syncBasePrice(price decimal.Decimal, units []uom.Unit) (decimal.Decimal, []uom.Unit, error) {
	if price.IsNegative() {
		return decimal.Zero, nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	if len(units) > 0 {
		if units[0].Price != nil {
			price = *units[0].Price
		} else {
			p := price
			units[0].Price = &p
		}
	}
	return price, units, nil
}
