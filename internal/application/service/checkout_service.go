package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/internal/domain/enum"
	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/internal/domain/uom"
	"github.com/pasalhq/pasal-api/pkg/apperror"
	"github.com/pasalhq/pasal-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CheckoutService turns a cart into a persisted sale. Stock is reserved
// with conditional decrements so two concurrent checkouts can never both
// take the last units.
type CheckoutService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
	settingsRepo repository.SettingsRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
	settingsRepo repository.SettingsRepository,
) *CheckoutService {
	return &CheckoutService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
		settingsRepo: settingsRepo,
	}
}

// CheckoutItemInput is one cart line, quantified in the chosen unit level.
type CheckoutItemInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitLevel int
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	CustomerID *uuid.UUID
	// CustomerName is a walk-in label stored on the sale itself; it never
	// registers a customer and cannot carry a due amount.
	CustomerName  *string
	Items         []CheckoutItemInput
	Discount      decimal.Decimal
	DiscountNote  *string
	PaymentMethod string
	Notes         *string
	DueNote       *string
	// Received is the cash handed over; nil means exact payment.
	Received *decimal.Decimal
}

// Checkout prices the cart, reserves stock and persists the sale. A sale
// left with a due amount must name a customer to carry the debt.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	customer, err := s.resolveCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Price every line in base units and accumulate the stock reservation.
	subtotal := decimal.Zero
	items := make([]entity.SaleItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]decimal.Decimal)

	for _, line := range input.Items {
		product, exists := productMap[line.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}
		if len(product.Units) == 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("%s has no sellable units configured", product.Name))
		}

		baseQuantity, err := uom.ToBaseQuantity(line.Quantity, product.Units, line.UnitLevel, false)
		if err != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("%s: %s", product.Name, err.Error()))
		}

		unit := uom.Resolve(product.Units, line.UnitLevel)
		unitPrice := uom.UnitPrice(unit, product.Price)
		pricePerBase := unitPrice.Div(unit.Multiplier)
		lineTotal := unitPrice.Mul(line.Quantity)
		subtotal = subtotal.Add(lineTotal)

		items = append(items, entity.SaleItem{
			ProductID:        product.ID,
			ProductName:      product.Name,
			UnitQuantity:     line.Quantity,
			UnitLabel:        unit.Name,
			UnitLevel:        unit.Level,
			UnitMultiplier:   unit.Multiplier,
			BaseQuantity:     baseQuantity,
			BaseUnitLabel:    product.BaseUnitName(),
			PricePerBaseUnit: pricePerBase,
			UnitPrice:        unitPrice,
			LineTotal:        lineTotal,
		})

		// The same product may appear on several lines
		stockDecrements[product.ID] = stockDecrements[product.ID].Add(baseQuantity)
		if product.Quantity.LessThan(stockDecrements[product.ID]) {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Insufficient stock for %s", product.Name))
		}
	}

	// Discount is clamped into [0, subtotal]; tax applies after discount.
	discount := input.Discount
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	tax := subtotal.Sub(discount).Mul(settings.TaxRate)
	total := subtotal.Sub(discount).Add(tax)

	received := total
	if input.Received != nil {
		received = *input.Received
	}
	if received.IsNegative() {
		received = decimal.Zero
	}
	paid := decimal.Min(received, total)
	due := total.Sub(paid).Round(2)
	if due.IsNegative() {
		due = decimal.Zero
	}

	if due.IsPositive() && customer == nil {
		return nil, apperror.NewBadRequestError("A customer is required when the sale is not fully paid")
	}

	// Atomically reserve stock; on any shortage the whole batch rolls back.
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewAppError(400, fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	var customerID *uuid.UUID
	if customer != nil {
		customerID = &customer.ID
	}

	var customerName *string
	if input.CustomerName != nil {
		if name := strings.TrimSpace(*input.CustomerName); name != "" {
			customerName = &name
		}
	}

	method := input.PaymentMethod
	if method == "" {
		method = "cash"
	}

	sale := &entity.Sale{
		CustomerID:     customerID,
		CustomerName:   customerName,
		Subtotal:       subtotal,
		Discount:       discount,
		DiscountNote:   input.DiscountNote,
		Tax:            tax,
		Total:          total,
		ReceivedAmount: received,
		PaidAmount:     paid,
		DueAmount:      due,
		Currency:       settings.Currency,
		PaymentMethod:  method,
		Status:         saleStatus(paid, due),
		Notes:          input.Notes,
		DueNote:        input.DueNote,
		Items:          items,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Stock was already decremented, restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	// An attached customer gets ledger rows: a payment entry for the money
	// received now and, on a credit sale, a charge entry raising the balance.
	if customer != nil {
		if paid.IsPositive() {
			entry := &entity.Payment{
				CustomerID: customer.ID,
				SaleID:     &sale.ID,
				EntryType:  enum.PaymentEntryPayment,
				Amount:     paid,
				Method:     method,
			}
			if err := s.paymentRepo.Create(ctx, entry); err != nil {
				return nil, err
			}
		}
		if due.IsPositive() {
			customer.Balance = customer.Balance.Add(due)
			if err := s.customerRepo.Update(ctx, customer); err != nil {
				return nil, err
			}
			charge := &entity.Payment{
				CustomerID: customer.ID,
				SaleID:     &sale.ID,
				EntryType:  enum.PaymentEntryCharge,
				Amount:     due,
				Method:     method,
				Note:       input.DueNote,
			}
			if err := s.paymentRepo.Create(ctx, charge); err != nil {
				return nil, err
			}
		}
	}

	return sale, nil
}

// resolveCustomer loads the customer when an ID was given. Anonymous
// checkouts, with or without a walk-in name, return nil.
func (s *CheckoutService) resolveCustomer(ctx context.Context, input *CheckoutInput) (*entity.Customer, error) {
	if input.CustomerID == nil {
		return nil, nil
	}
	customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetSale retrieves a sale by ID with its items
func (s *CheckoutService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering and pagination
func (s *CheckoutService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

func saleStatus(paid, due decimal.Decimal) enum.SaleStatus {
	switch {
	case !due.IsPositive():
		return enum.SaleStatusPaid
	case paid.IsPositive():
		return enum.SaleStatusPartial
	default:
		return enum.SaleStatusUnpaid
	}
}
