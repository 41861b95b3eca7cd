package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// In-memory fakes for the repository interfaces. They implement just
// enough behavior for the service tests, including the all-or-nothing
// semantics of the conditional stock decrement.

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeProductRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) CountLowStock(ctx context.Context, threshold decimal.Decimal) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.Quantity.LessThan(threshold) {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.products {
		total = total.Add(p.Price.Mul(p.Quantity))
	}
	return total, nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]decimal.Decimal) ([]uuid.UUID, error) {
	var failedIDs []uuid.UUID
	for id, amount := range decrements {
		p, ok := r.products[id]
		if !ok || p.Quantity.LessThan(amount) {
			failedIDs = append(failedIDs, id)
		}
	}
	if len(failedIDs) > 0 {
		return failedIDs, nil
	}
	for id, amount := range decrements {
		r.products[id].Quantity = r.products[id].Quantity.Sub(amount)
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]decimal.Decimal) error {
	for id, amount := range increments {
		if p, ok := r.products[id]; ok {
			p.Quantity = p.Quantity.Add(amount)
		}
	}
	return nil
}

type fakeSaleRepo struct {
	sales     map[uuid.UUID]*entity.Sale
	createErr error
}

func newFakeSaleRepo(sales ...*entity.Sale) *fakeSaleRepo {
	repo := &fakeSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
	for _, s := range sales {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		repo.sales[s.ID] = s
	}
	return repo
}

func (r *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListForExport(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSaleRepo) ListOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		if s.CustomerID != nil && *s.CustomerID == customerID && s.DueAmount.IsPositive() {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSaleRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		if s.CustomerID != nil && *s.CustomerID == customerID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSaleRepo) ListRecentByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		if s.CustomerID != nil && *s.CustomerID == customerID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSaleRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.sales)), nil
}

func (r *fakeSaleRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.sales {
		total = total.Add(s.Total)
	}
	return total, nil
}

func (r *fakeSaleRepo) TotalReceivables(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.sales {
		total = total.Add(s.DueAmount)
	}
	return total, nil
}

func (r *fakeSaleRepo) TopSellingProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	agg := make(map[uuid.UUID]*repository.TopProduct)
	for _, s := range r.sales {
		for _, item := range s.Items {
			tp, ok := agg[item.ProductID]
			if !ok {
				tp = &repository.TopProduct{ProductID: item.ProductID, ProductName: item.ProductName}
				agg[item.ProductID] = tp
			}
			tp.BaseQuantity = tp.BaseQuantity.Add(item.BaseQuantity)
			tp.Revenue = tp.Revenue.Add(item.LineTotal)
		}
	}
	var out []repository.TopProduct
	for _, tp := range agg {
		out = append(out, *tp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BaseQuantity.GreaterThan(out[j].BaseQuantity) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		repo.customers[c.ID] = c
	}
	return repo
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakePaymentRepo struct {
	payments []entity.Payment
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings *entity.StoreSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: entity.DefaultStoreSettings()}
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.StoreSettings, error) {
	return r.settings, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, settings *entity.StoreSettings) error {
	r.settings = settings
	return nil
}
