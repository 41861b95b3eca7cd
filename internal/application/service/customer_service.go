package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/pkg/apperror"
	"github.com/pasalhq/pasal-api/pkg/pagination"
)

// recentSalesLimit bounds the history shown on the customer detail view.
const recentSalesLimit = 20

// CustomerService handles customer account operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, saleRepo repository.SaleRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, saleRepo: saleRepo}
}

// CustomerInput represents the create/update customer input
type CustomerInput struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

// CustomerDetail bundles a customer with their open debt and recent history
type CustomerDetail struct {
	Customer    *entity.Customer `json:"customer"`
	OpenSales   []entity.Sale    `json:"open_sales"`
	RecentSales []entity.Sale    `json:"recent_sales"`
}

// CreateCustomer stores a new customer account
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer := &entity.Customer{
		Name:    name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		Notes:   input.Notes,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// GetCustomerDetail returns the customer with open sales and recent history
func (s *CustomerService) GetCustomerDetail(ctx context.Context, id uuid.UUID) (*CustomerDetail, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	openSales, err := s.saleRepo.ListOpenByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	recentSales, err := s.saleRepo.ListRecentByCustomer(ctx, id, recentSalesLimit)
	if err != nil {
		return nil, err
	}

	return &CustomerDetail{
		Customer:    customer,
		OpenSales:   openSales,
		RecentSales: recentSales,
	}, nil
}

// UpdateCustomer updates the customer's contact details
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer.Name = name
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.Address = input.Address
	customer.Notes = input.Notes

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer. Accounts still carrying debt cannot
// be deleted.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}

	if customer.HasOutstandingBalance() {
		return apperror.NewBadRequestError("Customer has an outstanding balance and cannot be deleted")
	}

	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with search and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
