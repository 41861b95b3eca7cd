package service

import (
	"context"

	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// topSellersLimit is how many best sellers the dashboard shows.
const topSellersLimit = 5

// DashboardService aggregates store-wide figures for the overview page
type DashboardService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *DashboardService {
	return &DashboardService{productRepo: productRepo, saleRepo: saleRepo}
}

// DashboardStats is the store overview snapshot. Inventory value is
// priced at the base unit; top sellers rank by sold base quantity.
type DashboardStats struct {
	TotalProducts       int64                   `json:"total_products"`
	TotalInventoryValue decimal.Decimal         `json:"total_inventory_value"`
	LowStockCount       int64                   `json:"low_stock_count"`
	TotalSales          decimal.Decimal         `json:"total_sales"`
	SaleCount           int64                   `json:"sale_count"`
	TotalReceivables    decimal.Decimal         `json:"total_receivables"`
	TopProducts         []repository.TopProduct `json:"top_products"`
}

// GetStats assembles the dashboard snapshot
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	totalProducts, err := s.productRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	inventoryValue, err := s.productRepo.TotalInventoryValue(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.CountLowStock(ctx, decimal.NewFromInt(5))
	if err != nil {
		return nil, err
	}

	totalSales, err := s.saleRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	saleCount, err := s.saleRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	receivables, err := s.saleRepo.TotalReceivables(ctx)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.saleRepo.TopSellingProducts(ctx, topSellersLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:       totalProducts,
		TotalInventoryValue: inventoryValue,
		LowStockCount:       lowStock,
		TotalSales:          totalSales,
		SaleCount:           saleCount,
		TotalReceivables:    receivables,
		TopProducts:         topProducts,
	}, nil
}
