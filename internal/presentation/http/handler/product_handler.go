package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/application/service"
	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/internal/domain/uom"
	"github.com/pasalhq/pasal-api/internal/presentation/http/dto/request"
	"github.com/pasalhq/pasal-api/internal/presentation/http/dto/response"
	"github.com/pasalhq/pasal-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// List handles listing products with filters
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		Category:   filter.Category,
		LowStock:   filter.StockStatus == "low",
		OutOfStock: filter.StockStatus == "out",
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}

	if filter.MinPrice != "" {
		if min, err := decimal.NewFromString(filter.MinPrice); err == nil {
			params.MinPrice = &min
		}
	}
	if filter.MaxPrice != "" {
		if max, err := decimal.NewFromString(filter.MaxPrice); err == nil {
			params.MaxPrice = &max
		}
	}

	result, err := h.catalogService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:              req.Name,
		Category:          req.Category,
		Description:       req.Description,
		ImageURL:          req.ImageURL,
		Price:             req.Price,
		Quantity:          req.Quantity,
		QuantityUnitLevel: req.QuantityUnitLevel,
		Units:             req.Units,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles partial product updates
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateProductInput{
		Name:              req.Name,
		Category:          req.Category,
		Description:       req.Description,
		ImageURL:          req.ImageURL,
		Price:             req.Price,
		Quantity:          req.Quantity,
		QuantityUnitLevel: req.QuantityUnitLevel,
	}
	if req.Units != nil {
		units := []uom.Unit(*req.Units)
		input.Units = &units
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Purchase handles recording incoming stock for a product
func (h *ProductHandler) Purchase(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.catalogService.RecordPurchase(c.Request.Context(), id, req.Quantity, req.UnitLevel)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase recorded successfully", product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Categories handles listing the distinct categories in use
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}
