package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/application/service"
	"github.com/pasalhq/pasal-api/internal/domain/enum"
	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/internal/presentation/http/dto/request"
	"github.com/pasalhq/pasal-api/internal/presentation/http/dto/response"
	"github.com/pasalhq/pasal-api/pkg/pagination"
)

// SaleHandler handles sale and checkout HTTP requests
type SaleHandler struct {
	checkoutService *service.CheckoutService
	reportService   *service.ReportService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(checkoutService *service.CheckoutService, reportService *service.ReportService) *SaleHandler {
	return &SaleHandler{checkoutService: checkoutService, reportService: reportService}
}

// Checkout handles turning a cart into a sale
func (h *SaleHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.CheckoutItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CheckoutItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitLevel: item.UnitLevel,
		}
	}

	sale, err := h.checkoutService.Checkout(c.Request.Context(), &service.CheckoutInput{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		Items:         items,
		Discount:      req.DiscountAmount,
		DiscountNote:  req.DiscountNote,
		Received:      req.AmountReceived,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		DueNote:       req.DueNote,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", sale)
}

// Get handles retrieving a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.checkoutService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing sales with filters
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}
	applySaleFilters(params, filter.CustomerID, filter.Status, filter.From, filter.To)

	result, err := h.checkoutService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Export handles downloading the sales history as csv, xlsx or json
func (h *SaleHandler) Export(c *gin.Context) {
	var filter request.SaleExportRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{}
	applySaleFilters(params, filter.CustomerID, filter.Status, filter.From, filter.To)

	file, err := h.reportService.ExportSales(c.Request.Context(), params, filter.Format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(200, file.ContentType, file.Content)
}

// applySaleFilters parses the shared sale filter query parameters.
// Invalid values are ignored rather than rejected.
func applySaleFilters(params *repository.SaleFilterParams, customerID, status, from, to string) {
	if customerID != "" {
		if id, err := uuid.Parse(customerID); err == nil {
			params.CustomerID = &id
		}
	}
	if status != "" {
		s := enum.SaleStatus(status)
		if s.IsValid() {
			params.Status = s
		}
	}
	if from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			params.From = &t
		} else if t, err := time.Parse("2006-01-02", from); err == nil {
			params.From = &t
		}
	}
	if to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			params.To = &t
		} else if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			params.To = &end
		}
	}
}
