package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pasalhq/pasal-api/internal/domain/entity"
	"github.com/pasalhq/pasal-api/internal/domain/repository"
	"github.com/pasalhq/pasal-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// Export formats accepted by the sales export endpoint
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
	ExportFormatJSON = "json"
)

// exportHeader is the column layout shared by the CSV and XLSX exports.
// One row is written per sold line; the sale-level tax and total repeat
// on every row of that sale.
var exportHeader = []string{
	"saleId", "date", "product",
	"unitQuantity", "unitLabel", "baseQuantity", "baseUnitLabel",
	"unitLevel", "unitMultiplier", "pricePerBaseUnit", "unitPrice",
	"subtotal", "tax", "total", "currency",
}

// ReportService renders sales history into downloadable files
type ReportService struct {
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
}

// NewReportService creates a new report service
func NewReportService(saleRepo repository.SaleRepository, settingsRepo repository.SettingsRepository) *ReportService {
	return &ReportService{saleRepo: saleRepo, settingsRepo: settingsRepo}
}

// ExportFile is a rendered export ready to be served as a download
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportSales renders the matching sales in the requested format
func (s *ReportService) ExportSales(ctx context.Context, params *repository.SaleFilterParams, format string) (*ExportFile, error) {
	sales, err := s.saleRepo.ListForExport(ctx, params)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	currency := settings.Currency

	stamp := time.Now().Format("2006-01-02")
	switch format {
	case ExportFormatCSV, "":
		content, err := s.renderCSV(sales, currency)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "text/csv",
			Filename:    "sales-" + stamp + ".csv",
		}, nil
	case ExportFormatXLSX:
		content, err := s.renderXLSX(sales, currency)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    "sales-" + stamp + ".xlsx",
		}, nil
	case ExportFormatJSON:
		content, err := json.Marshal(sales)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/json",
			Filename:    "sales-" + stamp + ".json",
		}, nil
	default:
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown export format: %s", format))
	}
}

func (s *ReportService) renderCSV(sales []entity.Sale, currency string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, sale := range sales {
		for _, row := range exportRows(&sale, currency) {
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportService) renderXLSX(sales []entity.Sale, currency string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sales"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	rowIdx := 2
	for _, sale := range sales {
		for _, row := range exportRows(&sale, currency) {
			cells := make([]interface{}, len(row))
			for i, v := range row {
				cells[i] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
				return nil, err
			}
			rowIdx++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportRows flattens a sale into one row per sold line. Sales persisted
// before a currency change keep the currency they were made in.
func exportRows(sale *entity.Sale, currency string) [][]string {
	if sale.Currency != "" {
		currency = sale.Currency
	}
	rows := make([][]string, 0, len(sale.Items))
	for _, item := range sale.Items {
		rows = append(rows, []string{
			sale.ID.String(),
			sale.CreatedAt.Format(time.RFC3339),
			item.ProductName,
			item.UnitQuantity.String(),
			item.UnitLabel,
			item.BaseQuantity.String(),
			item.BaseUnitLabel,
			fmt.Sprintf("%d", item.UnitLevel),
			item.UnitMultiplier.String(),
			item.PricePerBaseUnit.String(),
			item.UnitPrice.String(),
			item.LineTotal.String(),
			sale.Tax.String(),
			sale.Total.String(),
			currency,
		})
	}
	return rows
}
