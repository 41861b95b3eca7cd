package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/pasalhq/pasal-api/internal/domain/uom"
	"github.com/shopspring/decimal"
)

func TestProductMarshalJSONIncludesUnitProjections(t *testing.T) {
	price := decimal.NewFromInt(2)
	product := Product{
		ID:       uuid.New(),
		Name:     "Rice",
		Category: "staples",
		Price:    price,
		Quantity: decimal.NewFromInt(25),
		Units: []uom.Unit{
			{Level: 0, Name: "kg", Multiplier: decimal.NewFromInt(1), Price: &price},
			{Level: 1, Name: "sack", Multiplier: decimal.NewFromInt(10)},
		},
	}

	raw, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("marshal product: %v", err)
	}

	var payload struct {
		Name           string `json:"name"`
		BaseUnitName   string `json:"base_unit_name"`
		StockBreakdown []struct {
			Name     string          `json:"name"`
			Quantity decimal.Decimal `json:"quantity"`
		} `json:"stock_breakdown"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	if payload.Name != "Rice" {
		t.Errorf("expected name Rice, got %s", payload.Name)
	}
	if payload.BaseUnitName != "kg" {
		t.Errorf("expected base unit kg, got %s", payload.BaseUnitName)
	}
	if len(payload.StockBreakdown) != 2 {
		t.Fatalf("expected 2 breakdown entries, got %d", len(payload.StockBreakdown))
	}
	if payload.StockBreakdown[0].Name != "sack" || !payload.StockBreakdown[0].Quantity.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected 2 sacks first, got %s %s", payload.StockBreakdown[0].Quantity, payload.StockBreakdown[0].Name)
	}
	if payload.StockBreakdown[1].Name != "kg" || !payload.StockBreakdown[1].Quantity.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected 5 kg remainder, got %s %s", payload.StockBreakdown[1].Quantity, payload.StockBreakdown[1].Name)
	}
}
