package uom

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// pcPackCase is the canonical three-level hierarchy used across tests:
// 1 pack = 10 pc, 1 case = 24 pc.
func pcPackCase() []Unit {
	return []Unit{
		{Level: 0, Name: "pc", Multiplier: dec("1"), Price: decPtr("2")},
		{Level: 1, Name: "pack", Multiplier: dec("10"), Price: decPtr("18")},
		{Level: 2, Name: "case", Multiplier: dec("24")},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		units   []Unit
		wantErr error
	}{
		{
			name:    "empty list",
			units:   nil,
			wantErr: ErrNoUnits,
		},
		{
			name: "more than three levels",
			units: []Unit{
				{Name: "pc", Multiplier: dec("1")},
				{Name: "pack", Multiplier: dec("10")},
				{Name: "case", Multiplier: dec("24")},
				{Name: "pallet", Multiplier: dec("240")},
			},
			wantErr: ErrTooManyUnits,
		},
		{
			name: "missing name",
			units: []Unit{
				{Name: "  ", Multiplier: dec("1")},
			},
			wantErr: ErrUnitNameRequired,
		},
		{
			name: "multiplier below one",
			units: []Unit{
				{Name: "pc", Multiplier: dec("1")},
				{Name: "half", Multiplier: dec("0.5")},
			},
			wantErr: ErrInvalidMultiplier,
		},
		{
			name: "no base-level multiplier",
			units: []Unit{
				{Name: "pack", Multiplier: dec("10")},
				{Name: "case", Multiplier: dec("24")},
			},
			wantErr: ErrBaseMultiplier,
		},
		{
			name: "duplicate multipliers",
			units: []Unit{
				{Name: "pc", Multiplier: dec("1")},
				{Name: "bag", Multiplier: dec("10")},
				{Name: "pack", Multiplier: dec("10")},
			},
			wantErr: ErrNonIncreasingMultiplier,
		},
		{
			name: "negative price",
			units: []Unit{
				{Name: "pc", Multiplier: dec("1"), Price: decPtr("-2")},
			},
			wantErr: ErrNegativePrice,
		},
		{
			name:  "valid three levels",
			units: pcPackCase(),
		},
		{
			name: "base multiplier defaults to 1",
			units: []Unit{
				{Name: "pc"},
				{Name: "pack", Multiplier: dec("10")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.units)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			for i, u := range got {
				if u.Level != i {
					t.Errorf("level[%d] = %d, want contiguous ascending levels", i, u.Level)
				}
				if i > 0 && !got[i].Multiplier.GreaterThan(got[i-1].Multiplier) {
					t.Errorf("multiplier[%d] not strictly increasing", i)
				}
			}
			if !got[0].Multiplier.Equal(decimal.NewFromInt(1)) {
				t.Errorf("base multiplier = %s, want 1", got[0].Multiplier)
			}
		})
	}
}

func TestNormalizeSortsByMultiplier(t *testing.T) {
	units, err := Normalize([]Unit{
		{Name: "case", Multiplier: dec("24")},
		{Name: "pc", Multiplier: dec("1")},
		{Name: "pack", Multiplier: dec("10")},
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := []string{"pc", "pack", "case"}
	for i, name := range want {
		if units[i].Name != name {
			t.Errorf("units[%d].Name = %q, want %q", i, units[i].Name, name)
		}
	}
}

func TestResolveFallbackChain(t *testing.T) {
	units := pcPackCase()

	tests := []struct {
		name     string
		units    []Unit
		level    int
		wantName string
	}{
		{"exact level match", units, 1, "pack"},
		{"base level", units, 0, "pc"},
		{"positional fallback", []Unit{
			{Level: 5, Name: "pc", Multiplier: dec("1")},
			{Level: 7, Name: "pack", Multiplier: dec("10")},
		}, 1, "pack"},
		{"out of range falls back to base", units, 9, "pc"},
		{"negative level falls back to base", units, -1, "pc"},
		{"no units yields synthetic default", nil, 2, "unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.units, tt.level)
			if got.Name != tt.wantName {
				t.Errorf("Resolve(level=%d).Name = %q, want %q", tt.level, got.Name, tt.wantName)
			}
		})
	}
}

func TestResolveBaseAlwaysMultiplierOne(t *testing.T) {
	lists := [][]Unit{
		nil,
		{{Level: 0, Name: "pc", Multiplier: dec("1")}},
		pcPackCase(),
	}
	for _, units := range lists {
		if got := Resolve(units, 0); !got.Multiplier.Equal(decimal.NewFromInt(1)) {
			t.Errorf("Resolve(%v, 0).Multiplier = %s, want 1", units, got.Multiplier)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	units := pcPackCase()
	first := Resolve(units, 2)
	second := Resolve(units, 2)
	if first.Name != second.Name || !first.Multiplier.Equal(second.Multiplier) {
		t.Errorf("Resolve not stable: %v vs %v", first, second)
	}
}

func TestToBaseQuantity(t *testing.T) {
	units := pcPackCase()

	tests := []struct {
		name      string
		quantity  string
		level     int
		allowZero bool
		want      string
		wantErr   error
	}{
		{"one pack is ten pieces", "1", 1, false, "10", nil},
		{"one case is twenty-four pieces", "1", 2, false, "24", nil},
		{"base level passes through", "7", 0, false, "7", nil},
		{"fractional quantity scales", "0.5", 1, false, "5", nil},
		{"zero allowed on create", "0", 0, true, "0", nil},
		{"zero rejected otherwise", "0", 0, false, "", ErrZeroQuantity},
		{"negative rejected", "-3", 1, true, "", ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseQuantity(dec(tt.quantity), units, tt.level, tt.allowZero)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ToBaseQuantity() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ToBaseQuantity() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestToBaseQuantityLinear(t *testing.T) {
	units := pcPackCase()
	q := dec("3.5")

	single, err := ToBaseQuantity(q, units, 1, false)
	if err != nil {
		t.Fatalf("ToBaseQuantity() error = %v", err)
	}
	double, err := ToBaseQuantity(q.Mul(dec("2")), units, 1, false)
	if err != nil {
		t.Fatalf("ToBaseQuantity() error = %v", err)
	}
	if !double.Equal(single.Mul(dec("2"))) {
		t.Errorf("linearity violated: 2q -> %s, 2*(q->) = %s", double, single.Mul(dec("2")))
	}
}

func TestUnitPrice(t *testing.T) {
	basePrice := dec("2")
	units := pcPackCase()

	// Explicit pack price wins over proportional scaling.
	if got := UnitPrice(Resolve(units, 1), basePrice); !got.Equal(dec("18")) {
		t.Errorf("pack price = %s, want explicit 18", got)
	}

	// The case has no explicit price, so it scales off the base.
	if got := UnitPrice(Resolve(units, 2), basePrice); !got.Equal(dec("48")) {
		t.Errorf("case price = %s, want derived 48", got)
	}
}

func TestStockBreakdown(t *testing.T) {
	units := pcPackCase()

	got := StockBreakdown(units, dec("57"))
	// 2 cases (48) + 0 packs + 9 pc; zero-count middle levels are omitted.
	want := []BreakdownEntry{
		{Name: "case", Quantity: dec("2")},
		{Name: "pc", Quantity: dec("9")},
	}
	if len(got) != len(want) {
		t.Fatalf("breakdown = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].Name != want[i].Name || !got[i].Quantity.Equal(want[i].Quantity) {
			t.Errorf("breakdown[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Without units the full quantity lands on the synthetic base.
	fallback := StockBreakdown(nil, dec("12"))
	if len(fallback) != 1 || fallback[0].Name != "unit" || !fallback[0].Quantity.Equal(dec("12")) {
		t.Errorf("fallback breakdown = %v", fallback)
	}
}

func TestBaseUnitName(t *testing.T) {
	if got := BaseUnitName(pcPackCase()); got != "pc" {
		t.Errorf("BaseUnitName() = %q, want %q", got, "pc")
	}
	if got := BaseUnitName(nil); got != "unit" {
		t.Errorf("BaseUnitName(nil) = %q, want %q", got, "unit")
	}
}
