// Package uom implements the multi-level unit-of-measure model: up to three
// units per product (e.g. piece, pack, case), each expressed as a multiplier
// over the base unit. Stock is always stored in base units; everything here
// is a pure function over unit definitions.
package uom

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is one level of a product's unit hierarchy. Multiplier is the number
// of base units in one unit of this level; the base level always has
// multiplier 1. Price, when set, overrides proportional pricing for the level.
type Unit struct {
	Level      int              `json:"level"`
	Name       string           `json:"name"`
	Multiplier decimal.Decimal  `json:"multiplier"`
	Price      *decimal.Decimal `json:"price,omitempty"`
}

var one = decimal.NewFromInt(1)

// DefaultUnit is the synthetic base unit used when a product carries no unit
// definitions at all.
func DefaultUnit() Unit {
	return Unit{Level: 0, Name: "unit", Multiplier: one}
}

// Normalize validates a raw unit list and returns it sorted by multiplier
// with contiguous levels 0..n. The base unit's multiplier defaults to 1 when
// unset. A base-unit price is not required here; the catalog derives it.
func Normalize(raw []Unit) ([]Unit, error) {
	if len(raw) == 0 {
		return nil, ErrNoUnits
	}
	if len(raw) > 3 {
		return nil, ErrTooManyUnits
	}

	units := make([]Unit, len(raw))
	for i, u := range raw {
		name := strings.TrimSpace(u.Name)
		if name == "" {
			return nil, ErrUnitNameRequired
		}

		multiplier := u.Multiplier
		if multiplier.IsZero() && i == 0 {
			multiplier = one
		}
		if multiplier.LessThan(one) {
			return nil, ErrInvalidMultiplier
		}

		if u.Price != nil && u.Price.IsNegative() {
			return nil, ErrNegativePrice
		}

		units[i] = Unit{Name: name, Multiplier: multiplier, Price: u.Price}
	}

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].Multiplier.LessThan(units[j].Multiplier)
	})

	if !units[0].Multiplier.Equal(one) {
		return nil, ErrBaseMultiplier
	}
	for i := 1; i < len(units); i++ {
		if units[i].Multiplier.LessThanOrEqual(units[i-1].Multiplier) {
			return nil, ErrNonIncreasingMultiplier
		}
	}

	for i := range units {
		units[i].Level = i
	}
	return units, nil
}

// Resolve returns the unit for the requested level. Sale items may reference
// a level that no longer exists on the edited product, so the lookup falls
// back: exact level match, then positional index into the sorted list, then
// the base unit, then a synthetic default.
func Resolve(units []Unit, level int) Unit {
	sorted := sortedByMultiplier(units)
	if len(sorted) == 0 {
		return DefaultUnit()
	}
	for _, u := range sorted {
		if u.Level == level {
			return u
		}
	}
	if level >= 0 && level < len(sorted) {
		return sorted[level]
	}
	return sorted[0]
}

// ToBaseQuantity converts a unit-level quantity to base units. The quantity
// must be non-negative, and strictly positive unless allowZero is set.
func ToBaseQuantity(quantity decimal.Decimal, units []Unit, level int, allowZero bool) (decimal.Decimal, error) {
	if quantity.IsNegative() {
		return decimal.Zero, ErrInvalidQuantity
	}
	if quantity.IsZero() && !allowZero {
		return decimal.Zero, ErrZeroQuantity
	}
	unit := Resolve(units, level)
	return quantity.Mul(unit.Multiplier), nil
}

// UnitPrice returns the selling price for one unit of the given level: the
// unit's explicit price when set, otherwise the base price scaled by the
// multiplier. Explicit prices let a case sell at a discount versus per-piece.
func UnitPrice(unit Unit, basePrice decimal.Decimal) decimal.Decimal {
	if unit.Price != nil {
		return *unit.Price
	}
	return basePrice.Mul(unit.Multiplier)
}

// BaseUnit returns the smallest unit, or the synthetic default when none exist.
func BaseUnit(units []Unit) Unit {
	sorted := sortedByMultiplier(units)
	if len(sorted) == 0 {
		return DefaultUnit()
	}
	return sorted[0]
}

// BaseUnitName returns the name of the smallest unit.
func BaseUnitName(units []Unit) string {
	return BaseUnit(units).Name
}

// BreakdownEntry is one denomination of a stock breakdown.
type BreakdownEntry struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// StockBreakdown decomposes a base-unit quantity into counts of the largest
// denominations first (e.g. 57 pieces with a 24-piece case and a 10-piece
// pack becomes 2 cases, 0 packs, 9 pieces). The smallest unit absorbs the
// remainder, fractional or not.
func StockBreakdown(units []Unit, baseQuantity decimal.Decimal) []BreakdownEntry {
	sorted := sortedByMultiplier(units)
	if len(sorted) == 0 {
		return []BreakdownEntry{{Name: "unit", Quantity: baseQuantity}}
	}

	remaining := baseQuantity
	breakdown := make([]BreakdownEntry, 0, len(sorted))

	for i := len(sorted) - 1; i >= 0; i-- {
		unit := sorted[i]
		smallest := i == 0
		count := remaining
		if !smallest {
			count = remaining.Div(unit.Multiplier).Floor()
		}
		remaining = remaining.Sub(count.Mul(unit.Multiplier))
		if count.IsPositive() || smallest {
			breakdown = append(breakdown, BreakdownEntry{Name: unit.Name, Quantity: count})
		}
	}

	return breakdown
}

func sortedByMultiplier(units []Unit) []Unit {
	sorted := make([]Unit, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Multiplier.LessThan(sorted[j].Multiplier)
	})
	return sorted
}
