package uom

import "errors"

var (
	// ErrNoUnits is returned when a product defines no units at all.
	ErrNoUnits = errors.New("at least one unit definition is required")
	// ErrTooManyUnits is returned for more than three unit levels.
	ErrTooManyUnits = errors.New("a maximum of three units is supported")
	// ErrUnitNameRequired is returned when a unit has an empty name.
	ErrUnitNameRequired = errors.New("each unit requires a name")
	// ErrInvalidMultiplier is returned for multipliers below 1.
	ErrInvalidMultiplier = errors.New("unit multipliers must be at least 1")
	// ErrBaseMultiplier is returned when the smallest unit does not convert 1:1.
	ErrBaseMultiplier = errors.New("base unit must have multiplier 1")
	// ErrNonIncreasingMultiplier is returned when a higher level does not
	// convert to strictly more base units than the previous level.
	ErrNonIncreasingMultiplier = errors.New("each higher unit must convert to more base units than the previous level")
	// ErrNegativePrice is returned for unit prices below zero.
	ErrNegativePrice = errors.New("unit prices must be non-negative")
	// ErrInvalidQuantity is returned for negative quantities, or zero
	// quantities where zero is not allowed.
	ErrInvalidQuantity = errors.New("quantity must be non-negative")
	// ErrZeroQuantity is returned when a strictly positive quantity is required.
	ErrZeroQuantity = errors.New("quantity must be greater than zero")
)
