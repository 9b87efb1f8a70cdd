package domain

import "github.com/go-faster/errors"

// Validation errors returned by the constructors and by Cart.AddItem.
var (
	ErrNullProduct      = errors.New("product must not be nil")
	ErrInvalidProduct   = errors.New("product code and description are required")
	ErrInvalidUnitPrice = errors.New("unit price must not be nil or negative")
	ErrInvalidQuantity  = errors.New("quantity must not be negative")
)
