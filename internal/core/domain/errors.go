package domain

import "errors"

var (
	ErrInvalidProduct    = errors.New("invalid product")
	ErrDuplicateProduct  = errors.New("duplicate product id")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrNegativePrice     = errors.New("price bound must not be negative")
	ErrInvalidPriceRange = errors.New("min price is greater than max price")
	ErrUnknownSortKey    = errors.New("unknown sort key")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidLayout     = errors.New("invalid layout")
	ErrInsufficientStock = errors.New("not enough items in stock")
	ErrInvalidSelection  = errors.New("invalid specification selection")
)
