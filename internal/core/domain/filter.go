package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortNone       SortKey = ""
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
)

func (k SortKey) Known() bool {
	switch k {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return true
	}
	return false
}

// A Filter narrows a catalog query. The zero value matches every product.
type Filter struct {
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Category    string
	SubCategory string
	Sort        SortKey
}

// Validate reports caller errors in f. Query never requires a valid
// filter: an inverted price range simply matches nothing.
func (f Filter) Validate() error {
	const op = "Filter.Validate"

	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return fmt.Errorf("%s: min: %w", op, ErrNegativePrice)
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return fmt.Errorf("%s: max: %w", op, ErrNegativePrice)
	}
	if f.InvertedRange() {
		return fmt.Errorf("%s: %w", op, ErrInvalidPriceRange)
	}
	if f.Sort != SortNone && !f.Sort.Known() {
		return fmt.Errorf("%s: %q: %w", op, f.Sort, ErrUnknownSortKey)
	}
	if f.Category != "" && f.SubCategory != "" {
		if c, ok := LookupCategory(f.Category); ok && !c.HasSub(f.SubCategory) {
			return fmt.Errorf(
				"%s: %s/%s: %w", op, f.Category, f.SubCategory, ErrUnknownCategory,
			)
		}
	}
	return nil
}

// InvertedRange reports whether both bounds are set and min > max.
func (f Filter) InvertedRange() bool {
	return f.MinPrice != nil && f.MaxPrice != nil &&
		f.MinPrice.GreaterThan(*f.MaxPrice)
}

// Price is a helper for building optional bounds.
func Price(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}
