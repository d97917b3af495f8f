package domain

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID      string
	Name           string
	Description    string
	Price          decimal.Decimal
	OriginalPrice  *decimal.Decimal
	Category       string
	SubCategory    string
	Images         []string
	Tags           []string
	Stock          int
	Rating         float64
	Reviews        int
	Specifications map[string][]string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const MaxRating = 5

// Validate reports whether p can be placed into a catalog.
func (p Product) Validate() error {
	switch {
	case p.ProductID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: %s: negative price", ErrInvalidProduct, p.ProductID)
	case p.OriginalPrice != nil && p.OriginalPrice.IsNegative():
		return fmt.Errorf("%w: %s: negative original price", ErrInvalidProduct, p.ProductID)
	case p.Stock < 0:
		return fmt.Errorf("%w: %s: negative stock", ErrInvalidProduct, p.ProductID)
	case p.Reviews < 0:
		return fmt.Errorf("%w: %s: negative reviews", ErrInvalidProduct, p.ProductID)
	case math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > MaxRating:
		return fmt.Errorf("%w: %s: rating out of range", ErrInvalidProduct, p.ProductID)
	}
	return nil
}

// PrimaryImage returns the first image reference or empty string.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ValidateSelections reports whether sel picks exactly one available
// value for every specification of p and nothing else.
func (p Product) ValidateSelections(sel map[string]string) error {
	for name := range sel {
		if _, ok := p.Specifications[name]; !ok {
			return fmt.Errorf("%w: %s: unknown %q", ErrInvalidSelection, p.ProductID, name)
		}
	}
	for name, values := range p.Specifications {
		v, ok := sel[name]
		if !ok {
			return fmt.Errorf("%w: %s: %q not chosen", ErrInvalidSelection, p.ProductID, name)
		}
		if !slices.Contains(values, v) {
			return fmt.Errorf(
				"%w: %s: %q is not a %q option", ErrInvalidSelection, p.ProductID, v, name,
			)
		}
	}
	return nil
}
