package catalog

import (
	"cmp"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Comparator returns the ordering for key. ok is false for an empty or
// unknown key, meaning the input order must be kept.
func Comparator(key domain.SortKey) (cmpFn func(a, b domain.Product) int, ok bool) {
	switch key {
	case domain.SortPriceAsc:
		return func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		}, true
	case domain.SortPriceDesc:
		return func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		}, true
	case domain.SortRatingDesc:
		return func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		}, true
	case domain.SortNewest:
		return func(a, b domain.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}, true
	}
	return nil, false
}

// Sort returns a sorted copy of ps. Equal elements keep their relative
// order.
func Sort(ps []domain.Product, key domain.SortKey) []domain.Product {
	out := slices.Clone(ps)
	if cmpFn, ok := Comparator(key); ok {
		slices.SortStableFunc(out, cmpFn)
	}
	return out
}
