package catalog

import "github.com/niksmo/storefront/internal/core/domain"

// Predicate returns a function reporting whether a product satisfies
// every constraint set in f.
func Predicate(f domain.Filter) func(domain.Product) bool {
	if f.InvertedRange() {
		return func(domain.Product) bool { return false }
	}
	return func(p domain.Product) bool {
		return Matches(f, p)
	}
}

// Matches reports whether p satisfies f. Bounds are inclusive. The
// subcategory constraint only applies together with a category.
func Matches(f domain.Filter, p domain.Product) bool {
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Category != "" {
		if p.Category != f.Category {
			return false
		}
		if f.SubCategory != "" && p.SubCategory != f.SubCategory {
			return false
		}
	}
	return true
}

// Filter returns the products matching f in their original order.
func Filter(ps []domain.Product, f domain.Filter) []domain.Product {
	match := Predicate(f)
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}
