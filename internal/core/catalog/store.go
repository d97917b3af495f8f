package catalog

import (
	"fmt"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogReader = (*Store)(nil)

// A Store is a read-only catalog snapshot seeded once per session.
type Store struct {
	products []domain.Product
	byID     map[string]int
}

// NewStore validates ps and copies it into a new Store. Insertion order
// is kept and serves as the tie-break order for sorting.
func NewStore(ps []domain.Product) (*Store, error) {
	const op = "catalog.NewStore"

	s := &Store{
		products: slices.Clone(ps),
		byID:     make(map[string]int, len(ps)),
	}
	for i, p := range s.products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, ok := s.byID[p.ProductID]; ok {
			return nil, fmt.Errorf(
				"%s: %q: %w", op, p.ProductID, domain.ErrDuplicateProduct,
			)
		}
		s.byID[p.ProductID] = i
	}
	return s, nil
}

// Products returns a copy of the catalog in insertion order.
func (s *Store) Products() []domain.Product {
	return slices.Clone(s.products)
}

func (s *Store) Product(id string) (domain.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *Store) Len() int {
	return len(s.products)
}

// Query runs the query pipeline over the store snapshot.
func (s *Store) Query(f domain.Filter, page, pageSize int) Page {
	return QueryPage(s.products, f, page, pageSize)
}
