package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

// A CatalogReader gives read-only access to the session catalog.
type CatalogReader interface {
	Products() []domain.Product
	Product(id string) (domain.Product, bool)
}

// A CatalogSource loads products used to seed a catalog.
type CatalogSource interface {
	ReadProducts(context.Context) ([]domain.Product, error)
}

// A CatalogSink stores a catalog snapshot.
type CatalogSink interface {
	WriteProducts(context.Context, []domain.Product) error
}
