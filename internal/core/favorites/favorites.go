package favorites

import (
	"fmt"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Toggle removes p when it is already a favorite and adds it otherwise.
// It returns the new set and its size.
func Toggle(f domain.Favorites, p domain.Product) (domain.Favorites, int) {
	items := slices.Clone(f.Items)
	if i := f.IndexOf(p.ProductID); i >= 0 {
		items = slices.Delete(items, i, i+1)
	} else {
		items = append(items, p)
	}
	next := build(items)
	return next, next.Count
}

func Clear(domain.Favorites) domain.Favorites {
	return build(nil)
}

func build(items []domain.Product) domain.Favorites {
	if items == nil {
		items = []domain.Product{}
	}
	return domain.Favorites{Items: items, Count: len(items)}
}

type Event interface {
	favoritesEvent()
}

type (
	ToggleEvent struct {
		Product domain.Product
	}

	ClearEvent struct{}
)

func (ToggleEvent) favoritesEvent() {}
func (ClearEvent) favoritesEvent()  {}

func Apply(f domain.Favorites, e Event) (domain.Favorites, error) {
	const op = "favorites.Apply"

	switch e := e.(type) {
	case ToggleEvent:
		next, _ := Toggle(f, e.Product)
		return next, nil
	case ClearEvent:
		return Clear(f), nil
	}
	return f, fmt.Errorf("%s: unexpected event %T", op, e)
}
