package cart

import (
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
)

// An Event is a user action on a cart.
type Event interface {
	cartEvent()
}

type (
	// AddItemEvent adds units of Product. An empty LineItemID gets a
	// random one.
	AddItemEvent struct {
		Product    domain.Product
		Quantity   int
		Selections map[string]string
		LineItemID string
	}

	RemoveItemEvent struct {
		LineItemID string
	}

	SetQuantityEvent struct {
		LineItemID string
		Quantity   int
	}

	ClearEvent struct{}
)

func (AddItemEvent) cartEvent()     {}
func (RemoveItemEvent) cartEvent()  {}
func (SetQuantityEvent) cartEvent() {}
func (ClearEvent) cartEvent()       {}

// Apply returns the cart that results from e. On error c is returned
// unchanged.
func Apply(c domain.Cart, e Event) (domain.Cart, error) {
	const op = "cart.Apply"

	switch e := e.(type) {
	case AddItemEvent:
		if e.LineItemID == "" {
			return AddItem(c, e.Product, e.Quantity, e.Selections)
		}
		id := func() string { return e.LineItemID }
		return AddItemWithID(c, e.Product, e.Quantity, e.Selections, id)
	case RemoveItemEvent:
		return RemoveItem(c, e.LineItemID), nil
	case SetQuantityEvent:
		return SetQuantity(c, e.LineItemID, e.Quantity), nil
	case ClearEvent:
		return Clear(c), nil
	}
	return c, fmt.Errorf("%s: unexpected event %T", op, e)
}

// Replay folds events into an empty cart, stopping at the first error.
func Replay(events ...Event) (domain.Cart, error) {
	c := Clear(domain.Cart{})
	for _, e := range events {
		var err error
		if c, err = Apply(c, e); err != nil {
			return c, err
		}
	}
	return c, nil
}
