// Package cart implements the cart aggregator. Every operation takes a
// cart snapshot and returns a new one; the input is never modified.
package cart

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddItem is AddItemWithID with random line item ids.
func AddItem(
	c domain.Cart, p domain.Product, qty int, selections map[string]string,
) (domain.Cart, error) {
	return AddItemWithID(c, p, qty, selections, uuid.NewString)
}

// AddItemWithID adds qty units of p. Units are merged into an existing
// line item with the same product and selections; otherwise a new line
// item is appended with the current product price as its unit price and
// an id from newID. newID is not called when units are merged.
func AddItemWithID(
	c domain.Cart,
	p domain.Product,
	qty int,
	selections map[string]string,
	newID func() string,
) (domain.Cart, error) {
	const op = "cart.AddItem"

	if qty < 1 {
		return c, fmt.Errorf("%s: %d: %w", op, qty, domain.ErrInvalidQuantity)
	}

	items := cloneItems(c.Items)
	if i := findMatch(items, p.ProductID, selections); i >= 0 {
		items[i].Quantity += qty
		return build(items), nil
	}

	items = append(items, domain.LineItem{
		ID:         newID(),
		ProductID:  p.ProductID,
		Name:       p.Name,
		Image:      p.PrimaryImage(),
		Quantity:   qty,
		Price:      p.Price,
		Selections: maps.Clone(selections),
	})
	return build(items), nil
}

// RemoveItem drops the line item with lineItemID. Unknown ids are
// ignored.
func RemoveItem(c domain.Cart, lineItemID string) domain.Cart {
	items := slices.DeleteFunc(cloneItems(c.Items), func(li domain.LineItem) bool {
		return li.ID == lineItemID
	})
	return build(items)
}

// SetQuantity sets the quantity of a line item, removing it when qty is
// not positive. Unknown ids are ignored.
func SetQuantity(c domain.Cart, lineItemID string, qty int) domain.Cart {
	if qty <= 0 {
		return RemoveItem(c, lineItemID)
	}
	items := cloneItems(c.Items)
	for i := range items {
		if items[i].ID == lineItemID {
			items[i].Quantity = qty
		}
	}
	return build(items)
}

func Clear(domain.Cart) domain.Cart {
	return build(nil)
}

// Totals recomputes the derived fields of items from scratch.
func Totals(items []domain.LineItem) (total decimal.Decimal, count int) {
	total = decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
		count += li.Quantity
	}
	return total, count
}

// Find returns the line item with lineItemID.
func Find(c domain.Cart, lineItemID string) (domain.LineItem, bool) {
	for _, li := range c.Items {
		if li.ID == lineItemID {
			return li, true
		}
	}
	return domain.LineItem{}, false
}

// ProductQuantity returns the units of productID held by c across all
// of its line items.
func ProductQuantity(c domain.Cart, productID string) int {
	n := 0
	for _, li := range c.Items {
		if li.ProductID == productID {
			n += li.Quantity
		}
	}
	return n
}

func build(items []domain.LineItem) domain.Cart {
	if items == nil {
		items = []domain.LineItem{}
	}
	total, count := Totals(items)
	return domain.Cart{Items: items, Total: total, Count: count}
}

func findMatch(items []domain.LineItem, productID string, sel map[string]string) int {
	return slices.IndexFunc(items, func(li domain.LineItem) bool {
		return li.ProductID == productID && maps.Equal(li.Selections, sel)
	})
}

func cloneItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, li := range items {
		li.Selections = maps.Clone(li.Selections)
		out[i] = li
	}
	return out
}
