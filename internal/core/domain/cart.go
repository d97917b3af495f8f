package domain

import "github.com/shopspring/decimal"

type (
	// A LineItem is one cart entry. Two line items may reference the
	// same product when their selections differ.
	LineItem struct {
		ID         string
		ProductID  string
		Name       string
		Image      string
		Quantity   int
		Price      decimal.Decimal
		Selections map[string]string
	}

	// A Cart holds line items in insertion order. Total and Count are
	// derived by the cart package after every change.
	Cart struct {
		Items []LineItem
		Total decimal.Decimal
		Count int
	}
)

// Subtotal returns the unit price multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func (c Cart) Empty() bool {
	return len(c.Items) == 0
}
