package domain

import "fmt"

// A Layout is the number of product grid columns chosen by the shopper.
type Layout string

const (
	LayoutTwo   Layout = "2"
	LayoutThree Layout = "3"
	LayoutFour  Layout = "4"
)

func ParseLayout(s string) (Layout, error) {
	switch l := Layout(s); l {
	case LayoutTwo, LayoutThree, LayoutFour:
		return l, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidLayout)
}

// PageSizes ties each layout to a fixed page size.
type PageSizes struct {
	Two   int
	Three int
	Four  int
}

func DefaultPageSizes() PageSizes {
	return PageSizes{Two: 8, Three: 9, Four: 12}
}

// For returns the page size of l. Unknown layouts fall back to the
// three column size.
func (s PageSizes) For(l Layout) int {
	switch l {
	case LayoutTwo:
		return s.Two
	case LayoutFour:
		return s.Four
	default:
		return s.Three
	}
}
