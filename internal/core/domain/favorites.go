package domain

// Favorites is a set of products keyed by ProductID, kept in the order
// they were added.
type Favorites struct {
	Items []Product
	Count int
}

// IndexOf returns the position of productID or -1.
func (f Favorites) IndexOf(productID string) int {
	for i := range f.Items {
		if f.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (f Favorites) Contains(productID string) bool {
	return f.IndexOf(productID) >= 0
}

// Equal compares f and o as sets of product ids.
func (f Favorites) Equal(o Favorites) bool {
	if len(f.Items) != len(o.Items) || f.Count != o.Count {
		return false
	}
	for _, p := range f.Items {
		if !o.Contains(p.ProductID) {
			return false
		}
	}
	return true
}
