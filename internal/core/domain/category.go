package domain

import "slices"

type Category struct {
	ID            string
	Name          string
	Subcategories []string
}

func (c Category) HasSub(id string) bool {
	return slices.Contains(c.Subcategories, id)
}

// Categories is the browsing tree offered by the storefront.
var Categories = []Category{
	{ID: "shoes", Name: "Shoes", Subcategories: []string{"running", "casual", "sports"}},
	{ID: "bags", Name: "Bags", Subcategories: []string{"backpack", "handbag", "travel"}},
	{ID: "clothing", Name: "Clothing", Subcategories: []string{"tshirt", "jeans", "jacket"}},
}

func LookupCategory(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
