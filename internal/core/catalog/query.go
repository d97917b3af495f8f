package catalog

import "github.com/niksmo/storefront/internal/core/domain"

// Query filters, sorts and paginates ps. It returns the requested page
// and the total page count, which is at least 1.
//
// Pages are 1-based. A page outside [1, totalPages] yields an empty
// slice. A pageSize below 1 puts every match on a single page.
// ps is never modified.
func Query(
	ps []domain.Product, f domain.Filter, page, pageSize int,
) ([]domain.Product, int) {
	return paginate(Sort(Filter(ps, f), f.Sort), page, pageSize)
}

// A Page is a query result ready for display.
type Page struct {
	Items      []domain.Product
	Page       int
	PageSize   int
	TotalPages int
	Total      int
}

// QueryPage is Query with the page metadata attached.
func QueryPage(
	ps []domain.Product, f domain.Filter, page, pageSize int,
) Page {
	sorted := Sort(Filter(ps, f), f.Sort)
	items, totalPages := paginate(sorted, page, pageSize)
	return Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      len(sorted),
	}
}

func paginate(
	sorted []domain.Product, page, pageSize int,
) ([]domain.Product, int) {
	n := len(sorted)

	if pageSize < 1 {
		pageSize = max(n, 1)
	}

	totalPages := max((n+pageSize-1)/pageSize, 1)

	if page < 1 || page > totalPages {
		return []domain.Product{}, totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, n)
	return sorted[start:end:end], totalPages
}
