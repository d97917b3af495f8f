package shell

import (
	"time"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
)

type response struct {
	Cmd   string `json:"cmd"`
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type (
	Product struct {
		ProductID      string              `json:"product_id"`
		Name           string              `json:"name"`
		Price          decimal.Decimal     `json:"price"`
		OriginalPrice  *decimal.Decimal    `json:"original_price,omitempty"`
		Category       string              `json:"category"`
		SubCategory    string              `json:"sub_category,omitempty"`
		Image          string              `json:"image,omitempty"`
		Tags           []string            `json:"tags,omitempty"`
		Stock          int                 `json:"stock"`
		Rating         float64             `json:"rating"`
		Reviews        int                 `json:"reviews"`
		Specifications map[string][]string `json:"specifications,omitempty"`
		CreatedAt      time.Time           `json:"created_at"`
	}

	ProductDetail struct {
		Product
		Description string    `json:"description,omitempty"`
		Images      []string  `json:"images"`
		UpdatedAt   time.Time `json:"updated_at"`
		Favorite    bool      `json:"favorite"`
		InCart      int       `json:"in_cart"`
	}

	Filter struct {
		MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
		MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
		Category    string           `json:"category,omitempty"`
		SubCategory string           `json:"sub_category,omitempty"`
		Sort        string           `json:"sort,omitempty"`
	}

	Page struct {
		Items      []Product `json:"items"`
		Page       int       `json:"page"`
		PageSize   int       `json:"page_size"`
		TotalPages int       `json:"total_pages"`
		Total      int       `json:"total"`
		Layout     string    `json:"layout"`
		Filter     Filter    `json:"filter"`
	}

	LineItem struct {
		ID         string            `json:"id"`
		ProductID  string            `json:"product_id"`
		Name       string            `json:"name"`
		Image      string            `json:"image,omitempty"`
		Quantity   int               `json:"quantity"`
		Price      decimal.Decimal   `json:"price"`
		Subtotal   decimal.Decimal   `json:"subtotal"`
		Selections map[string]string `json:"selections,omitempty"`
	}

	Cart struct {
		Items []LineItem      `json:"items"`
		Total decimal.Decimal `json:"total"`
		Count int             `json:"count"`
	}

	Favorites struct {
		Items []Product `json:"items"`
		Count int       `json:"count"`
	}

	FavoriteToggle struct {
		ProductID string `json:"product_id"`
		Favorite  bool   `json:"favorite"`
		Count     int    `json:"count"`
	}
)

func toProduct(p domain.Product) Product {
	return Product{
		ProductID:      p.ProductID,
		Name:           p.Name,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Category:       p.Category,
		SubCategory:    p.SubCategory,
		Image:          p.PrimaryImage(),
		Tags:           p.Tags,
		Stock:          p.Stock,
		Rating:         p.Rating,
		Reviews:        p.Reviews,
		Specifications: p.Specifications,
		CreatedAt:      p.CreatedAt,
	}
}

func toProductDetail(p domain.Product, s service.Session) ProductDetail {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductDetail{
		Product:     toProduct(p),
		Description: p.Description,
		Images:      images,
		UpdatedAt:   p.UpdatedAt,
		Favorite:    s.Favorites.Contains(p.ProductID),
		InCart:      cart.ProductQuantity(s.Cart, p.ProductID),
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

func toPage(p catalog.Page, s service.Session) Page {
	return Page{
		Items:      toProducts(p.Items),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		Layout:     string(s.Layout),
		Filter: Filter{
			MinPrice:    s.Filter.MinPrice,
			MaxPrice:    s.Filter.MaxPrice,
			Category:    s.Filter.Category,
			SubCategory: s.Filter.SubCategory,
			Sort:        string(s.Filter.Sort),
		},
	}
}

func toCart(c domain.Cart) Cart {
	items := make([]LineItem, 0, len(c.Items))
	for _, li := range c.Items {
		items = append(items, LineItem{
			ID:         li.ID,
			ProductID:  li.ProductID,
			Name:       li.Name,
			Image:      li.Image,
			Quantity:   li.Quantity,
			Price:      li.Price,
			Subtotal:   li.Subtotal(),
			Selections: li.Selections,
		})
	}
	return Cart{Items: items, Total: c.Total, Count: c.Count}
}

func toFavorites(f domain.Favorites) Favorites {
	return Favorites{Items: toProducts(f.Items), Count: f.Count}
}
