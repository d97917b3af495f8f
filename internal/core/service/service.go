package service

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/favorites"
	"github.com/niksmo/storefront/internal/core/port"
)

// A Session is the whole browsing state of one shopper. Service methods
// take a Session and return the next one.
type Session struct {
	Filter    domain.Filter
	Page      int
	Layout    domain.Layout
	Cart      domain.Cart
	Favorites domain.Favorites
}

func NewSession() Session {
	return Session{
		Page:      1,
		Layout:    domain.LayoutThree,
		Cart:      cart.Clear(domain.Cart{}),
		Favorites: favorites.Clear(domain.Favorites{}),
	}
}

type Service struct {
	catalog       port.CatalogReader
	pageSizes     domain.PageSizes
	newLineItemID func() string
}

type Option func(*Service)

// LineItemIDsOpt replaces the generator of cart line item ids.
func LineItemIDsOpt(fn func() string) Option {
	return func(svc *Service) {
		svc.newLineItemID = fn
	}
}

func New(
	catalog port.CatalogReader, pageSizes domain.PageSizes, opts ...Option,
) Service {
	svc := Service{
		catalog:       catalog,
		pageSizes:     pageSizes,
		newLineItemID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&svc)
	}
	return svc
}

// Browse returns the current page of the catalog for s.
func (svc Service) Browse(s Session) catalog.Page {
	const op = "Service.Browse"
	log := slog.With("op", op)

	pageSize := svc.pageSizes.For(s.Layout)
	page := catalog.QueryPage(svc.catalog.Products(), s.Filter, s.Page, pageSize)

	log.Debug("browse",
		"page", page.Page, "totalPages", page.TotalPages, "total", page.Total)
	return page
}

// ApplyFilter replaces the session filter and returns to the first
// page. An invalid filter is rejected and s is returned unchanged.
func (svc Service) ApplyFilter(s Session, f domain.Filter) (Session, error) {
	const op = "Service.ApplyFilter"

	if err := f.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", op, err)
	}
	s.Filter = f
	s.Page = 1
	return s, nil
}

// SetPage moves to page. Pages past the end are allowed and browse to
// an empty page.
func (svc Service) SetPage(s Session, page int) Session {
	s.Page = max(page, 1)
	return s
}

// SetLayout changes the grid layout and returns to the first page since
// the page size changes with it.
func (svc Service) SetLayout(s Session, l domain.Layout) Session {
	if s.Layout != l {
		s.Layout = l
		s.Page = 1
	}
	return s
}

// Product returns the catalog product with productID.
func (svc Service) Product(productID string) (domain.Product, error) {
	const op = "Service.Product"

	p, err := svc.product(productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// AddToCart adds qty units of a product. selections must choose one
// available value for each of the product's specifications, and the
// units of the product in the cart may not exceed its stock.
func (svc Service) AddToCart(
	s Session, productID string, qty int, selections map[string]string,
) (Session, error) {
	const op = "Service.AddToCart"
	log := slog.With("op", op)

	p, err := svc.product(productID)
	if err != nil {
		return s, fmt.Errorf("%s: %w", op, err)
	}

	if qty < 1 {
		return s, fmt.Errorf("%s: %d: %w", op, qty, domain.ErrInvalidQuantity)
	}

	if err := p.ValidateSelections(selections); err != nil {
		return s, fmt.Errorf("%s: %w", op, err)
	}

	if err := checkStock(p, cart.ProductQuantity(s.Cart, p.ProductID)+qty); err != nil {
		return s, fmt.Errorf("%s: %w", op, err)
	}

	c, err := cart.AddItemWithID(s.Cart, p, qty, selections, svc.newLineItemID)
	if err != nil {
		return s, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("added to cart", "productID", productID, "qty", qty, "count", c.Count)
	s.Cart = c
	return s, nil
}

func (svc Service) RemoveFromCart(s Session, lineItemID string) Session {
	s.Cart = cart.RemoveItem(s.Cart, lineItemID)
	return s
}

// SetQuantity sets the quantity of a line item; qty <= 0 removes it and
// unknown ids are ignored. The product's units across the cart may not
// exceed its stock.
func (svc Service) SetQuantity(s Session, lineItemID string, qty int) (Session, error) {
	const op = "Service.SetQuantity"

	li, ok := cart.Find(s.Cart, lineItemID)
	if !ok || qty <= 0 {
		s.Cart = cart.SetQuantity(s.Cart, lineItemID, qty)
		return s, nil
	}

	p, err := svc.product(li.ProductID)
	if err != nil {
		return s, fmt.Errorf("%s: %w", op, err)
	}

	others := cart.ProductQuantity(s.Cart, li.ProductID) - li.Quantity
	if err := checkStock(p, others+qty); err != nil {
		return s, fmt.Errorf("%s: %w", op, err)
	}

	s.Cart = cart.SetQuantity(s.Cart, lineItemID, qty)
	return s, nil
}

func (svc Service) ClearCart(s Session) Session {
	s.Cart = cart.Clear(s.Cart)
	return s
}

// ToggleFavorite flips productID in the favorites set and reports
// whether it is a favorite afterwards.
func (svc Service) ToggleFavorite(s Session, productID string) (Session, bool, error) {
	const op = "Service.ToggleFavorite"

	p, err := svc.product(productID)
	if err != nil {
		return s, false, fmt.Errorf("%s: %w", op, err)
	}

	s.Favorites, _ = favorites.Toggle(s.Favorites, p)
	return s, s.Favorites.Contains(productID), nil
}

func (svc Service) ClearFavorites(s Session) Session {
	s.Favorites = favorites.Clear(s.Favorites)
	return s
}

func (svc Service) product(id string) (domain.Product, error) {
	p, ok := svc.catalog.Product(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%q: %w", id, domain.ErrProductNotFound)
	}
	return p, nil
}

func checkStock(p domain.Product, want int) error {
	if want > p.Stock {
		return fmt.Errorf(
			"%s: want %d, have %d: %w", p.ProductID, want, p.Stock, domain.ErrInsufficientStock,
		)
	}
	return nil
}
