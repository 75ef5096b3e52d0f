package shop

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

const (
	// CatalogWindow is how many products the storefront loads at most.
	CatalogWindow = 100
	DefaultLimit  = 20
	AllCategories = "All"
)

type PriceSort string

const (
	SortNone PriceSort = ""
	SortAsc  PriceSort = "asc"
	SortDesc PriceSort = "desc"
)

type ProductFilter struct {
	Category string    `form:"category"`
	Search   string    `form:"search"`
	Sort     PriceSort `form:"sort"`
	Limit    int       `form:"limit"`
}

type Catalog struct {
	products store.Products
}

func NewCatalog(products store.Products) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) window(ctx context.Context) ([]models.Product, error) {
	all, err := c.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(all) > CatalogWindow {
		all = all[:CatalogWindow]
	}
	return all, nil
}

// List filters the first CatalogWindow products by category and a
// case-insensitive name search, sorts by price and keeps the first Limit.
func (c *Catalog) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	all, err := c.window(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProducts(all, f), nil
}

func FilterProducts(all []models.Product, f ProductFilter) []models.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Product, 0, len(all))
	for _, p := range all {
		if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmpPrice(a.Price, b.Price) })
	case SortDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmpPrice(b.Price, a.Price) })
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func cmpPrice(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	all, err := c.window(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := []string{}
	for _, p := range all {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out, nil
}

func (c *Catalog) Get(ctx context.Context, id models.ID) (*models.Product, error) {
	return loadProduct(ctx, c.products, id)
}
