package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/boofmebel/boofmebel/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// NewBadge marks products that the "new" sort order lifts to the top
const NewBadge = "Новинка"

type SortOrder string

const (
	SortPopular   SortOrder = "popular"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortNew       SortOrder = "new"
)

// FilterAll disables category filtering
const FilterAll = "all"

// Catalog is the read-only set of purchasable products
type Catalog struct {
	products []*domain.Product
	byID     map[string]*domain.Product
}

// New validates the products and builds the catalog in the given order
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]*domain.Product, 0, len(products)),
		byID:     make(map[string]*domain.Product, len(products)),
	}
	for i := range products {
		p := products[i]
		if err := validate(&p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.products = append(c.products, &p)
		c.byID[p.ID] = &p
	}
	return c, nil
}

func validate(p *domain.Product) error {
	if p.ID == "" {
		return errors.New("product id is required")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("product %q: unknown category %q", p.ID, p.Category)
	}
	if p.Fabrics.Len() == 0 {
		return fmt.Errorf("product %q: at least one fabric is required", p.ID)
	}
	if p.OriginalPrice != 0 && p.OriginalPrice < p.Price {
		return fmt.Errorf("product %q: original price %d is below base price %d", p.ID, p.OriginalPrice, p.Price)
	}
	return nil
}

// Get returns the product with the given id
func (c *Catalog) Get(id string) (*domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// All returns every product in catalog order
func (c *Catalog) All() []*domain.Product {
	out := make([]*domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// List filters by category ("" or "all" keeps everything) and applies the sort order.
// Unknown sort orders keep catalog order.
func (c *Catalog) List(category string, order SortOrder) []*domain.Product {
	items := make([]*domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if category == "" || category == FilterAll || string(p.Category) == category {
			items = append(items, p)
		}
	}

	switch order {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case SortNew:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Badge == NewBadge && items[j].Badge != NewBadge
		})
	}
	return items
}

// Reviews returns the seed reviews of every product, in catalog order
func (c *Catalog) Reviews() []domain.Review {
	var out []domain.Review
	for _, p := range c.products {
		out = append(out, p.Reviews...)
	}
	return out
}
