package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// Catalog holds the full fetched product collection and the derived
// filtered/sorted view. Load is the only mutator of the collection;
// SetCriteria the only mutator of the view.
type Catalog struct {
	source   port.CatalogSource
	products []domain.Product
	filtered []domain.Product
	criteria domain.FilterCriteria
	loaded   bool
}

func NewCatalog(source port.CatalogSource) *Catalog {
	return &Catalog{source: source}
}

// Load fetches the collection once per process. Later calls are no-ops
// unless Reload is used. On failure prior state is left untouched.
func (c *Catalog) Load(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	return c.Reload(ctx)
}

// Reload always re-fetches, replacing the collection and resetting the
// filtered view to the full collection.
func (c *Catalog) Reload(ctx context.Context) error {
	const op = "Catalog.Reload"
	log := slog.With("op", op)

	ps, err := c.source.FetchProducts(ctx)
	if err != nil {
		log.Error("failed to fetch products", "err", err)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrFetch, err)
	}

	c.products = ps
	c.criteria = domain.FilterCriteria{}
	c.filtered = ApplyFilter(c.products, c.criteria)
	c.loaded = true
	log.Info("catalog loaded", "nProducts", len(ps))
	return nil
}

func (c *Catalog) ByID(id int) (domain.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *Catalog) Products() []domain.Product {
	ps := make([]domain.Product, len(c.products))
	copy(ps, c.products)
	return ps
}

func (c *Catalog) DistinctCategories() []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	sort.Strings(cats)
	return cats
}

// RandomSample picks one product for incidental featured display.
func (c *Catalog) RandomSample() (domain.Product, bool) {
	if len(c.products) == 0 {
		return domain.Product{}, false
	}
	return c.products[rand.IntN(len(c.products))], true
}

// SetCriteria re-derives the filtered view and returns it.
func (c *Catalog) SetCriteria(criteria domain.FilterCriteria) []domain.Product {
	c.criteria = criteria
	c.filtered = ApplyFilter(c.products, criteria)
	return c.filtered
}

func (c *Catalog) Criteria() domain.FilterCriteria {
	return c.criteria
}

func (c *Catalog) Filtered() []domain.Product {
	return c.filtered
}
