package service

import (
	"math"
	"sort"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ApplyFilter derives the filtered/sorted view from the catalog.
// It never mutates its inputs; the result is always a fresh slice
// holding a subset of the catalog in a sort-consistent order.
func ApplyFilter(
	catalog []domain.Product, c domain.FilterCriteria,
) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(c.SearchText))
	maxPrice := c.MaxPrice
	if maxPrice == 0 {
		maxPrice = math.Inf(1)
	}

	filtered := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if c.Category != "" && p.Category != c.Category {
			continue
		}
		if p.Price < c.MinPrice || p.Price > maxPrice {
			continue
		}
		if p.Rating < c.MinRating {
			continue
		}
		filtered = append(filtered, p)
	}

	switch c.Sort {
	case domain.SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case domain.SortRatingDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	}

	return filtered
}
