package domain

type Product struct {
	ID          int
	Title       string
	Description string
	Price       float64
	Rating      float64
	Category    string
	Thumbnail   string
	Images      []string
}

type SortMode string

const (
	SortDefault    SortMode = "default"
	SortPriceAsc   SortMode = "price-asc"
	SortPriceDesc  SortMode = "price-desc"
	SortRatingDesc SortMode = "rating-desc"
)

// FilterCriteria zero value matches the whole catalog in original order.
// MaxPrice 0 means unbounded.
type FilterCriteria struct {
	SearchText string
	Category   string
	MinPrice   float64
	MaxPrice   float64
	MinRating  float64
	Sort       SortMode
}
