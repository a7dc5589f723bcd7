package domain

import "time"

// CartEntry quantity is always >= 1; entries that would drop to zero
// are removed from the cart instead of being stored.
type CartEntry struct {
	ProductID int `json:"id"`
	Quantity  int `json:"quantity"`
}

type Order struct {
	ID       string
	Total    float64
	PlacedAt time.Time
}
