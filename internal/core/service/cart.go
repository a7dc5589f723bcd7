package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// Carts owns the authenticated user's cart. Every mutation is persisted
// through the cart store before control returns to the caller. Carts are
// keyed by identity, so two users never share one.
type Carts struct {
	store    port.CartStore
	catalog  *Catalog
	sessions *Sessions
}

func NewCarts(store port.CartStore, catalog *Catalog, sessions *Sessions) *Carts {
	return &Carts{store: store, catalog: catalog, sessions: sessions}
}

// Add increments the entry for productID or inserts it with quantity 1.
// Without a session the cart is never touched.
func (c *Carts) Add(productID int) error {
	const op = "Carts.Add"
	log := slog.With("op", op)

	identity, ok := c.sessions.Current()
	if !ok {
		return fmt.Errorf("%s: %w", op, domain.ErrNotAuthenticated)
	}
	if _, ok := c.catalog.ByID(productID); !ok {
		return fmt.Errorf(
			"%s: %w: id=%d", op, domain.ErrProductNotFound, productID,
		)
	}

	entries, err := c.store.LoadCart(identity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	found := false
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, domain.CartEntry{
			ProductID: productID, Quantity: 1,
		})
	}

	if err := c.store.SaveCart(identity, entries); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("added to cart", "productID", productID)
	return nil
}

// ChangeQuantity adds delta to an existing entry. Absent entries are not
// materialized; a resulting quantity <= 0 removes the entry.
func (c *Carts) ChangeQuantity(productID, delta int) error {
	const op = "Carts.ChangeQuantity"

	identity, ok := c.sessions.Current()
	if !ok {
		return nil
	}

	entries, err := c.store.LoadCart(identity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for i := range entries {
		if entries[i].ProductID != productID {
			continue
		}
		entries[i].Quantity += delta
		if entries[i].Quantity <= 0 {
			entries = append(entries[:i], entries[i+1:]...)
		}
		if err := c.store.SaveCart(identity, entries); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	return nil
}

// Items returns the current cart in insertion order. No session or a
// load failure reads as an empty cart.
func (c *Carts) Items() []domain.CartEntry {
	identity, ok := c.sessions.Current()
	if !ok {
		return nil
	}
	entries, err := c.store.LoadCart(identity)
	if err != nil {
		return nil
	}
	return entries
}

// Count is the sum of quantities, for the navbar badge.
func (c *Carts) Count() int {
	var n int
	for _, e := range c.Items() {
		n += e.Quantity
	}
	return n
}

// Total sums price*quantity over resolvable products. Entries whose
// product id is no longer in the catalog contribute zero and are kept.
func (c *Carts) Total() float64 {
	var total float64
	for _, e := range c.Items() {
		p, ok := c.catalog.ByID(e.ProductID)
		if !ok {
			continue
		}
		total += p.Price * float64(e.Quantity)
	}
	return total
}

// Clear empties the cart and persists the empty state.
func (c *Carts) Clear() error {
	const op = "Carts.Clear"

	identity, ok := c.sessions.Current()
	if !ok {
		return fmt.Errorf("%s: %w", op, domain.ErrNotAuthenticated)
	}
	if err := c.store.SaveCart(identity, []domain.CartEntry{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Checkout places the mock order: it rejects an empty cart, then clears
// it and returns the order record for the confirmation view.
func (c *Carts) Checkout() (domain.Order, error) {
	const op = "Carts.Checkout"
	log := slog.With("op", op)

	if _, ok := c.sessions.Current(); !ok {
		return domain.Order{}, fmt.Errorf(
			"%s: %w", op, domain.ErrNotAuthenticated,
		)
	}
	if len(c.Items()) == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	order := domain.Order{
		ID:       orderID(),
		Total:    c.Total(),
		PlacedAt: time.Now(),
	}
	if err := c.Clear(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("order placed", "orderID", order.ID, "total", order.Total)
	return order, nil
}

func orderID() string {
	tail := strings.ToUpper(uuid.NewString()[:6])
	return "ORD-" + tail
}
