package port

import (
	"context"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

// CatalogSource is the remote catalog collaborator.
type CatalogSource interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

// KVStore is the durable key/value string collaborator
// (users, carts). The second return reports key presence.
type KVStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// RecordStore is the small expiring-record collaborator
// (session identity). Expired records read as absent.
type RecordStore interface {
	Get(name string) (string, bool)
	Set(name, value string, expiresAt time.Time)
	Delete(name string)
}

type UserDirectory interface {
	Users() (map[string]domain.UserRecord, error)
	SaveUsers(map[string]domain.UserRecord) error
}

type CartStore interface {
	LoadCart(identity string) ([]domain.CartEntry, error)
	SaveCart(identity string, entries []domain.CartEntry) error
}

type SessionStore interface {
	Identity() (string, bool)
	SetIdentity(identity string, expiresAt time.Time)
	ClearIdentity()
}

// Presenter is the rendering collaborator. Every method receives a
// complete snapshot of one view region.
type Presenter interface {
	ActivateView(domain.ViewName)
	ShowNavbar(domain.NavbarView)
	ShowFeatured(domain.FeaturedView)
	ShowCategoryCards([]domain.CategoryCard)
	ShowGrid(domain.GridView)
	ShowSlide(domain.SlideView)
	ShowDetail(domain.DetailView)
	ShowCart(domain.CartView)
	ShowOrder(domain.OrderView)
	ShowHero(visible bool)
	Loading(bool)
	ScrollTop()
}

// Notifier is the single-slot transient message surface.
type Notifier interface {
	Notify(severity domain.Severity, text string)
}

// FragmentBar is the address-fragment collaborator. The router writes
// through it; incoming fragment changes arrive via Router.OnFragmentChange.
type FragmentBar interface {
	SetFragment(token string)
}
