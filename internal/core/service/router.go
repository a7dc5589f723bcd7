package service

import (
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// Router is the view state machine. Both input adapters, in-app
// navigation and external fragment changes, feed one transition
// function; fragment-originated transitions skip the fragment write
// so history entries are never duplicated.
type Router struct {
	catalog  *Catalog
	sessions *Sessions
	renderer *Renderer
	notifier port.Notifier
	fragment port.FragmentBar

	presenter port.Presenter
	current   domain.Route
}

type RouterConfig struct {
	Catalog   *Catalog
	Sessions  *Sessions
	Renderer  *Renderer
	Notifier  port.Notifier
	Fragment  port.FragmentBar
	Presenter port.Presenter
}

func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		catalog:   cfg.Catalog,
		sessions:  cfg.Sessions,
		renderer:  cfg.Renderer,
		notifier:  cfg.Notifier,
		fragment:  cfg.Fragment,
		presenter: cfg.Presenter,
	}
}

// Navigate handles in-app link activation.
func (r *Router) Navigate(token string) {
	r.transition(token, false)
}

// OnFragmentChange handles the external history-change notification.
func (r *Router) OnFragmentChange(fragment string) {
	r.transition(fragment, true)
}

// Start derives the initial view from the current fragment,
// defaulting to home.
func (r *Router) Start(fragment string) {
	r.transition(fragment, true)
}

func (r *Router) Current() domain.Route {
	return r.current
}

func (r *Router) transition(token string, fromFragment bool) {
	const op = "Router.transition"
	log := slog.With("op", op)

	if token == domain.TokenLogout {
		r.sessions.Logout()
		r.notifier.Notify(domain.SeverityInfo, "You have been logged out.")
		r.transition(string(domain.ViewHome), false)
		return
	}

	route, err := domain.ParseRoute(token)
	if err != nil {
		log.Warn("rejected", "token", token, "err", err)
		r.notifier.Notify(domain.SeverityError, "Page not found.")
		return
	}

	if route.Restricted() {
		if _, ok := r.sessions.Current(); !ok {
			// The requested transition is discarded, not queued.
			log.Warn("access denied", "token", token)
			r.transition(string(domain.ViewLogin), false)
			r.notifier.Notify(
				domain.SeverityError, "Please log in to continue.",
			)
			return
		}
	}

	var detail domain.Product
	if route.View == domain.ViewProductDetail {
		p, ok := r.catalog.ByID(route.ProductID)
		if !ok {
			log.Warn("unresolved product", "productID", route.ProductID)
			r.notifier.Notify(domain.SeverityError, "Product not found.")
			r.transition(string(domain.ViewCategories), false)
			return
		}
		detail = p
	}

	r.presenter.ActivateView(route.View)
	r.render(route, detail)
	r.current = route

	if !fromFragment {
		r.fragment.SetFragment(route.Token())
	}
	r.renderer.Navbar()
	r.presenter.ScrollTop()
	log.Debug("transitioned", "view", route.View)
}

func (r *Router) render(route domain.Route, detail domain.Product) {
	switch route.View {
	case domain.ViewHome:
		r.renderer.Featured()
		r.renderer.CategoryCards()
		r.renderer.Hero()
	case domain.ViewCategories:
		r.catalog.SetCriteria(r.catalog.Criteria())
		r.renderer.RefreshFiltered()
	case domain.ViewCart:
		r.renderer.CartPanel()
	case domain.ViewProductDetail:
		r.renderer.Detail(detail)
	case domain.ViewOrderConfirm:
		r.renderer.OrderConfirmation()
	}
}

// ApplyCriteria is the view-controls input: it re-derives the filtered
// view and repaints the regions bound to it.
func (r *Router) ApplyCriteria(criteria domain.FilterCriteria) {
	r.catalog.SetCriteria(criteria)
	r.renderer.RefreshFiltered()
}

// ClearCriteria resets every filter control.
func (r *Router) ClearCriteria() {
	r.ApplyCriteria(domain.FilterCriteria{})
}

// SelectCategory is the category-card activation: it lands on the
// categories view with that single category applied.
func (r *Router) SelectCategory(category string) {
	r.Navigate(string(domain.ViewCategories))
	if r.current.View != domain.ViewCategories {
		return
	}
	criteria := r.catalog.Criteria()
	criteria.Category = category
	r.ApplyCriteria(criteria)
}
