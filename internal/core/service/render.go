package service

import (
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer materializes view regions from store snapshots through the
// presenter. Region builders are idempotent and read-only with respect
// to the stores; the only state here is the slider position and the
// last placed order.
type Renderer struct {
	presenter      port.Presenter
	catalog        *Catalog
	sessions       *Sessions
	carts          *Carts
	categoryLimit  int
	sliderInterval time.Duration

	// exec posts a thunk onto the app event queue, so slider ticks
	// mutate renderer state on the same goroutine as everything else.
	exec func(func())

	titleCaser cases.Caser
	sliderStop chan struct{}
	slideIdx   int
	lastOrder  domain.Order
}

type RendererConfig struct {
	Presenter      port.Presenter
	Catalog        *Catalog
	Sessions       *Sessions
	Carts          *Carts
	CategoryLimit  int
	SliderInterval time.Duration
	Exec           func(func())
}

func NewRenderer(cfg RendererConfig) *Renderer {
	return &Renderer{
		presenter:      cfg.Presenter,
		catalog:        cfg.Catalog,
		sessions:       cfg.Sessions,
		carts:          cfg.Carts,
		categoryLimit:  cfg.CategoryLimit,
		sliderInterval: cfg.SliderInterval,
		exec:           cfg.Exec,
		titleCaser:     cases.Title(language.English),
	}
}

func (r *Renderer) Navbar() {
	view := domain.NavbarView{CartCount: r.carts.Count()}
	if identity, ok := r.sessions.Current(); ok {
		view.LoggedIn = true
		name := r.sessions.UserName(identity)
		view.FirstName, _, _ = strings.Cut(name, " ")
	}
	r.presenter.ShowNavbar(view)
}

func (r *Renderer) Featured() {
	p, ok := r.catalog.RandomSample()
	if !ok {
		return
	}
	r.presenter.ShowFeatured(domain.FeaturedView{Product: p})
}

// CategoryCards shows the first categories alphabetically, each paired
// with one representative product.
func (r *Renderer) CategoryCards() {
	cats := r.catalog.DistinctCategories()
	if len(cats) > r.categoryLimit {
		cats = cats[:r.categoryLimit]
	}

	products := r.catalog.Products()
	var cards []domain.CategoryCard
	for _, cat := range cats {
		sample, ok := representative(products, cat)
		if !ok {
			continue
		}
		cards = append(cards, domain.CategoryCard{
			Category: cat,
			Title:    r.titleCaser.String(cat),
			Sample:   sample,
		})
	}
	r.presenter.ShowCategoryCards(cards)
}

func representative(
	products []domain.Product, category string,
) (domain.Product, bool) {
	for _, p := range products {
		if p.Category == category {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (r *Renderer) Grid() {
	r.presenter.ShowGrid(domain.GridView{Products: r.catalog.Filtered()})
}

// RefreshFiltered repaints everything derived from the filtered view.
func (r *Renderer) RefreshFiltered() {
	r.Grid()
	r.RestartSlider()
}

// RestartSlider cancels any running slider timer and starts a new one
// over the current filtered view. At most one timer runs at a time.
func (r *Renderer) RestartSlider() {
	r.StopSlider()

	filtered := r.catalog.Filtered()
	if len(filtered) == 0 {
		return
	}

	r.slideIdx = 0
	r.showSlide(filtered)

	stop := make(chan struct{})
	r.sliderStop = stop
	go r.runSlider(stop)
}

func (r *Renderer) StopSlider() {
	if r.sliderStop != nil {
		close(r.sliderStop)
		r.sliderStop = nil
	}
}

func (r *Renderer) runSlider(stop chan struct{}) {
	ticker := time.NewTicker(r.sliderInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.exec(func() {
				if r.sliderStop != stop {
					return
				}
				r.advanceSlide()
			})
		}
	}
}

func (r *Renderer) advanceSlide() {
	filtered := r.catalog.Filtered()
	if len(filtered) == 0 {
		return
	}
	r.slideIdx = (r.slideIdx + 1) % len(filtered)
	r.showSlide(filtered)
}

func (r *Renderer) showSlide(filtered []domain.Product) {
	r.presenter.ShowSlide(domain.SlideView{
		Product: filtered[r.slideIdx],
		Index:   r.slideIdx,
		Total:   len(filtered),
	})
}

func (r *Renderer) Detail(p domain.Product) {
	r.presenter.ShowDetail(domain.DetailView{Product: p})
}

func (r *Renderer) CartPanel() {
	var view domain.CartView
	for _, e := range r.carts.Items() {
		p, ok := r.catalog.ByID(e.ProductID)
		if !ok {
			// Stale ids are skipped at render time, never erased.
			continue
		}
		line := domain.CartLine{
			Product:   p,
			Quantity:  e.Quantity,
			LineTotal: p.Price * float64(e.Quantity),
		}
		view.Lines = append(view.Lines, line)
		view.Total += line.LineTotal
	}
	r.presenter.ShowCart(view)
}

// Order remembers the placed order so the confirmation view can be
// re-rendered on later visits.
func (r *Renderer) Order(o domain.Order) {
	r.lastOrder = o
	r.OrderConfirmation()
}

func (r *Renderer) OrderConfirmation() {
	r.presenter.ShowOrder(domain.OrderView{OrderID: r.lastOrder.ID})
}

// Hero hides the hero call-to-action block for authenticated users.
func (r *Renderer) Hero() {
	_, loggedIn := r.sessions.Current()
	r.presenter.ShowHero(!loggedIn)
}
