package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakePresenter struct {
	mu        sync.Mutex
	activated []domain.ViewName
	navbars   []domain.NavbarView
	featured  []domain.FeaturedView
	cards     [][]domain.CategoryCard
	grids     []domain.GridView
	slides    []domain.SlideView
	details   []domain.DetailView
	carts     []domain.CartView
	orders    []domain.OrderView
	heroes    []bool
	scrolls   int
}

func (p *fakePresenter) ActivateView(v domain.ViewName) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activated = append(p.activated, v)
}

func (p *fakePresenter) ShowNavbar(v domain.NavbarView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.navbars = append(p.navbars, v)
}

func (p *fakePresenter) ShowFeatured(v domain.FeaturedView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.featured = append(p.featured, v)
}

func (p *fakePresenter) ShowCategoryCards(v []domain.CategoryCard) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cards = append(p.cards, v)
}

func (p *fakePresenter) ShowGrid(v domain.GridView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grids = append(p.grids, v)
}

func (p *fakePresenter) ShowSlide(v domain.SlideView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slides = append(p.slides, v)
}

func (p *fakePresenter) ShowDetail(v domain.DetailView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.details = append(p.details, v)
}

func (p *fakePresenter) ShowCart(v domain.CartView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.carts = append(p.carts, v)
}

func (p *fakePresenter) ShowOrder(v domain.OrderView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, v)
}

func (p *fakePresenter) ShowHero(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.heroes = append(p.heroes, visible)
}

func (p *fakePresenter) Loading(bool) {}

func (p *fakePresenter) ScrollTop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrolls++
}

func (p *fakePresenter) lastActivated() (domain.ViewName, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.activated) == 0 {
		return "", false
	}
	return p.activated[len(p.activated)-1], true
}

type fakeNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (n *fakeNotifier) Notify(_ domain.Severity, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.texts = append(n.texts, text)
}

type fakeFragment struct {
	mu     sync.Mutex
	tokens []string
}

func (f *fakeFragment) SetFragment(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
}

func (f *fakeFragment) last() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tokens) == 0 {
		return "", false
	}
	return f.tokens[len(f.tokens)-1], true
}

type routerFixture struct {
	router    *service.Router
	renderer  *service.Renderer
	sessions  *service.Sessions
	catalog   *service.Catalog
	presenter *fakePresenter
	notifier  *fakeNotifier
	fragment  *fakeFragment
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()

	source := new(MockCatalogSource)
	source.On("FetchProducts", mock.Anything).Return(testCatalog(), nil)
	catalog := service.NewCatalog(source)
	require.NoError(t, catalog.Load(t.Context()))

	kv := storage.NewMemoryKV()
	sessions := service.NewSessions(
		storage.NewUserDirectory(kv),
		storage.NewSessionStore(storage.NewMemoryRecords()),
		time.Hour,
	)
	carts := service.NewCarts(storage.NewCartStore(kv), catalog, sessions)

	presenter := &fakePresenter{}
	notifier := &fakeNotifier{}
	fragment := &fakeFragment{}

	renderer := service.NewRenderer(service.RendererConfig{
		Presenter:      presenter,
		Catalog:        catalog,
		Sessions:       sessions,
		Carts:          carts,
		CategoryLimit:  6,
		SliderInterval: 50 * time.Millisecond,
		Exec:           func(func()) {},
	})
	t.Cleanup(renderer.StopSlider)

	router := service.NewRouter(service.RouterConfig{
		Catalog:   catalog,
		Sessions:  sessions,
		Renderer:  renderer,
		Notifier:  notifier,
		Fragment:  fragment,
		Presenter: presenter,
	})

	return routerFixture{
		router:    router,
		renderer:  renderer,
		sessions:  sessions,
		catalog:   catalog,
		presenter: presenter,
		notifier:  notifier,
		fragment:  fragment,
	}
}

func (f routerFixture) login(t *testing.T) {
	t.Helper()
	err := f.sessions.Register(
		"Jane Doe", "jane@example.com", "secretpass", "secretpass",
	)
	require.NoError(t, err)
}

func TestRouter(t *testing.T) {
	t.Run("RestrictedWhileLoggedOutLandsOnLogin", func(t *testing.T) {
		f := newRouterFixture(t)

		f.router.Navigate("cart")

		assert.Equal(t, domain.ViewLogin, f.router.Current().View)
		assert.NotContains(t, f.presenter.activated, domain.ViewCart,
			"restricted view is never partially activated")
		assert.Contains(t, f.notifier.texts, "Please log in to continue.")
		token, ok := f.fragment.last()
		require.True(t, ok)
		assert.Equal(t, "login", token)
	})

	t.Run("RestrictedTargetIsDiscardedNotQueued", func(t *testing.T) {
		f := newRouterFixture(t)
		f.router.Navigate("cart")

		f.login(t)
		assert.Equal(t, domain.ViewLogin, f.router.Current().View,
			"logging in does not replay the denied transition")
	})

	t.Run("InitialStateDefaultsToHome", func(t *testing.T) {
		f := newRouterFixture(t)
		f.router.Start("")

		assert.Equal(t, domain.ViewHome, f.router.Current().View)
		_, ok := f.fragment.last()
		assert.False(t, ok, "fragment-originated start writes no fragment")
	})

	t.Run("NavigateWritesFragmentOnce", func(t *testing.T) {
		f := newRouterFixture(t)
		f.router.Navigate("home")

		assert.Equal(t, []string{"home"}, f.fragment.tokens)
	})

	t.Run("FragmentChangeSkipsFragmentWrite", func(t *testing.T) {
		f := newRouterFixture(t)
		f.router.OnFragmentChange("home")

		assert.Empty(t, f.fragment.tokens)
		assert.Equal(t, domain.ViewHome, f.router.Current().View)
	})

	t.Run("HomeRendersFeaturedCardsAndHero", func(t *testing.T) {
		f := newRouterFixture(t)
		f.router.Navigate("home")

		assert.NotEmpty(t, f.presenter.featured)
		require.NotEmpty(t, f.presenter.cards)
		assert.Len(t, f.presenter.cards[0], 2)
		require.NotEmpty(t, f.presenter.heroes)
		assert.True(t, f.presenter.heroes[0], "hero visible while logged out")
		assert.Equal(t, 1, f.presenter.scrolls)
	})

	t.Run("HeroHiddenWhenLoggedIn", func(t *testing.T) {
		f := newRouterFixture(t)
		f.login(t)
		f.router.Navigate("home")

		require.NotEmpty(t, f.presenter.heroes)
		assert.False(t, f.presenter.heroes[len(f.presenter.heroes)-1])
	})

	t.Run("CategoriesRendersGridAndSlider", func(t *testing.T) {
		f := newRouterFixture(t)
		f.login(t)
		f.router.Navigate("categories")

		require.NotEmpty(t, f.presenter.grids)
		assert.Len(t, f.presenter.grids[0].Products, 4)
		require.NotEmpty(t, f.presenter.slides)
		assert.Equal(t, 0, f.presenter.slides[0].Index)
		assert.Equal(t, 4, f.presenter.slides[0].Total)
	})

	t.Run("ProductDetail", func(t *testing.T) {
		f := newRouterFixture(t)
		f.router.Navigate("product/2")

		assert.Equal(t, domain.ViewProductDetail, f.router.Current().View)
		require.NotEmpty(t, f.presenter.details)
		assert.Equal(t, "Mug", f.presenter.details[0].Product.Title)
		token, _ := f.fragment.last()
		assert.Equal(t, "product/2", token)
	})

	t.Run("UnresolvedProductRedirectsToCategories", func(t *testing.T) {
		f := newRouterFixture(t)
		f.login(t)
		f.router.Navigate("product/999")

		assert.Equal(t, domain.ViewCategories, f.router.Current().View)
		assert.Contains(t, f.notifier.texts, "Product not found.")
		assert.NotContains(t, f.presenter.activated, domain.ViewProductDetail)
	})

	t.Run("LogoutIsTransient", func(t *testing.T) {
		f := newRouterFixture(t)
		f.login(t)
		f.router.Navigate("logout")

		_, ok := f.sessions.Current()
		assert.False(t, ok)
		assert.Equal(t, domain.ViewHome, f.router.Current().View)
		assert.Contains(t, f.notifier.texts, "You have been logged out.")
	})

	t.Run("UnknownTokenKeepsCurrentView", func(t *testing.T) {
		f := newRouterFixture(t)
		f.router.Navigate("home")
		f.router.Navigate("bogus")

		assert.Equal(t, domain.ViewHome, f.router.Current().View)
		assert.Contains(t, f.notifier.texts, "Page not found.")
	})

	t.Run("NavbarRefreshedOnEveryTransition", func(t *testing.T) {
		f := newRouterFixture(t)
		f.router.Navigate("home")
		f.router.Navigate("login")

		assert.Len(t, f.presenter.navbars, 2)
	})

	t.Run("ApplyCriteriaRepaintsFilteredRegions", func(t *testing.T) {
		f := newRouterFixture(t)
		f.login(t)
		f.router.Navigate("categories")

		f.router.ApplyCriteria(domain.FilterCriteria{Category: "home"})

		last := f.presenter.grids[len(f.presenter.grids)-1]
		require.Len(t, last.Products, 2)
		for _, p := range last.Products {
			assert.Equal(t, "home", p.Category)
		}
	})

	t.Run("SelectCategoryLandsFiltered", func(t *testing.T) {
		f := newRouterFixture(t)
		f.login(t)

		f.router.SelectCategory("clothing")

		assert.Equal(t, domain.ViewCategories, f.router.Current().View)
		assert.Equal(t, "clothing", f.catalog.Criteria().Category)
	})

	t.Run("SelectCategoryWhileLoggedOut", func(t *testing.T) {
		f := newRouterFixture(t)

		f.router.SelectCategory("clothing")

		assert.Equal(t, domain.ViewLogin, f.router.Current().View)
		assert.Empty(t, f.catalog.Criteria().Category)
	})

	t.Run("ClearCriteriaResetsView", func(t *testing.T) {
		f := newRouterFixture(t)
		f.login(t)
		f.router.Navigate("categories")
		f.router.ApplyCriteria(domain.FilterCriteria{MinPrice: 30})
		f.router.ClearCriteria()

		last := f.presenter.grids[len(f.presenter.grids)-1]
		assert.Len(t, last.Products, 4)
	})
}
