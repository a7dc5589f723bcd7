// Package app wires the stores, services and adapters together and owns
// the cooperative event queue every state transition runs on.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/catalogapi"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/adapter/terminal"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/spf13/afero"
)

const queueSize = 64

type App struct {
	cfg   config.Config
	queue chan func()

	kvClose func()

	presenter *terminal.Presenter
	notifier  *terminal.Notifier
	fragment  *terminal.Fragment

	catalog  *service.Catalog
	sessions *service.Sessions
	carts    *service.Carts
	renderer *service.Renderer
	router   *service.Router
}

func New(cfg config.Config, out io.Writer) *App {
	app := &App{cfg: cfg, queue: make(chan func(), queueSize)}

	app.initLogger()
	app.initSurfaces(out)
	app.initStores()
	app.initRouter()

	return app
}

func (a *App) initLogger() {
	opts := &slog.HandlerOptions{Level: a.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (a *App) initSurfaces(out io.Writer) {
	a.presenter = terminal.NewPresenter(out)
	a.notifier = terminal.NewNotifier(out, a.cfg.UI.ToastTimeout)
	a.fragment = terminal.NewFragment()
}

func (a *App) initStores() {
	const op = "App.initStores"

	kv := a.openKV()
	records := storage.NewMemoryRecords()
	source := catalogapi.New(
		a.cfg.Catalog.BaseURL,
		a.cfg.Catalog.FetchLimit,
		a.cfg.Catalog.FetchTimeout,
	)

	a.catalog = service.NewCatalog(source)
	a.sessions = service.NewSessions(
		storage.NewUserDirectory(kv),
		storage.NewSessionStore(records),
		a.cfg.SessionTTL,
	)
	a.carts = service.NewCarts(storage.NewCartStore(kv), a.catalog, a.sessions)

	slog.With("op", op).Info(
		"stores are ready", "backend", a.cfg.Storage.Backend,
	)
}

func (a *App) openKV() port.KVStore {
	const op = "App.openKV"

	switch a.cfg.Storage.Backend {
	case "memory":
		return storage.NewMemoryKV()
	case "file":
		return storage.NewFileKV(afero.NewOsFs(), a.cfg.Storage.Path)
	case "leveldb":
		lkv, err := storage.NewLevelKV(a.cfg.Storage.Path)
		if err != nil {
			a.fallDown(op, err)
		}
		a.kvClose = lkv.Close
		return lkv
	default:
		a.fallDown(op, fmt.Errorf(
			"unknown storage backend %q", a.cfg.Storage.Backend,
		))
		return nil
	}
}

func (a *App) initRouter() {
	a.renderer = service.NewRenderer(service.RendererConfig{
		Presenter:      a.presenter,
		Catalog:        a.catalog,
		Sessions:       a.sessions,
		Carts:          a.carts,
		CategoryLimit:  a.cfg.UI.CategoryLimit,
		SliderInterval: a.cfg.UI.SliderInterval,
		Exec:           a.Do,
	})
	a.router = service.NewRouter(service.RouterConfig{
		Catalog:   a.catalog,
		Sessions:  a.sessions,
		Renderer:  a.renderer,
		Notifier:  a.notifier,
		Fragment:  a.fragment,
		Presenter: a.presenter,
	})
}

// Do posts a state transition onto the event queue. Everything that
// touches the stores goes through here, so no locking is needed in the
// owning components.
func (a *App) Do(fn func()) {
	a.queue <- fn
}

// Run performs the initial catalog load, derives the initial view from
// the fragment and then drains the event queue until ctx is done. The
// failed-load path degrades to an empty catalog and stays interactive.
func (a *App) Run(ctx context.Context) {
	a.presenter.Loading(true)
	if err := a.catalog.Load(ctx); err != nil {
		a.notifier.Notify(
			domain.SeverityError,
			"Could not load products. Please check your connection.",
		)
	}
	a.presenter.Loading(false)

	a.router.Start(a.fragment.Current())

	for {
		select {
		case <-ctx.Done():
			a.close()
			return
		case fn := <-a.queue:
			fn()
		}
	}
}

func (a *App) close() {
	slog.Info("application is closing...")
	a.renderer.StopSlider()
	if a.kvClose != nil {
		a.kvClose()
	}
	slog.Info("application is closed")
}

// Navigate handles in-app link activation.
func (a *App) Navigate(token string) {
	a.router.Navigate(token)
}

// FragmentChanged handles an external address-fragment change.
func (a *App) FragmentChanged(fragment string) {
	a.router.OnFragmentChange(fragment)
}

func (a *App) Login(email, password string) {
	if err := a.sessions.Login(email, password); err != nil {
		a.notifier.Notify(domain.SeverityError, "Invalid credentials.")
		return
	}
	a.notifier.Notify(domain.SeveritySuccess, "Welcome back!")
	a.router.Navigate(string(domain.ViewCategories))
}

func (a *App) Register(name, email, password, confirm string) {
	err := a.sessions.Register(name, email, password, confirm)
	switch {
	case errors.Is(err, domain.ErrEmailInUse):
		a.notifier.Notify(domain.SeverityError, "Email already in use.")
	case errors.Is(err, domain.ErrValidation):
		a.notifier.Notify(
			domain.SeverityError, "Please fill all fields correctly.",
		)
	case err != nil:
		a.notifier.Notify(domain.SeverityError, "Registration failed.")
	default:
		a.notifier.Notify(
			domain.SeveritySuccess, fmt.Sprintf("Welcome, %s!", name),
		)
		a.router.Navigate(string(domain.ViewCategories))
	}
}

func (a *App) AddToCart(productID int) {
	err := a.carts.Add(productID)
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		a.router.Navigate(string(domain.ViewLogin))
		a.notifier.Notify(domain.SeverityError, "Please log in to add items.")
	case errors.Is(err, domain.ErrProductNotFound):
		a.notifier.Notify(domain.SeverityError, "Product not available.")
	case err != nil:
		a.notifier.Notify(domain.SeverityError, "Could not update the cart.")
	default:
		p, _ := a.catalog.ByID(productID)
		a.notifier.Notify(
			domain.SeveritySuccess,
			fmt.Sprintf("%s added to cart!", p.Title),
		)
		a.renderer.Navbar()
		if a.router.Current().View == domain.ViewCart {
			a.renderer.CartPanel()
		}
	}
}

func (a *App) ChangeQuantity(productID, delta int) {
	if err := a.carts.ChangeQuantity(productID, delta); err != nil {
		a.notifier.Notify(domain.SeverityError, "Could not update the cart.")
		return
	}
	if a.router.Current().View == domain.ViewCart {
		a.renderer.CartPanel()
	}
	a.renderer.Navbar()
}

func (a *App) Buy() {
	order, err := a.carts.Checkout()
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		a.notifier.Notify(domain.SeverityError, "Your cart is empty.")
	case errors.Is(err, domain.ErrNotAuthenticated):
		a.router.Navigate(string(domain.ViewLogin))
		a.notifier.Notify(domain.SeverityError, "Please log in to continue.")
	case err != nil:
		a.notifier.Notify(domain.SeverityError, "Could not place the order.")
	default:
		a.renderer.Order(order)
		a.router.Navigate(string(domain.ViewOrderConfirm))
		a.notifier.Notify(domain.SeveritySuccess, "Order placed successfully!")
	}
}

func (a *App) ApplyCriteria(criteria domain.FilterCriteria) {
	a.router.ApplyCriteria(criteria)
}

func (a *App) ClearCriteria() {
	a.router.ClearCriteria()
}

func (a *App) SelectCategory(category string) {
	a.router.SelectCategory(category)
}

// Reload explicitly re-fetches the catalog.
func (a *App) Reload(ctx context.Context) {
	if err := a.catalog.Reload(ctx); err != nil {
		a.notifier.Notify(
			domain.SeverityError,
			"Could not load products. Please check your connection.",
		)
		return
	}
	a.notifier.Notify(domain.SeverityInfo, "Catalog reloaded.")
	a.router.Navigate(a.router.Current().Token())
}

func (a *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
