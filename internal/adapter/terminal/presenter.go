// Package terminal renders the view regions as plain text and stands in
// for the remaining browser surfaces: the toast slot and the address
// fragment.
package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Presenter = (*Presenter)(nil)

type Presenter struct {
	w io.Writer
}

func NewPresenter(w io.Writer) *Presenter {
	return &Presenter{w}
}

func (p *Presenter) ActivateView(v domain.ViewName) {
	p.printf("\n===== %s =====\n", strings.ToUpper(string(v)))
}

func (p *Presenter) ShowNavbar(v domain.NavbarView) {
	if v.LoggedIn {
		p.printf(
			"[navbar] Home | Products | Contact | Cart(%d) | Hi, %s | Logout\n",
			v.CartCount, v.FirstName,
		)
		return
	}
	p.printf("[navbar] Home | Register | Login\n")
}

func (p *Presenter) ShowFeatured(v domain.FeaturedView) {
	p.printf("[featured] %s — $%.2f\n", v.Product.Title, v.Product.Price)
}

func (p *Presenter) ShowCategoryCards(cards []domain.CategoryCard) {
	for _, c := range cards {
		p.printf("[category] %s (e.g. %s)\n", c.Title, c.Sample.Title)
	}
}

func (p *Presenter) ShowGrid(v domain.GridView) {
	if len(v.Products) == 0 {
		p.printf("[grid] No products match your filters.\n")
		return
	}
	for _, pr := range v.Products {
		p.printf("[grid] #%d %s — $%.2f (%.1f★)\n",
			pr.ID, pr.Title, pr.Price, pr.Rating)
	}
}

func (p *Presenter) ShowSlide(v domain.SlideView) {
	p.printf("[slider %d/%d] %s — $%.2f\n",
		v.Index+1, v.Total, v.Product.Title, v.Product.Price)
}

func (p *Presenter) ShowDetail(v domain.DetailView) {
	pr := v.Product
	p.printf("[detail] %s\nCategory: %s • Rating: %.1f★\n%s\n$%.2f\n",
		pr.Title, pr.Category, pr.Rating, pr.Description, pr.Price)
}

func (p *Presenter) ShowCart(v domain.CartView) {
	if len(v.Lines) == 0 {
		p.printf("[cart] Your cart is empty.\n")
		return
	}
	for _, l := range v.Lines {
		p.printf("[cart] %s x%d — $%.2f\n",
			l.Product.Title, l.Quantity, l.LineTotal)
	}
	p.printf("[cart] Total: $%.2f\n", v.Total)
}

func (p *Presenter) ShowOrder(v domain.OrderView) {
	p.printf(
		"[order] Order %s confirmed. We will email you the receipt.\n",
		v.OrderID,
	)
}

func (p *Presenter) ShowHero(visible bool) {
	if visible {
		p.printf("[hero] Register | Login\n")
	}
}

func (p *Presenter) Loading(on bool) {
	if on {
		p.printf("[loader] loading...\n")
	}
}

func (p *Presenter) ScrollTop() {}

func (p *Presenter) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		slog.Error("failed to write view", "err", err)
	}
}
