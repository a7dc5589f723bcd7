package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type ViewName string

const (
	ViewHome          ViewName = "home"
	ViewCategories    ViewName = "categories"
	ViewLogin         ViewName = "login"
	ViewRegister      ViewName = "register"
	ViewContacts      ViewName = "contacts"
	ViewCart          ViewName = "cart"
	ViewProductDetail ViewName = "product"
	ViewOrderConfirm  ViewName = "order-confirmation"
)

// TokenLogout is a transient command token, not a view:
// the router performs the logout side effect and lands on home.
const TokenLogout = "logout"

// Route identifies the active view. ProductID is meaningful
// only for ViewProductDetail.
type Route struct {
	View      ViewName
	ProductID int
}

// ParseRoute maps an address-fragment token to a Route.
// The empty token defaults to home.
func ParseRoute(token string) (Route, error) {
	token = strings.TrimPrefix(token, "#")
	if token == "" {
		return Route{View: ViewHome}, nil
	}

	if rest, ok := strings.CutPrefix(token, string(ViewProductDetail)+"/"); ok {
		id, err := strconv.Atoi(rest)
		if err != nil {
			return Route{}, fmt.Errorf("%w: %q", ErrRouteNotFound, token)
		}
		return Route{View: ViewProductDetail, ProductID: id}, nil
	}

	switch v := ViewName(token); v {
	case ViewHome, ViewCategories, ViewLogin, ViewRegister,
		ViewContacts, ViewCart, ViewOrderConfirm:
		return Route{View: v}, nil
	}
	return Route{}, fmt.Errorf("%w: %q", ErrRouteNotFound, token)
}

// Restricted reports whether the route requires an authenticated session.
func (r Route) Restricted() bool {
	switch r.View {
	case ViewCategories, ViewCart, ViewContacts, ViewOrderConfirm:
		return true
	}
	return false
}

// Token renders the route back to its address-fragment form.
func (r Route) Token() string {
	if r.View == ViewProductDetail {
		return fmt.Sprintf("%s/%d", ViewProductDetail, r.ProductID)
	}
	return string(r.View)
}
