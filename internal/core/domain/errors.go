package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFetch            = errors.New("failed to fetch catalog")
	ErrValidation       = errors.New("invalid registration data")
	ErrAuth             = errors.New("invalid credentials")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrProductNotFound  = errors.New("product not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrRouteNotFound    = errors.New("unknown route")
)

// ErrEmailInUse is a ValidationError refinement: errors.Is matches it
// against both ErrEmailInUse and ErrValidation.
var ErrEmailInUse = fmt.Errorf("email already in use: %w", ErrValidation)
