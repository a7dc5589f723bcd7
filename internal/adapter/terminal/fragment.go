package terminal

import (
	"sync"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.FragmentBar = (*Fragment)(nil)

// Fragment is the in-memory address-fragment bar. The router writes the
// active token through it; the driver reads it back for display.
type Fragment struct {
	mu    sync.Mutex
	token string
}

func NewFragment() *Fragment {
	return &Fragment{}
}

func (f *Fragment) SetFragment(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *Fragment) Current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}
