package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Notifier = (*Notifier)(nil)

// Notifier is the single-slot toast surface. A new message replaces the
// current one; each message auto-dismisses after the configured timeout.
type Notifier struct {
	w       io.Writer
	timeout time.Duration

	mu      sync.Mutex
	current string
	timer   *time.Timer
}

func NewNotifier(w io.Writer, timeout time.Duration) *Notifier {
	return &Notifier{w: w, timeout: timeout}
}

func (n *Notifier) Notify(severity domain.Severity, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current = text
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.timeout, n.dismiss)

	_, err := fmt.Fprintf(n.w, "[toast:%s] %s\n", severity, text)
	if err != nil {
		slog.Error("failed to write toast", "err", err)
	}
}

// Current returns the message presently occupying the slot.
func (n *Notifier) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.current != ""
}

func (n *Notifier) dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = ""
}
