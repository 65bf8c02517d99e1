package checkout

import (
	"fmt"
	"time"
)

// PaymentWindow is how long a generated payment code stays valid. The
// deadline is a UI-level one: the gateway is never told about it.
const PaymentWindow = 10 * time.Minute

type WindowState int

const (
	WindowIdle WindowState = iota
	WindowRunning
	WindowExpired
)

// Window tracks the payment-window deadline for one checkout. It only starts
// after the gateway confirms order creation and resets back to idle when the
// customer starts over. Not safe for concurrent use; Session serializes access.
type Window struct {
	now       func() time.Time
	expiresAt time.Time
	running   bool
}

func NewWindow() *Window {
	return newWindowWithClock(time.Now)
}

func newWindowWithClock(now func() time.Time) *Window {
	return &Window{now: now}
}

// Start arms the deadline at now + PaymentWindow.
func (w *Window) Start() {
	w.expiresAt = w.now().Add(PaymentWindow)
	w.running = true
}

// Reset returns the window to idle and clears the deadline.
func (w *Window) Reset() {
	w.expiresAt = time.Time{}
	w.running = false
}

func (w *Window) State() WindowState {
	if !w.running {
		return WindowIdle
	}
	if w.Remaining() <= 0 {
		return WindowExpired
	}
	return WindowRunning
}

// Expired reports whether the deadline has passed. Only meaningful once the
// window is running; an idle window is never expired.
func (w *Window) Expired() bool {
	return w.State() == WindowExpired
}

// Remaining returns whole seconds left, clamped at zero.
func (w *Window) Remaining() int {
	if !w.running {
		return 0
	}
	left := w.expiresAt.Sub(w.now())
	if left <= 0 {
		return 0
	}
	// Round up so the countdown shows 600 right after Start, not 599.
	return int((left + time.Second - 1) / time.Second)
}

func (w *Window) ExpiresAt() time.Time {
	return w.expiresAt
}

// FormatRemaining renders seconds as m:ss for the countdown display.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
