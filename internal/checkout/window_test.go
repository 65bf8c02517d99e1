package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestWindow() (*Window, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	return newWindowWithClock(clock.now), clock
}

func TestWindowStartsIdle(t *testing.T) {
	w, _ := newTestWindow()
	assert.Equal(t, WindowIdle, w.State())
	assert.False(t, w.Expired())
	assert.Equal(t, 0, w.Remaining())
}

func TestWindowRunsForTenMinutes(t *testing.T) {
	w, clock := newTestWindow()
	w.Start()

	assert.Equal(t, WindowRunning, w.State())
	assert.Equal(t, 600, w.Remaining())

	clock.advance(599 * time.Second)
	assert.Equal(t, WindowRunning, w.State())
	assert.Equal(t, 1, w.Remaining())
	assert.False(t, w.Expired())
}

func TestWindowExpiresExactlyAtDeadline(t *testing.T) {
	w, clock := newTestWindow()
	w.Start()

	// expired iff now >= start + 600s
	clock.advance(600*time.Second - time.Nanosecond)
	assert.False(t, w.Expired())

	clock.advance(time.Nanosecond)
	assert.True(t, w.Expired())
	assert.Equal(t, WindowExpired, w.State())
	assert.Equal(t, 0, w.Remaining())
}

func TestWindowWellPastDeadline(t *testing.T) {
	w, clock := newTestWindow()
	w.Start()
	clock.advance(601 * time.Second)
	assert.True(t, w.Expired())
}

func TestWindowResetReturnsToIdle(t *testing.T) {
	w, clock := newTestWindow()
	w.Start()
	clock.advance(11 * time.Minute)
	assert.True(t, w.Expired())

	w.Reset()
	assert.Equal(t, WindowIdle, w.State())
	assert.False(t, w.Expired())
	assert.Equal(t, 0, w.Remaining())
}

func TestWindowRestartAfterReset(t *testing.T) {
	w, clock := newTestWindow()
	w.Start()
	clock.advance(11 * time.Minute)
	w.Reset()

	w.Start()
	assert.Equal(t, WindowRunning, w.State())
	assert.Equal(t, 600, w.Remaining())
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "10:00", FormatRemaining(600))
	assert.Equal(t, "9:59", FormatRemaining(599))
	assert.Equal(t, "0:05", FormatRemaining(5))
	assert.Equal(t, "0:00", FormatRemaining(0))
	assert.Equal(t, "0:00", FormatRemaining(-3))
}
