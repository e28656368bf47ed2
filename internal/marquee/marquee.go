// Package marquee implements the scroll-animation controller behind a
// self-scrolling single-line text display. A Session decides when scrolling
// starts, how far and how fast it moves, how passes repeat, and how
// pause/resume/stop interact with a motion in flight. Painting, measuring and
// frame timing are left to the host through the Host, Measurer and Loop
// interfaces.
package marquee

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultSpeed is the number of milliseconds a pass spends per character.
	DefaultSpeed = 4
	// DefaultFirstDelay is the pause before the very first pass begins.
	DefaultFirstDelay = 1000 * time.Millisecond
)

var (
	// ErrInvalidSpeed is returned for speeds that are not strictly positive.
	ErrInvalidSpeed = errors.New("marquee: speed must be positive")
	// ErrInvalidMode is returned for unknown repeat modes.
	ErrInvalidMode = errors.New("marquee: unknown scroll mode")
	// ErrInvalidDelay is returned for negative first delays.
	ErrInvalidDelay = errors.New("marquee: first delay must not be negative")
)

// Host is the component that owns the paint offset.
type Host interface {
	// Text returns the string currently displayed.
	Text() string
	// ViewportWidth returns the visible width in the same unit the Measurer uses.
	ViewportWidth() float64
	// RequestRepaint asks the host to redraw on its next frame.
	RequestRepaint()
}

// Measurer reports the rendered width of a string.
type Measurer interface {
	MeasureTextWidth(text string) float64
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(string) float64

// MeasureTextWidth calls f(text).
func (f MeasurerFunc) MeasureTextWidth(text string) float64 { return f(text) }

// Loop is the scheduler a Session posts deferred actions to. Actions must run
// on the same thread that calls into the Session, in FIFO order, and never
// synchronously with Post/PostDelayed.
type Loop interface {
	Post(fn func())
	PostDelayed(delay time.Duration, fn func())
	Now() time.Time
}

// Logger is a small logging interface used for trace output.
type Logger interface {
	Printf(format string, args ...any)
}

// Mode selects how passes repeat.
type Mode int

const (
	// ModeForever restarts from off-screen right after every pass.
	ModeForever Mode = iota
	// ModeOnce performs a single pass and then snaps back to rest.
	ModeOnce
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeForever:
		return "forever"
	case ModeOnce:
		return "once"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeForever || m == ModeOnce }

// ParseMode accepts "forever" or "once" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forever", "":
		return ModeForever, nil
	case "once":
		return ModeOnce, nil
	}
	return ModeForever, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Config carries the tunables of a Session.
type Config struct {
	Speed      int
	Mode       Mode
	FirstDelay time.Duration
	// Interpolator shapes each pass; nil means Linear.
	Interpolator Interpolator
}

// DefaultConfig returns speed 4, forever mode and a one second first delay.
func DefaultConfig() Config {
	return Config{
		Speed:      DefaultSpeed,
		Mode:       ModeForever,
		FirstDelay: DefaultFirstDelay,
	}
}

// Validate rejects configurations a Session cannot run with.
func (c Config) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSpeed, c.Speed)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(c.Mode))
	}
	if c.FirstDelay < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, c.FirstDelay)
	}
	return nil
}
