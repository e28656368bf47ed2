package ui

import (
	"sync"

	"fyne.io/fyne/v2"
)

// TickerController feeds text into a MarqueeLabel and only scrolls when the
// text overflows. SetText is safe to call from any goroutine.
type TickerController struct {
	label    *MarqueeLabel
	viewport fyne.CanvasObject // container used to measure visible width

	mu          sync.Mutex
	lastText    string
	scrolling   bool
	placeholder string
}

// NewTickerController creates a controller for the given label. viewport is
// the object whose width bounds the text; nil means the label itself.
func NewTickerController(label *MarqueeLabel, viewport fyne.CanvasObject) *TickerController {
	if viewport == nil {
		viewport = label
	}
	return &TickerController{
		label:       label,
		viewport:    viewport,
		placeholder: "Ready",
	}
}

// SetPlaceholder changes the text shown for empty updates.
func (tc *TickerController) SetPlaceholder(text string) {
	tc.mu.Lock()
	tc.placeholder = text
	tc.mu.Unlock()
}

// SetText shows text and restarts scrolling if it no longer fits, or snaps it
// back to rest when it does.
func (tc *TickerController) SetText(text string) {
	tc.mu.Lock()
	if text == "" {
		text = tc.placeholder
	}
	tc.lastText = text
	tc.mu.Unlock()

	CallOnMain(func() { tc.apply(text) })
}

func (tc *TickerController) apply(text string) {
	tc.mu.Lock()
	if text != tc.lastText {
		// a newer SetText is queued behind us
		tc.mu.Unlock()
		return
	}
	tc.mu.Unlock()

	tc.label.SetText(text)
	overflow := tickerNeedsScroll(tc.label.TextWidth(), tc.viewport.Size().Width)

	tc.mu.Lock()
	tc.scrolling = overflow
	tc.mu.Unlock()
	if overflow {
		tc.label.Start()
		return
	}
	tc.label.Stop()
}

// Refit re-checks overflow after the viewport was resized.
func (tc *TickerController) Refit() {
	tc.mu.Lock()
	text := tc.lastText
	was := tc.scrolling
	tc.mu.Unlock()
	if text == "" {
		return
	}
	overflow := tickerNeedsScroll(tc.label.TextWidth(), tc.viewport.Size().Width)
	if overflow == was {
		return
	}
	CallOnMain(func() { tc.apply(text) })
}

// Scrolling reports whether the last text overflowed.
func (tc *TickerController) Scrolling() bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.scrolling
}

// Close stops the label's animation.
func (tc *TickerController) Close() {
	tc.label.Close()
}
