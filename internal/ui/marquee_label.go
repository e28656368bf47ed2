package ui

import (
	"image/color"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/marqueeview/internal/eventloop"
	"github.com/edward-ap/marqueeview/internal/marquee"
	"github.com/edward-ap/marqueeview/internal/textmeasure"
)

// MarqueeLabel is a single-line label that scrolls its text horizontally. A
// fyne.Animation acts as the per-frame hook: every frame drains the label's
// task queue and samples the session.
//
// Control methods may be called from any goroutine; they are serialised with
// the frame callback.
type MarqueeLabel struct {
	widget.BaseWidget

	// OnStateChanged, when set, is called after the session changes state.
	OnStateChanged func(marquee.State)
	// OnResized, when set, is called after the label takes a new size.
	OnResized func(fyne.Size)

	mu        sync.Mutex
	text      string
	textStyle fyne.TextStyle
	textSize  float32
	color     color.Color

	queue    *eventloop.Queue
	session  *marquee.Session
	measurer marquee.Measurer
	closer   func() error

	anim          *fyne.Animation
	animating     bool
	frameInterval time.Duration
	lastFrame     time.Time
	lastState marquee.State
	dirty     atomic.Bool
}

// NewMarqueeLabel builds a label showing text at the theme text size. It does
// not scroll until Start is called.
func NewMarqueeLabel(text string) *MarqueeLabel {
	return newMarqueeLabel(text, nil)
}

// newMarqueeLabel is NewMarqueeLabel with the clock that drives the label's
// task queue and the session; nil means the system clock.
func newMarqueeLabel(text string, clock eventloop.Clock) *MarqueeLabel {
	l := &MarqueeLabel{
		text:     text,
		textSize: theme.TextSize(),
		color:    theme.ForegroundColor(),
		queue:    eventloop.NewQueue(clock),
	}
	l.measurer, l.closer = pickMeasurer(l.textSize, l.textStyle)
	l.session = marquee.NewSession(labelHost{l}, labelHost{l}, l.queue, nil)
	l.anim = fyne.NewAnimation(time.Second, func(float32) { l.frame() })
	l.anim.RepeatCount = fyne.AnimationRepeatForever
	l.anim.Curve = fyne.AnimationLinear
	l.ExtendBaseWidget(l)
	return l
}

// pickMeasurer measures with the theme font when it can be parsed and falls
// back to fyne's own text measurement otherwise.
func pickMeasurer(size float32, style fyne.TextStyle) (marquee.Measurer, func() error) {
	if res := theme.TextFont(); res != nil && !style.Bold && !style.Italic && !style.Monospace {
		m, err := textmeasure.NewOpenTypeMeasurer(res.Content(), float64(size), 72)
		if err == nil {
			return m, m.Close
		}
		log.Println("marquee label: theme font unusable, using fyne measurement:", err)
	}
	return marquee.MeasurerFunc(func(s string) float64 {
		return float64(fyne.MeasureText(s, size, style).Width)
	}), func() error { return nil }
}

// CreateRenderer implements fyne.Widget.
func (l *MarqueeLabel) CreateRenderer() fyne.WidgetRenderer {
	l.mu.Lock()
	txt := canvas.NewText(l.text, l.color)
	txt.TextSize = l.textSize
	txt.TextStyle = l.textStyle
	l.mu.Unlock()

	inner := container.NewWithoutLayout(txt)
	clip := container.NewScroll(inner)
	clip.Direction = container.ScrollNone
	return &marqueeRenderer{label: l, text: txt, inner: inner, clip: clip}
}

// Resize sets the label size and reports a change through OnResized.
func (l *MarqueeLabel) Resize(size fyne.Size) {
	old := l.Size()
	l.BaseWidget.Resize(size)
	if size != old && l.OnResized != nil {
		l.OnResized(size)
	}
}

// SetFrameInterval sets the target time between two samples of the session.
// Ticks closer than three quarters of the interval to the previous sample are
// skipped. Zero samples on every tick.
func (l *MarqueeLabel) SetFrameInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	l.frameInterval = d
	l.mu.Unlock()
}

// SetText replaces the displayed text. A pass in flight keeps its distance;
// the new width is picked up on the next resume.
func (l *MarqueeLabel) SetText(text string) {
	l.mu.Lock()
	l.text = text
	l.mu.Unlock()
	l.Refresh()
}

// Text returns the displayed text.
func (l *MarqueeLabel) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text
}

// SetTextStyle changes the font style used to draw and measure the text.
func (l *MarqueeLabel) SetTextStyle(style fyne.TextStyle) {
	l.mu.Lock()
	l.textStyle = style
	if l.closer != nil {
		_ = l.closer()
	}
	l.measurer, l.closer = pickMeasurer(l.textSize, style)
	l.mu.Unlock()
	l.Refresh()
}

// TextWidth measures the current text with the label's measurer.
func (l *MarqueeLabel) TextWidth() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float32(l.measurer.MeasureTextWidth(l.text))
}

// Apply installs a session configuration; see marquee.Session.Apply.
func (l *MarqueeLabel) Apply(cfg marquee.Config) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.Apply(cfg)
}

// Start resets the session and scrolls after the first delay.
func (l *MarqueeLabel) Start() { l.control((*marquee.Session).Start) }

// Resume continues from the paused offset.
func (l *MarqueeLabel) Resume() { l.control((*marquee.Session).Resume) }

// Pause freezes the text in place.
func (l *MarqueeLabel) Pause() { l.control((*marquee.Session).Pause) }

// Stop snaps the text back to rest.
func (l *MarqueeLabel) Stop() { l.control((*marquee.Session).Stop) }

func (l *MarqueeLabel) control(op func(*marquee.Session)) {
	l.mu.Lock()
	op(l.session)
	start := !l.animating
	l.animating = true
	state, changed := l.stateChangeLocked()
	l.mu.Unlock()

	if start {
		l.anim.Start()
	}
	l.afterUpdate(state, changed)
}

// IsPaused reports whether the text is standing still.
func (l *MarqueeLabel) IsPaused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.IsPaused()
}

// Snapshot returns the session's observable state.
func (l *MarqueeLabel) Snapshot() marquee.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.Snapshot()
}

// Speed returns the milliseconds spent per character.
func (l *MarqueeLabel) Speed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.Speed()
}

// SetSpeed changes the speed of the next pass.
func (l *MarqueeLabel) SetSpeed(speed int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.SetSpeed(speed)
}

// Mode returns the repeat policy.
func (l *MarqueeLabel) Mode() marquee.Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.Mode()
}

// SetMode changes the repeat policy.
func (l *MarqueeLabel) SetMode(m marquee.Mode) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.SetMode(m)
}

// FirstDelay returns the delay before the first pass.
func (l *MarqueeLabel) FirstDelay() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.FirstDelay()
}

// SetFirstDelay changes the delay used by the next Start.
func (l *MarqueeLabel) SetFirstDelay(d time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.SetFirstDelay(d)
}

// Close stops the frame callback and releases the measurer.
func (l *MarqueeLabel) Close() {
	l.mu.Lock()
	wasAnimating := l.animating
	l.animating = false
	l.queue.Clear()
	closer := l.closer
	l.closer = nil
	l.mu.Unlock()
	if wasAnimating {
		l.anim.Stop()
	}
	if closer != nil {
		_ = closer()
	}
}

// frame is the per-refresh hook run by the animation.
func (l *MarqueeLabel) frame() {
	l.mu.Lock()
	if !l.animating {
		l.mu.Unlock()
		return
	}
	now := l.queue.Now()
	if l.frameInterval > 0 && !l.lastFrame.IsZero() && now.Sub(l.lastFrame) < l.frameInterval*3/4 {
		l.mu.Unlock()
		return
	}
	l.lastFrame = now
	l.queue.RunDue()
	l.session.ComputeScroll()
	state, changed := l.stateChangeLocked()
	l.mu.Unlock()
	l.afterUpdate(state, changed)
}

func (l *MarqueeLabel) stateChangeLocked() (marquee.State, bool) {
	state := l.session.State()
	changed := state != l.lastState
	l.lastState = state
	return state, changed
}

func (l *MarqueeLabel) afterUpdate(state marquee.State, changed bool) {
	if l.dirty.Swap(false) {
		l.Refresh()
	}
	if changed && l.OnStateChanged != nil {
		l.OnStateChanged(state)
	}
}

// offset is read by the renderer.
func (l *MarqueeLabel) offset() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float32(l.session.Offset())
}

// labelHost exposes the label to the session as both Host and Measurer. Its
// methods run while l.mu is held, so they must not lock it again.
type labelHost struct{ l *MarqueeLabel }

func (h labelHost) Text() string { return h.l.text }

func (h labelHost) ViewportWidth() float64 { return float64(h.l.Size().Width) }

func (h labelHost) RequestRepaint() { h.l.dirty.Store(true) }

func (h labelHost) MeasureTextWidth(text string) float64 {
	return h.l.measurer.MeasureTextWidth(text)
}

type marqueeRenderer struct {
	label *MarqueeLabel
	text  *canvas.Text
	inner *fyne.Container
	clip  *container.Scroll
}

func (r *marqueeRenderer) Layout(size fyne.Size) {
	r.clip.Resize(size)
	r.inner.Resize(size)
	r.placeText(size)
}

func (r *marqueeRenderer) placeText(size fyne.Size) {
	ts := r.text.MinSize()
	r.text.Resize(ts)
	y := (size.Height - ts.Height) / 2
	r.text.Move(fyne.NewPos(-r.label.offset(), y))
}

func (r *marqueeRenderer) MinSize() fyne.Size {
	h := r.text.MinSize().Height
	return fyne.NewSize(theme.Padding()*4, h)
}

func (r *marqueeRenderer) Refresh() {
	r.label.mu.Lock()
	r.text.Text = r.label.text
	r.text.TextStyle = r.label.textStyle
	r.text.TextSize = r.label.textSize
	r.label.mu.Unlock()
	r.text.Color = theme.ForegroundColor()
	r.placeText(r.label.Size())
	r.text.Refresh()
	r.clip.Refresh()
}

func (r *marqueeRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.clip}
}

func (r *marqueeRenderer) Destroy() {}
