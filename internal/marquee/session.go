package marquee

import (
	"time"

	"github.com/rivo/uniseg"
)

// State is the lifecycle position of a Session.
type State int

const (
	// StatePaused means no motion is advancing and none is pending.
	StatePaused State = iota
	// StateScheduled means a begin action is queued on the Loop.
	StateScheduled
	// StateRunning means the Scroller is advancing.
	StateRunning
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StateScheduled:
		return "scheduled"
	case StateRunning:
		return "running"
	}
	return "unknown"
}

// Snapshot is a read-only view of a Session, mostly for hosts and tests.
type Snapshot struct {
	State        State
	Offset       float64
	PausedOffset float64
	FirstPass    bool
	Duration     time.Duration
	Mode         Mode
	Speed        int
}

// Session is the scroll state machine of one marquee component. It is not
// safe for concurrent use: every method, and every action it posts, runs on
// the host's UI thread.
type Session struct {
	host    Host
	measure Measurer
	loop    Loop
	logger  Logger

	speed      int
	mode       Mode
	firstDelay time.Duration
	interp     Interpolator

	pausedOffset float64
	state        State
	firstPass    bool
	// epoch invalidates begin actions queued before a start, pause or stop
	epoch uint64

	scroller *Scroller
}

// NewSession creates a paused session with default configuration. A nil
// logger falls back to the standard log package.
func NewSession(host Host, measure Measurer, loop Loop, logger Logger) *Session {
	if logger == nil {
		logger = StdLogger{}
	}
	cfg := DefaultConfig()
	return &Session{
		host:       host,
		measure:    measure,
		loop:       loop,
		logger:     logger,
		speed:      cfg.Speed,
		mode:       cfg.Mode,
		firstDelay: cfg.FirstDelay,
		interp:     Linear,
		state:      StatePaused,
		firstPass:  true,
	}
}

// Apply validates cfg and installs it. Nothing changes when validation fails.
// Like the individual setters, it only affects the next Resume.
func (s *Session) Apply(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.speed = cfg.Speed
	s.mode = cfg.Mode
	s.firstDelay = cfg.FirstDelay
	s.interp = cfg.Interpolator
	if s.interp == nil {
		s.interp = Linear
	}
	return nil
}

// Start resets the session and begins scrolling after the first delay.
func (s *Session) Start() {
	s.tracef("start")
	s.epoch++
	s.pausedOffset = 0
	s.state = StatePaused
	s.firstPass = true
	if s.scroller != nil {
		s.scroller.StartScroll(s.loop.Now(), 0, 0, 0)
		s.host.RequestRepaint()
	}
	s.Resume()
}

// Resume schedules a pass from the paused offset. It does nothing unless the
// session is paused, so a second call before the first one's action fires
// cannot queue a duplicate pass.
func (s *Session) Resume() {
	if s.state != StatePaused {
		return
	}
	if s.scroller == nil {
		s.scroller = NewScroller(s.interp)
	}
	text := s.host.Text()
	scrollingLen := s.measure.MeasureTextWidth(text)
	start := s.pausedOffset
	distance := scrollingLen - start
	duration := passDuration(s.speed, text)

	s.state = StateScheduled
	s.epoch++
	token := s.epoch
	begin := func() {
		if s.epoch != token || s.state != StateScheduled {
			return
		}
		s.scroller.SetInterpolator(s.interp)
		s.state = StateRunning
		s.firstPass = false
		if distance <= 0 {
			// Nothing left to travel: hold still and finish on the next sample.
			s.scroller.StartScroll(s.loop.Now(), start, 0, duration)
			s.scroller.AbortAnimation()
			s.tracef("begin at %.2f with nothing left to scroll", start)
			s.host.RequestRepaint()
			return
		}
		s.scroller.StartScroll(s.loop.Now(), start, distance, duration)
		s.tracef("begin from %.2f by %.2f over %v", start, distance, duration)
		s.host.RequestRepaint()
	}
	if s.firstPass {
		s.tracef("schedule after %v", s.firstDelay)
		s.loop.PostDelayed(s.firstDelay, begin)
		return
	}
	s.tracef("schedule now")
	s.loop.Post(begin)
}

// Pause freezes the text where it is. A pending begin is cancelled.
func (s *Session) Pause() {
	if s.scroller == nil {
		return
	}
	switch s.state {
	case StatePaused:
		return
	case StateScheduled:
		s.epoch++
		s.state = StatePaused
		s.tracef("pause before begin at %.2f", s.pausedOffset)
		return
	}
	s.scroller.ComputeScrollOffset(s.loop.Now())
	s.pausedOffset = s.scroller.CurrX()
	s.scroller.AbortAnimation()
	s.epoch++
	s.state = StatePaused
	s.tracef("pause at %.2f", s.pausedOffset)
	s.host.RequestRepaint()
}

// Stop returns the text to its resting position and leaves the session paused.
func (s *Session) Stop() {
	if s.scroller == nil {
		return
	}
	s.epoch++
	s.state = StatePaused
	s.scroller.StartScroll(s.loop.Now(), 0, 0, 0)
	s.scroller.ComputeScrollOffset(s.loop.Now())
	s.tracef("stop")
	s.host.RequestRepaint()
}

// ComputeScroll is the per-frame hook. The host calls it once per refresh and
// then paints at Offset.
func (s *Session) ComputeScroll() {
	if s.scroller == nil {
		return
	}
	if s.scroller.ComputeScrollOffset(s.loop.Now()) {
		s.host.RequestRepaint()
		return
	}
	if s.state != StateRunning {
		return
	}
	if s.mode == ModeOnce {
		s.Stop()
		return
	}
	s.state = StatePaused
	s.pausedOffset = -s.host.ViewportWidth()
	s.firstPass = false
	s.tracef("wrap to %.2f", s.pausedOffset)
	s.Resume()
}

// Offset returns the horizontal displacement to paint the text at; positive
// values move the text left.
func (s *Session) Offset() float64 {
	if s.scroller == nil {
		return 0
	}
	return s.scroller.CurrX()
}

// IsPaused reports whether no motion is advancing.
func (s *Session) IsPaused() bool { return s.state != StateRunning }

// State returns the lifecycle position.
func (s *Session) State() State { return s.state }

// PausedOffset returns the offset the next pass starts from.
func (s *Session) PausedOffset() float64 { return s.pausedOffset }

// Snapshot captures the observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:        s.state,
		Offset:       s.Offset(),
		PausedOffset: s.pausedOffset,
		FirstPass:    s.firstPass,
		Mode:         s.mode,
		Speed:        s.speed,
	}
	if s.scroller != nil {
		snap.Duration = s.scroller.Duration()
	}
	return snap
}

// Speed returns the milliseconds spent per character.
func (s *Session) Speed() int { return s.speed }

// SetSpeed changes the speed used by the next pass.
func (s *Session) SetSpeed(speed int) error {
	if speed <= 0 {
		return ErrInvalidSpeed
	}
	s.speed = speed
	return nil
}

// Mode returns the repeat policy.
func (s *Session) Mode() Mode { return s.mode }

// SetMode changes the repeat policy checked when the current pass ends.
func (s *Session) SetMode(m Mode) error {
	if !m.Valid() {
		return ErrInvalidMode
	}
	s.mode = m
	return nil
}

// FirstDelay returns the delay applied before the first pass.
func (s *Session) FirstDelay() time.Duration { return s.firstDelay }

// SetFirstDelay changes the delay used by the next Start.
func (s *Session) SetFirstDelay(d time.Duration) error {
	if d < 0 {
		return ErrInvalidDelay
	}
	s.firstDelay = d
	return nil
}

// passDuration scales with the length of the text, not with the distance left.
func passDuration(speed int, text string) time.Duration {
	return time.Duration(speed*uniseg.GraphemeClusterCount(text)) * time.Millisecond
}

func (s *Session) tracef(format string, args ...any) {
	if !isTraceLoggingEnabled() {
		return
	}
	s.logger.Printf("marquee: "+format+" [state=%s]", append(args, s.state)...)
}
