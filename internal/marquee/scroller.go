package marquee

import (
	"math"
	"time"
)

// Interpolator maps elapsed fraction [0,1] to motion fraction [0,1].
type Interpolator func(float64) float64

// Linear moves at constant velocity for the whole pass.
func Linear(t float64) float64 { return t }

// Decelerate starts fast and eases into the end offset.
func Decelerate(t float64) float64 { return 1 - (1-t)*(1-t) }

// Scroller is a time-based offset interpolator. A motion begins at a given
// instant and reports its offset for any later query time. Starting a new
// motion discards the previous one.
type Scroller struct {
	interp Interpolator

	startX   float64
	deltaX   float64
	begin    time.Time
	duration time.Duration

	currX    float64
	finished bool
}

// NewScroller returns a finished scroller resting at offset 0. A nil
// interpolator means Linear.
func NewScroller(interp Interpolator) *Scroller {
	if interp == nil {
		interp = Linear
	}
	return &Scroller{interp: interp, finished: true}
}

// SetInterpolator replaces the easing used by the next motion.
func (s *Scroller) SetInterpolator(interp Interpolator) {
	if interp == nil {
		interp = Linear
	}
	s.interp = interp
}

// StartScroll begins a motion from startX to startX+dx lasting d, anchored at now.
func (s *Scroller) StartScroll(now time.Time, startX, dx float64, d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.startX = startX
	s.deltaX = dx
	s.begin = now
	s.duration = d
	s.currX = startX
	s.finished = false
}

// ComputeScrollOffset advances the motion to now and reports whether it is
// still running afterwards. Once the duration has elapsed the offset sits on
// the final value and the motion is finished.
func (s *Scroller) ComputeScrollOffset(now time.Time) bool {
	if s.finished {
		return false
	}
	elapsed := now.Sub(s.begin)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= s.duration {
		s.currX = s.FinalX()
		s.finished = true
		return false
	}
	frac := float64(elapsed) / float64(s.duration)
	frac = math.Max(0, math.Min(1, s.interp(frac)))
	s.currX = s.startX + s.deltaX*frac
	return true
}

// AbortAnimation finishes the motion in place; CurrX keeps the last computed value.
func (s *Scroller) AbortAnimation() {
	s.finished = true
}

// IsFinished reports whether the motion has completed or been aborted, as of
// the last ComputeScrollOffset call.
func (s *Scroller) IsFinished() bool { return s.finished }

// CurrX returns the most recently computed offset.
func (s *Scroller) CurrX() float64 { return s.currX }

// FinalX returns the offset the current motion ends at.
func (s *Scroller) FinalX() float64 { return s.startX + s.deltaX }

// Duration returns the length of the current motion.
func (s *Scroller) Duration() time.Duration { return s.duration }

// StartTime returns the instant the current motion began.
func (s *Scroller) StartTime() time.Time { return s.begin }
