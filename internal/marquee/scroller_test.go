package marquee

import (
	"math"
	"testing"
	"time"
)

func TestScrollerLinearMotion(t *testing.T) {
	s := NewScroller(nil)
	if !s.IsFinished() || s.CurrX() != 0 {
		t.Fatal("new scroller should rest finished at 0")
	}
	s.StartScroll(t0, 10, 200, 400*time.Millisecond)
	tests := []struct {
		at      time.Duration
		want    float64
		running bool
	}{
		{at: 0, want: 10, running: true},
		{at: 100 * time.Millisecond, want: 60, running: true},
		{at: 200 * time.Millisecond, want: 110, running: true},
		{at: 399 * time.Millisecond, want: 209.5, running: true},
		{at: 400 * time.Millisecond, want: 210, running: false},
		{at: time.Second, want: 210, running: false},
	}
	for _, tt := range tests {
		running := s.ComputeScrollOffset(t0.Add(tt.at))
		if running != tt.running {
			t.Fatalf("at %v running = %v, want %v", tt.at, running, tt.running)
		}
		if math.Abs(s.CurrX()-tt.want) > 1e-9 {
			t.Fatalf("at %v CurrX = %v, want %v", tt.at, s.CurrX(), tt.want)
		}
	}
}

func TestScrollerAbortKeepsLastOffset(t *testing.T) {
	s := NewScroller(Linear)
	s.StartScroll(t0, 0, 100, 100*time.Millisecond)
	s.ComputeScrollOffset(t0.Add(30 * time.Millisecond))
	s.AbortAnimation()
	if !s.IsFinished() {
		t.Fatal("abort did not finish the motion")
	}
	s.ComputeScrollOffset(t0.Add(90 * time.Millisecond))
	if math.Abs(s.CurrX()-30) > 1e-9 {
		t.Fatalf("CurrX after abort = %v, want 30", s.CurrX())
	}
}

func TestScrollerZeroDurationFinishesOnFirstSample(t *testing.T) {
	s := NewScroller(Linear)
	s.StartScroll(t0, 5, 50, 0)
	if s.IsFinished() {
		t.Fatal("finished before being sampled")
	}
	if s.ComputeScrollOffset(t0) {
		t.Fatal("zero length motion still running")
	}
	if s.CurrX() != 55 {
		t.Fatalf("CurrX = %v, want 55", s.CurrX())
	}
}

func TestScrollerRestartOverwritesMotion(t *testing.T) {
	s := NewScroller(Linear)
	s.StartScroll(t0, 0, 100, time.Second)
	s.ComputeScrollOffset(t0.Add(500 * time.Millisecond))
	later := t0.Add(2 * time.Second)
	s.StartScroll(later, -20, 40, 200*time.Millisecond)
	if s.CurrX() != -20 || !s.StartTime().Equal(later) || s.Duration() != 200*time.Millisecond {
		t.Fatalf("restart kept stale motion: x=%v start=%v d=%v", s.CurrX(), s.StartTime(), s.Duration())
	}
	s.ComputeScrollOffset(later.Add(100 * time.Millisecond))
	if math.Abs(s.CurrX()) > 1e-9 {
		t.Fatalf("CurrX halfway = %v, want 0", s.CurrX())
	}
}

func TestDecelerateInterpolator(t *testing.T) {
	s := NewScroller(Decelerate)
	s.StartScroll(t0, 0, 100, 100*time.Millisecond)
	s.ComputeScrollOffset(t0.Add(50 * time.Millisecond))
	if math.Abs(s.CurrX()-75) > 1e-9 {
		t.Fatalf("CurrX = %v, want 75", s.CurrX())
	}
}
