package eventloop

import (
	"reflect"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestQueuePostIsDeferred(t *testing.T) {
	q := NewQueue(NewManualClock(epoch))
	ran := false
	q.Post(func() { ran = true })
	if ran {
		t.Fatal("Post ran the action synchronously")
	}
	if n := q.RunDue(); n != 1 || !ran {
		t.Fatalf("RunDue = %d, ran = %v; want 1, true", n, ran)
	}
}

func TestQueueFIFOOrder(t *testing.T) {
	clock := NewManualClock(epoch)
	q := NewQueue(clock)
	var got []string
	q.PostDelayed(10*time.Millisecond, func() { got = append(got, "delayed-a") })
	q.Post(func() { got = append(got, "now-a") })
	q.PostDelayed(10*time.Millisecond, func() { got = append(got, "delayed-b") })
	q.Post(func() { got = append(got, "now-b") })

	q.RunDue()
	if want := []string{"now-a", "now-b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after first RunDue got %v, want %v", got, want)
	}
	clock.Advance(10 * time.Millisecond)
	q.RunDue()
	want := []string{"now-a", "now-b", "delayed-a", "delayed-b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestQueueDelayNotReached(t *testing.T) {
	clock := NewManualClock(epoch)
	q := NewQueue(clock)
	ran := false
	q.PostDelayed(time.Second, func() { ran = true })
	clock.Advance(999 * time.Millisecond)
	if q.RunDue() != 0 || ran {
		t.Fatal("delayed action ran before its due time")
	}
	due, ok := q.NextDue()
	if !ok || !due.Equal(epoch.Add(time.Second)) {
		t.Fatalf("NextDue = %v, %v", due, ok)
	}
	clock.Advance(time.Millisecond)
	if q.RunDue() != 1 || !ran {
		t.Fatal("delayed action did not run at its due time")
	}
}

func TestQueueReentrantPostWaitsForNextTurn(t *testing.T) {
	q := NewQueue(NewManualClock(epoch))
	count := 0
	var again func()
	again = func() {
		count++
		q.Post(again)
	}
	q.Post(again)
	q.RunDue()
	q.RunDue()
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1", q.Len())
	}
	q.Clear()
	if q.Len() != 0 {
		t.Fatal("Clear left pending actions")
	}
}

func TestManualClockIgnoresNegativeAdvance(t *testing.T) {
	c := NewManualClock(epoch)
	c.Advance(-time.Second)
	if !c.Now().Equal(epoch) {
		t.Fatalf("Now = %v, want %v", c.Now(), epoch)
	}
}
