// Package eventloop provides a small single-threaded task queue that hosts
// drain once per display refresh. It stands in for a UI toolkit's
// post/postDelayed facility so animation code never sleeps or spawns timers.
package eventloop

import (
	"sort"
	"sync"
	"time"
)

type task struct {
	due time.Time
	seq uint64
	fn  func()
}

// Queue orders deferred actions by due time, then by insertion. Post and
// PostDelayed may be called from any goroutine; RunDue must be called from the
// thread that owns the state the actions touch.
type Queue struct {
	clock Clock

	mu    sync.Mutex
	seq   uint64
	tasks []task
}

// NewQueue builds a queue that reads time from clock. A nil clock means the
// wall clock.
func NewQueue(clock Clock) *Queue {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Queue{clock: clock}
}

// Now returns the queue's notion of the current time.
func (q *Queue) Now() time.Time { return q.clock.Now() }

// Post schedules fn for the next RunDue call. It never runs fn synchronously.
func (q *Queue) Post(fn func()) {
	q.PostDelayed(0, fn)
}

// PostDelayed schedules fn to run on the first RunDue at or after now+delay.
func (q *Queue) PostDelayed(delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	due := q.clock.Now().Add(delay)
	q.mu.Lock()
	q.seq++
	t := task{due: due, seq: q.seq, fn: fn}
	// keep tasks sorted; insertion after every entry with due <= t.due keeps FIFO for ties
	i := sort.Search(len(q.tasks), func(i int) bool { return q.tasks[i].due.After(due) })
	q.tasks = append(q.tasks, task{})
	copy(q.tasks[i+1:], q.tasks[i:])
	q.tasks[i] = t
	q.mu.Unlock()
}

// RunDue runs every action that was due when the call started and returns how
// many ran. Actions queued by those actions wait for the next call.
func (q *Queue) RunDue() int {
	now := q.clock.Now()
	q.mu.Lock()
	n := sort.Search(len(q.tasks), func(i int) bool { return q.tasks[i].due.After(now) })
	due := make([]task, n)
	copy(due, q.tasks[:n])
	q.tasks = append(q.tasks[:0], q.tasks[n:]...)
	q.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return n
}

// Len reports the number of pending actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// NextDue returns the due time of the earliest pending action.
func (q *Queue) NextDue() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return time.Time{}, false
	}
	return q.tasks[0].due, true
}

// Clear drops every pending action.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.tasks = nil
	q.mu.Unlock()
}
