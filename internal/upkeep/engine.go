package upkeep

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidFireTime = errors.New("upkeep: invalid fire time")

// Kind labels what a due event asks the consumer to do.
type Kind string

const (
	// KindDayRollover fires at a local day boundary; the consumer runs
	// the streak and monthly-reset passes and re-arms the next boundary.
	KindDayRollover Kind = "day_rollover"
	// KindHabitNudge fires when a tracked habit is due for attention.
	KindHabitNudge Kind = "habit_nudge"
)

// Event is a scheduled upkeep trigger. The engine only orders and
// delivers events; the passes themselves run in the consumer against
// the engine service.
type Event struct {
	ID      string
	Kind    Kind
	HabitID string
	FireAt  time.Time
}

type queueItem struct {
	event Event
}

type fireQueue []queueItem

func (q fireQueue) Len() int { return len(q) }

func (q fireQueue) Less(i, j int) bool {
	return q[i].event.FireAt.Before(q[j].event.FireAt)
}

func (q fireQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *fireQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *fireQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine delivers scheduled upkeep events in fire-time order over a
// non-blocking channel. A slow consumer loses events rather than
// stalling the timer loop; dropped events are counted, and a day
// rollover lost this way is recovered by the on-load pass anyway.
type Engine struct {
	mu      sync.Mutex
	queue   fireQueue
	out     chan Event
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(fireQueue, 0),
		out:    make(chan Event, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev Event) error {
	if ev.FireAt.IsZero() {
		return ErrInvalidFireTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("upkeep: engine stopped")
	}

	heap.Push(&e.queue, queueItem{event: ev})
	e.signalWakeup()
	return nil
}

// ScheduleDayRollover arms the next local day boundary after now. The
// consumer re-arms from its handler, so exactly one rollover is ever
// pending.
func (e *Engine) ScheduleDayRollover(now time.Time) error {
	return e.Schedule(Event{
		ID:     "rollover",
		Kind:   KindDayRollover,
		FireAt: NextDayBoundary(now),
	})
}

// ScheduleHabitNudge arms a reminder for one habit. The consumer
// decides whether the habit still needs attention when it fires.
func (e *Engine) ScheduleHabitNudge(habitID string, fireAt time.Time) error {
	return e.Schedule(Event{
		ID:      "nudge-" + habitID,
		Kind:    KindHabitNudge,
		HabitID: habitID,
		FireAt:  fireAt,
	})
}

// NextDayBoundary returns the first midnight strictly after now, in
// now's location.
func NextDayBoundary(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.FireAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, ev := range due {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Event{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Event, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.FireAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.event)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
