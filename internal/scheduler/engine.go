// Package scheduler emits an event at the moment each watched task becomes
// overdue.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

var (
	ErrInvalidDueTime = errors.New("scheduler: invalid due time")
	ErrStopped        = errors.New("scheduler: engine stopped")
)

// DueEvent fires once the task's due date has passed.
type DueEvent struct {
	TaskID string
	Title  string
	DueAt  time.Time
}

type dueQueue []DueEvent

func (q dueQueue) Len() int { return len(q) }

func (q dueQueue) Less(i, j int) bool {
	return q[i].DueAt.Before(q[j].DueAt)
}

func (q dueQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *dueQueue) Push(x any) {
	*q = append(*q, x.(DueEvent))
}

func (q *dueQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   dueQueue
	out     chan DueEvent
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
		queue:  make(dueQueue, 0),
		out:    make(chan DueEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// C is closed after Stop.
func (e *Engine) C() <-chan DueEvent {
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

// Watch replaces everything pending with the incomplete tasks that are not
// yet overdue at now.
func (e *Engine) Watch(tasks []model.Task, now time.Time) error {
	events := EventsFor(tasks, now)
	for _, ev := range events {
		if ev.DueAt.IsZero() {
			return ErrInvalidDueTime
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	e.queue = dueQueue(events)
	heap.Init(&e.queue)
	e.signalWakeup()
	return nil
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Dropped counts events discarded because C was full.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// EventsFor lists a due event for every incomplete task whose due date is
// still ahead of now.
func EventsFor(tasks []model.Task, now time.Time) []DueEvent {
	out := make([]DueEvent, 0)
	for _, t := range tasks {
		if t.Completed || !t.HasDueDate() || now.After(*t.DueDate) {
			continue
		}
		out = append(out, DueEvent{TaskID: t.ID, Title: t.Title, DueAt: *t.DueDate})
	}
	return out
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

		// overdue means strictly after the due instant
		wait := time.Until(next.DueAt) + time.Millisecond
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
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

func (e *Engine) peek() (DueEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return DueEvent{}, false
	}
	return e.queue[0], true
}

func (e *Engine) popDue(now time.Time) []DueEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]DueEvent, 0)
	for len(e.queue) > 0 {
		if !now.After(e.queue[0].DueAt) {
			break
		}
		out = append(out, heap.Pop(&e.queue).(DueEvent))
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
