package scheduler

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func dueTask(id string, due time.Time) model.Task {
	return model.Task{ID: id, Title: "task " + id, Priority: model.PriorityMedium, DueDate: &due}
}

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	tasks := []model.Task{
		dueTask("later", now.Add(80*time.Millisecond)),
		dueTask("sooner", now.Add(20*time.Millisecond)),
	}
	if err := engine.Watch(tasks, now); err != nil {
		t.Fatalf("watch: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
	if time.Now().Before(second.DueAt) {
		t.Fatalf("event fired before its due time")
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	due := now.Add(20 * time.Millisecond)
	tasks := make([]model.Task, 0, 25)
	for i := 0; i < 25; i++ {
		tasks = append(tasks, dueTask(fmt.Sprintf("t%d", i), due))
	}
	if err := engine.Watch(tasks, now); err != nil {
		t.Fatalf("watch: %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() != 24 {
		t.Fatalf("expected 24 dropped events, got %d", engine.Dropped())
	}
}

func TestWatchRejectsZeroDueTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Watch([]model.Task{dueTask("bad", time.Time{})}, time.Time{}); !errors.Is(err, ErrInvalidDueTime) {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
}

func TestWatchAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	now := time.Now()
	if err := engine.Watch([]model.Task{dueTask("x", now.Add(time.Hour))}, now); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
}

func TestEventsForSkipsCompletedUndatedAndOverdue(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)
	done := now
	tasks := []model.Task{
		{ID: "future", Title: "a", DueDate: &future},
		{ID: "past", Title: "b", DueDate: &past},
		{ID: "undated", Title: "c"},
		{ID: "done", Title: "d", DueDate: &future, Completed: true, CompletedAt: &done},
		{ID: "exact", Title: "e", DueDate: &now},
	}
	events := EventsFor(tasks, now)
	if len(events) != 2 || events[0].TaskID != "future" || events[1].TaskID != "exact" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestWatchReplacesPendingEvents(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Watch([]model.Task{dueTask("stale", now.Add(time.Hour))}, now); err != nil {
		t.Fatalf("watch stale: %v", err)
	}

	soon := now.Add(30 * time.Millisecond)
	if err := engine.Watch([]model.Task{{ID: "fresh", Title: "Pay rent", DueDate: &soon}}, now); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending event, got %d", engine.Pending())
	}
	ev := waitEvent(t, engine.C(), time.Second)
	if ev.TaskID != "fresh" || ev.Title != "Pay rent" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected queue drained, got %d", engine.Pending())
	}
}

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}
