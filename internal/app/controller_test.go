package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/motivation"
	"github.com/sandeepkv93/tasklist/internal/persist"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

var epoch = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

type recordingNotifier struct {
	notices []Notice
}

func (r *recordingNotifier) Notify(n Notice) error {
	r.notices = append(r.notices, n)
	return nil
}

type toggleStore struct {
	*storage.MemoryStore
	fail bool
}

func (s *toggleStore) Set(ctx context.Context, key, value string) error {
	if s.fail {
		return errors.New("quota exceeded")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func newTestController(t *testing.T, store storage.Store) (*Controller, *fakeClock, *recordingNotifier) {
	t.Helper()
	clock := &fakeClock{t: epoch}
	notifier := &recordingNotifier{}
	c := New(context.Background(), persist.NewCodec(store),
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs()),
		WithNotifier(notifier),
	)
	return c, clock, notifier
}

func reload(t *testing.T, store storage.Store) []model.Task {
	t.Helper()
	tasks, err := persist.NewCodec(store).Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	return tasks
}

func TestAddTaskPrependsAndPersists(t *testing.T) {
	store := storage.NewMemoryStore()
	c, clock, notifier := newTestController(t, store)

	c.AddTask("Buy milk", model.PriorityHigh)
	clock.Advance(time.Minute)
	c.AddTask("  Call mom  ", model.Priority("urgent"))

	tasks := c.Tasks()
	if len(tasks) != 2 || tasks[0].Title != "Call mom" || tasks[1].Title != "Buy milk" {
		t.Fatalf("expected newest first, got %+v", tasks)
	}
	if tasks[0].Priority != model.PriorityMedium {
		t.Fatalf("unknown priority must fall back to medium, got %q", tasks[0].Priority)
	}
	if tasks[0].Completed || tasks[0].CompletedAt != nil || !tasks[0].CreatedAt.Equal(epoch.Add(time.Minute)) {
		t.Fatalf("unexpected new task state: %+v", tasks[0])
	}

	stored := reload(t, store)
	if len(stored) != 2 || stored[0].ID != tasks[0].ID {
		t.Fatalf("store out of sync with memory: %+v", stored)
	}

	last := notifier.notices[len(notifier.notices)-1]
	if last.Title != "Task added" || last.Body != "Call mom" || last.Level != LevelSuccess {
		t.Fatalf("unexpected notice: %+v", last)
	}
}

func TestAddTaskIgnoresBlankTitle(t *testing.T) {
	store := storage.NewMemoryStore()
	c, _, notifier := newTestController(t, store)

	c.AddTask("   ", model.PriorityHigh)
	if c.Len() != 0 {
		t.Fatalf("blank title must not add a task")
	}
	if _, err := store.Get(context.Background(), persist.DefaultTasksKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("blank title must not save, got %v", err)
	}
	if len(notifier.notices) != 0 {
		t.Fatalf("blank title must not notify, got %+v", notifier.notices)
	}
}

func TestAddTaskDueStoresDueDate(t *testing.T) {
	c, _, _ := newTestController(t, storage.NewMemoryStore())
	due := epoch.Add(48 * time.Hour)
	c.AddTaskDue("File taxes", model.PriorityLow, &due)

	task := c.Tasks()[0]
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Fatalf("expected due date %v, got %v", due, task.DueDate)
	}
	if got := c.FormatDate(*task.DueDate); got != "Feb 11" {
		t.Fatalf("unexpected formatted due date %q", got)
	}
}

func TestToggleCompleteRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	c, clock, _ := newTestController(t, store)
	c.AddTask("Buy milk", model.PriorityHigh)
	id := c.Tasks()[0].ID

	clock.Advance(time.Hour)
	c.ToggleComplete(id)
	task := c.Tasks()[0]
	if !task.Completed || task.CompletedAt == nil || !task.CompletedAt.Equal(epoch.Add(time.Hour)) {
		t.Fatalf("expected completed task, got %+v", task)
	}
	if c.ActiveCount() != 0 || c.CompletedCount() != 1 {
		t.Fatalf("unexpected counts: %d active, %d completed", c.ActiveCount(), c.CompletedCount())
	}
	if !reload(t, store)[0].Completed {
		t.Fatal("toggle must persist")
	}

	c.ToggleComplete(id)
	task = c.Tasks()[0]
	if task.Completed || task.CompletedAt != nil {
		t.Fatalf("expected task reopened, got %+v", task)
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	store := &toggleStore{MemoryStore: storage.NewMemoryStore()}
	c, _, notifier := newTestController(t, store)
	c.AddTask("Buy milk", model.PriorityHigh)

	store.fail = true
	before := len(notifier.notices)
	c.ToggleComplete("missing")
	c.DeleteTask("missing")
	if len(notifier.notices) != before {
		t.Fatalf("unknown id must not save or notify, got %+v", notifier.notices[before:])
	}
}

func TestDeleteLastTaskPersistsEmptyCollection(t *testing.T) {
	store := storage.NewMemoryStore()
	c, _, notifier := newTestController(t, store)
	c.AddTask("Buy milk", model.PriorityHigh)

	c.DeleteTask(c.Tasks()[0].ID)
	if c.Len() != 0 {
		t.Fatalf("expected empty collection, got %+v", c.Tasks())
	}
	if got := reload(t, store); len(got) != 0 {
		t.Fatalf("deleting the last task must persist, store still has %+v", got)
	}
	last := notifier.notices[len(notifier.notices)-1]
	if last.Title != "Task deleted" {
		t.Fatalf("unexpected notice: %+v", last)
	}
}

func TestSaveFailureKeepsMemoryAndWarns(t *testing.T) {
	store := &toggleStore{MemoryStore: storage.NewMemoryStore()}
	c, _, notifier := newTestController(t, store)
	c.AddTask("Buy milk", model.PriorityHigh)

	store.fail = true
	c.AddTask("Call mom", model.PriorityLow)
	if c.Len() != 2 {
		t.Fatalf("failed save must keep the in-memory change")
	}
	var warned bool
	for _, n := range notifier.notices {
		if n.Level == LevelWarning && n.Body == SaveWarning {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected save warning, got %+v", notifier.notices)
	}
	if got := reload(t, store.MemoryStore); len(got) != 1 {
		t.Fatalf("store must keep the previous snapshot, got %+v", got)
	}
}

func TestLoadMismatchStartsEmptyWithWarning(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	seed, _, _ := newTestController(t, store)
	seed.AddTask("Buy milk", model.PriorityHigh)
	if err := store.Set(ctx, persist.DefaultChecksumKey, "12345"); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	c, _, notifier := newTestController(t, store)
	if c.Len() != 0 {
		t.Fatalf("expected empty collection after mismatch, got %+v", c.Tasks())
	}
	if len(notifier.notices) != 1 || notifier.notices[0].Body != LoadWarning {
		t.Fatalf("expected load warning, got %+v", notifier.notices)
	}
	if raw, err := store.Get(ctx, persist.DefaultTasksKey); err != nil || raw == "" {
		t.Fatalf("corrupted data must not be removed on load: %q %v", raw, err)
	}
}

func TestLoadRestoresPreviousSession(t *testing.T) {
	store := storage.NewMemoryStore()
	first, _, _ := newTestController(t, store)
	first.AddTask("Buy milk", model.PriorityHigh)
	first.AddTask("Call mom", model.PriorityLow)

	second, _, notifier := newTestController(t, store)
	if second.Len() != 2 || second.Tasks()[0].Title != "Call mom" {
		t.Fatalf("unexpected restored tasks: %+v", second.Tasks())
	}
	if len(notifier.notices) != 0 {
		t.Fatalf("clean load must not notify, got %+v", notifier.notices)
	}
}

func TestVisibleTasksAppliesFilterThenSort(t *testing.T) {
	c, clock, _ := newTestController(t, storage.NewMemoryStore())
	c.AddTask("low", model.PriorityLow)
	clock.Advance(time.Minute)
	c.AddTask("high", model.PriorityHigh)
	clock.Advance(time.Minute)
	c.AddTask("medium", model.PriorityMedium)
	c.ToggleComplete(c.Tasks()[1].ID)

	visible := c.VisibleTasks()
	if len(visible) != 3 || visible[0].Title != "high" || visible[2].Title != "low" {
		t.Fatalf("unexpected priority order: %+v", visible)
	}

	c.SetFilter(model.FilterActive)
	visible = c.VisibleTasks()
	if len(visible) != 2 || visible[0].Title != "medium" {
		t.Fatalf("unexpected active view: %+v", visible)
	}

	if got := c.CycleSort(); got != model.SortDueDate {
		t.Fatalf("expected dueDate after priority, got %q", got)
	}
	c.SetSort(model.SortCriterion("bogus"))
	if c.Sort() != model.SortDueDate {
		t.Fatalf("invalid sort must be ignored, got %q", c.Sort())
	}
	if got := c.CycleFilter(); got != model.FilterCompleted {
		t.Fatalf("expected completed after active, got %q", got)
	}
}

func TestOptionsSeedFilterAndSort(t *testing.T) {
	c := New(context.Background(), persist.NewCodec(storage.NewMemoryStore()),
		WithFilter(model.FilterCompleted), WithSort(model.SortAlphabetical))
	if c.Filter() != model.FilterCompleted || c.Sort() != model.SortAlphabetical {
		t.Fatalf("unexpected initial view state: %q %q", c.Filter(), c.Sort())
	}
}

func TestSuggestionsAndMessage(t *testing.T) {
	c, _, _ := newTestController(t, storage.NewMemoryStore())
	if c.MotivationalMessage() != motivation.ReadyMessage {
		t.Fatalf("unexpected empty message %q", c.MotivationalMessage())
	}
	c.AddTask("Buy milk", model.PriorityHigh)
	c.AddTask("Milk run", model.PriorityLow)
	c.AddTask("Walk dog", model.PriorityLow)

	got := c.SuggestionsFor("mil")
	if len(got) != 2 || got[0] != "Buy milk" || got[1] != "Milk run" {
		t.Fatalf("unexpected suggestions %v", got)
	}
	if c.MotivationalMessage() != "You have 3 tasks to complete. You can do this!" {
		t.Fatalf("unexpected message %q", c.MotivationalMessage())
	}
}

func TestCheckOverdueRunsOnce(t *testing.T) {
	c, clock, notifier := newTestController(t, storage.NewMemoryStore())
	if msg := c.CheckOverdue(); msg != "" {
		t.Fatalf("empty collection must not report, got %q", msg)
	}

	due := epoch.Add(time.Hour)
	c.AddTaskDue("File taxes", model.PriorityHigh, &due)
	c.AddTaskDue("Pay rent", model.PriorityHigh, &due)
	clock.Advance(2 * time.Hour)

	if !c.IsOverdue(c.Tasks()[0]) {
		t.Fatal("expected task to be overdue")
	}
	if msg := c.CheckOverdue(); msg != "You have 2 overdue tasks" {
		t.Fatalf("unexpected overdue notice %q", msg)
	}
	last := notifier.notices[len(notifier.notices)-1]
	if last.Level != LevelWarning || last.Body != "You have 2 overdue tasks" {
		t.Fatalf("unexpected notice %+v", last)
	}
	if msg := c.CheckOverdue(); msg != "" {
		t.Fatalf("second check must be silent, got %q", msg)
	}
}

func TestSaveWarningIsNewestNoticeAfterMutation(t *testing.T) {
	store := &toggleStore{MemoryStore: storage.NewMemoryStore()}
	c, _, _ := newTestController(t, store)
	c.AddTask("Buy milk", model.PriorityHigh)
	store.fail = true

	c.AddTask("Call mom", model.PriorityLow)
	last, ok := c.LastNotice()
	if !ok || last.Level != LevelWarning || last.Body != SaveWarning {
		t.Fatalf("expected save warning after add, got %+v", last)
	}

	c.DeleteTask(c.Tasks()[0].ID)
	last, _ = c.LastNotice()
	if last.Level != LevelWarning || last.Body != SaveWarning {
		t.Fatalf("expected save warning after delete, got %+v", last)
	}
}

func TestNoticesSince(t *testing.T) {
	c, _, _ := newTestController(t, storage.NewMemoryStore())
	if got := c.NoticesSince(0); len(got) != 0 {
		t.Fatalf("expected no notices, got %+v", got)
	}
	c.AddTask("Buy milk", model.PriorityHigh)
	seq := c.NoticeSeq()
	c.AddTask("Call mom", model.PriorityLow)
	c.DeleteTask(c.Tasks()[0].ID)

	got := c.NoticesSince(seq)
	if len(got) != 2 || got[0].Body != "Call mom" || got[1].Title != "Task deleted" {
		t.Fatalf("unexpected notices since %d: %+v", seq, got)
	}
	if got := c.NoticesSince(c.NoticeSeq()); len(got) != 0 {
		t.Fatalf("expected nothing new, got %+v", got)
	}

	for i := 0; i < maxNotices+2; i++ {
		c.AddTask("task", model.PriorityLow)
	}
	if got := c.NoticesSince(0); len(got) != maxNotices {
		t.Fatalf("expected the capped log, got %d notices", len(got))
	}
}

func TestNoticesAreCapped(t *testing.T) {
	c, _, _ := newTestController(t, storage.NewMemoryStore())
	for i := 0; i < maxNotices+5; i++ {
		c.AddTask(fmt.Sprintf("task %d", i), model.PriorityLow)
	}
	notices := c.Notices()
	if len(notices) != maxNotices {
		t.Fatalf("expected %d notices, got %d", maxNotices, len(notices))
	}
	last, ok := c.LastNotice()
	if !ok || last.Body != fmt.Sprintf("task %d", maxNotices+4) {
		t.Fatalf("unexpected last notice %+v", last)
	}
}

func TestNoticeSeqCountsPastCap(t *testing.T) {
	c, _, _ := newTestController(t, storage.NewMemoryStore())
	for i := 0; i < maxNotices+3; i++ {
		c.AddTask("task", model.PriorityLow)
	}
	if c.NoticeSeq() != maxNotices+3 {
		t.Fatalf("expected seq %d, got %d", maxNotices+3, c.NoticeSeq())
	}
}
