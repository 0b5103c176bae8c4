// Package app holds the task collection and applies user intents to it,
// persisting a full snapshot after every change.
package app

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/motivation"
	"github.com/sandeepkv93/tasklist/internal/query"
	"github.com/sandeepkv93/tasklist/internal/suggest"
)

const (
	LoadWarning = "There was an issue loading your tasks. Some data might be lost."
	SaveWarning = "Failed to save your changes. Please try again."

	maxNotices = 40
)

// Codec persists the whole collection.
type Codec interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

// Controller is not safe for concurrent use. The UI drives it from a single
// goroutine.
type Controller struct {
	ctx      context.Context
	codec    Codec
	now      func() time.Time
	newID    func() string
	logger   *log.Logger
	notifier Notifier

	tasks          []model.Task
	filter         model.Filter
	sort           model.SortCriterion
	notices        []Notice
	noticeSeq      int
	overdueChecked bool
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newID = gen
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

func WithFilter(f model.Filter) Option {
	return func(c *Controller) {
		if f.IsValid() {
			c.filter = f
		}
	}
}

func WithSort(s model.SortCriterion) Option {
	return func(c *Controller) {
		if s.IsValid() {
			c.sort = s
		}
	}
}

// New loads the stored collection. A load failure starts from an empty
// collection and records a warning notice.
func New(ctx context.Context, codec Codec, opts ...Option) *Controller {
	c := &Controller{
		ctx:      ctx,
		codec:    codec,
		now:      time.Now,
		newID:    model.NewID,
		logger:   log.New(io.Discard),
		notifier: NoopNotifier{},
		tasks:    []model.Task{},
		filter:   model.FilterAll,
		sort:     model.SortPriority,
	}
	for _, opt := range opts {
		opt(c)
	}

	tasks, err := codec.Load(ctx)
	if err != nil {
		c.logger.Error("Error loading tasks", "err", err)
		c.notify(LevelWarning, "Warning", LoadWarning)
	}
	if tasks != nil {
		c.tasks = tasks
	}
	c.logger.Info("Loaded tasks", "count", len(c.tasks))
	return c
}

func (c *Controller) AddTask(title string, priority model.Priority) {
	c.AddTaskDue(title, priority, nil)
}

// AddTaskDue prepends a new task. A blank title is ignored and an unknown
// priority falls back to medium.
func (c *Controller) AddTaskDue(title string, priority model.Priority, due *time.Time) {
	if !priority.IsValid() {
		priority = model.PriorityMedium
	}
	task, err := model.NewTask(c.newID(), title, priority, c.now())
	if err != nil {
		c.logger.Debug("Ignoring task", "err", err)
		return
	}
	if due != nil {
		d := model.Truncate(*due)
		task.DueDate = &d
	}

	next := make([]model.Task, 0, len(c.tasks)+1)
	next = append(next, task)
	next = append(next, c.tasks...)
	c.tasks = next
	c.notify(LevelSuccess, "Task added", task.Title)
	c.save()
}

func (c *Controller) ToggleComplete(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	next := model.CloneTasks(c.tasks)
	next[i] = next[i].Toggled(c.now())
	c.tasks = next
	c.save()
}

func (c *Controller) DeleteTask(id string) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	next := make([]model.Task, 0, len(c.tasks)-1)
	next = append(next, c.tasks[:i]...)
	next = append(next, c.tasks[i+1:]...)
	c.tasks = next
	c.notify(LevelInfo, "Task deleted", "")
	c.save()
}

func (c *Controller) SetFilter(f model.Filter) {
	if f.IsValid() {
		c.filter = f
	}
}

func (c *Controller) SetSort(s model.SortCriterion) {
	if s.IsValid() {
		c.sort = s
	}
}

func (c *Controller) CycleFilter() model.Filter {
	c.filter = c.filter.Next()
	return c.filter
}

func (c *Controller) CycleSort() model.SortCriterion {
	c.sort = c.sort.Next()
	return c.sort
}

func (c *Controller) Filter() model.Filter { return c.filter }
func (c *Controller) Sort() model.SortCriterion { return c.sort }

// Tasks returns a copy of the collection in stored order.
func (c *Controller) Tasks() []model.Task {
	return model.CloneTasks(c.tasks)
}

func (c *Controller) Len() int { return len(c.tasks) }

// VisibleTasks applies the current filter, then the current sort.
func (c *Controller) VisibleTasks() []model.Task {
	return query.SortTasks(query.FilterTasks(c.tasks, c.filter), c.sort)
}

func (c *Controller) ActiveCount() int {
	return len(query.FilterTasks(c.tasks, model.FilterActive))
}

func (c *Controller) CompletedCount() int {
	return len(query.FilterTasks(c.tasks, model.FilterCompleted))
}

func (c *Controller) SuggestionsFor(partial string) []string {
	return suggest.FindAutocompleteSuggestions(partial, c.tasks, suggest.DefaultMax)
}

func (c *Controller) MotivationalMessage() string {
	return motivation.Message(c.tasks)
}

func (c *Controller) IsOverdue(task model.Task) bool {
	return query.IsTaskOverdue(task, c.now())
}

func (c *Controller) FormatDate(ts time.Time) string {
	return query.FormatDate(ts, c.now())
}

func (c *Controller) Now() time.Time { return c.now() }

func (c *Controller) Logger() *log.Logger { return c.logger }

// CheckOverdue runs once per controller, on the first call that sees a
// non-empty collection. It returns the overdue notice text, or "" when there
// is nothing to report or the check already ran.
func (c *Controller) CheckOverdue() string {
	if c.overdueChecked || len(c.tasks) == 0 {
		return ""
	}
	c.overdueChecked = true
	msg := motivation.OverdueNotice(len(query.OverdueTasks(c.tasks, c.now())))
	if msg != "" {
		c.notify(LevelWarning, "Overdue tasks", msg)
	}
	return msg
}

// Notices returns the most recent notices, oldest first.
func (c *Controller) Notices() []Notice {
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// NoticesSince returns the notices recorded after seq, oldest first. Notices
// already dropped from the log are not returned.
func (c *Controller) NoticesSince(seq int) []Notice {
	n := c.noticeSeq - seq
	if n <= 0 {
		return []Notice{}
	}
	if n > len(c.notices) {
		n = len(c.notices)
	}
	out := make([]Notice, n)
	copy(out, c.notices[len(c.notices)-n:])
	return out
}

// NoticeSeq counts every notice ever recorded, including ones dropped from
// the log.
func (c *Controller) NoticeSeq() int { return c.noticeSeq }

// LastNotice reports the newest notice, if any.
func (c *Controller) LastNotice() (Notice, bool) {
	if len(c.notices) == 0 {
		return Notice{}, false
	}
	return c.notices[len(c.notices)-1], true
}

func (c *Controller) save() {
	if err := c.codec.Save(c.ctx, c.tasks); err != nil {
		c.logger.Error("Error saving tasks", "count", len(c.tasks), "err", err)
		c.notify(LevelWarning, "Error", SaveWarning)
	}
}

func (c *Controller) notify(level Level, title, body string) {
	n := Notice{Level: level, Title: title, Body: body, At: c.now()}
	c.noticeSeq++
	c.notices = append(c.notices, n)
	if len(c.notices) > maxNotices {
		c.notices = c.notices[len(c.notices)-maxNotices:]
	}
	if err := c.notifier.Notify(n); err != nil {
		c.logger.Warn("Notification failed", "title", title, "err", err)
	}
}

func (c *Controller) indexOf(id string) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
