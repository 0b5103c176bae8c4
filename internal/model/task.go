package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority    = errors.New("model: invalid task priority")
	ErrInvalidFilter      = errors.New("model: invalid filter")
	ErrInvalidSort        = errors.New("model: invalid sort criterion")
	ErrEmptyTitle         = errors.New("model: task title is required")
	ErrMissingID          = errors.New("model: task id is required")
	ErrCompletionMismatch = errors.New("model: completed_at must be set exactly when task is completed")
	ErrDuplicateID        = errors.New("model: duplicate task id")
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities with high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return ""
	}
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

type Task struct {
	ID          string
	Title       string
	Completed   bool
	Priority    Priority
	CreatedAt   time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
}

// NewTask builds an incomplete task with a trimmed title and a millisecond
// precision creation time.
func NewTask(id, title string, priority Priority, createdAt time.Time) (Task, error) {
	t := Task{
		ID:        strings.TrimSpace(id),
		Title:     strings.TrimSpace(title),
		Priority:  priority,
		CreatedAt: Truncate(createdAt),
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Completed != (t.CompletedAt != nil) {
		return fmt.Errorf("%w: %q", ErrCompletionMismatch, t.ID)
	}
	return nil
}

// Toggled returns a copy with the completion flag flipped. CompletedAt is set
// to now when the task becomes complete and cleared otherwise.
func (t Task) Toggled(now time.Time) Task {
	out := t.Clone()
	out.Completed = !t.Completed
	if out.Completed {
		at := Truncate(now)
		out.CompletedAt = &at
	} else {
		out.CompletedAt = nil
	}
	return out
}

func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	if t.CompletedAt != nil {
		done := *t.CompletedAt
		out.CompletedAt = &done
	}
	return out
}

func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

func CloneTasks(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Millis returns t as milliseconds since the Unix epoch.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Truncate normalizes t to the precision the store can hold.
func Truncate(t time.Time) time.Time {
	return FromMillis(Millis(t))
}
