package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

var ErrInvalidDate = errors.New("query: invalid date")

// IsTaskOverdue reports whether an incomplete task's due date lies strictly
// before now.
func IsTaskOverdue(task model.Task, now time.Time) bool {
	if task.DueDate == nil || task.Completed {
		return false
	}
	return now.After(*task.DueDate)
}

func OverdueTasks(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if IsTaskOverdue(t, now) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// FormatDate renders ts as "Jan 2" in now's location, adding the year when it
// differs from now's.
func FormatDate(ts, now time.Time) string {
	local := ts.In(now.Location())
	if local.Year() != now.Year() {
		return local.Format("Jan 2, 2006")
	}
	return local.Format("Jan 2")
}

// ParseDueDate accepts "2006-01-02", meaning the last millisecond of that day
// in loc, or a full RFC3339 timestamp.
func ParseDueDate(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if loc == nil {
		loc = time.Local
	}
	if day, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		end := day.AddDate(0, 0, 1).Add(-time.Millisecond)
		return model.Truncate(end), nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return model.Truncate(ts), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}
