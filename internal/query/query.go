// Package query derives filtered and ordered views of a task collection.
// Every function returns a new slice and leaves its input untouched.
package query

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// FilterTasks keeps the tasks matching filter in their original order. An
// unrecognized filter behaves like FilterAll.
func FilterTasks(tasks []model.Task, filter model.Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case model.FilterActive:
			if t.Completed {
				continue
			}
		case model.FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t.Clone())
	}
	return out
}

// SortTasks returns a stably sorted copy of tasks. An unrecognized criterion
// sorts like SortCreated.
func SortTasks(tasks []model.Task, criterion model.SortCriterion) []model.Task {
	out := model.CloneTasks(tasks)
	slices.SortStableFunc(out, comparator(criterion))
	return out
}

func comparator(criterion model.SortCriterion) func(a, b model.Task) int {
	switch criterion {
	case model.SortPriority:
		return func(a, b model.Task) int {
			return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
		}
	case model.SortDueDate:
		return compareDueDate
	case model.SortAlphabetical:
		collator := collate.New(language.English)
		return func(a, b model.Task) int {
			return collator.CompareString(a.Title, b.Title)
		}
	default:
		return func(a, b model.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	}
}

// compareDueDate puts dated tasks first, earliest due date first.
func compareDueDate(a, b model.Task) int {
	switch {
	case a.DueDate != nil && b.DueDate != nil:
		return a.DueDate.Compare(*b.DueDate)
	case a.DueDate != nil:
		return -1
	case b.DueDate != nil:
		return 1
	default:
		return 0
	}
}
