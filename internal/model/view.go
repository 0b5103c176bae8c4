package model

import (
	"fmt"
	"strings"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

type SortCriterion string

const (
	SortPriority     SortCriterion = "priority"
	SortDueDate      SortCriterion = "dueDate"
	SortAlphabetical SortCriterion = "alphabetical"
	SortCreated      SortCriterion = "created"
)

func (s SortCriterion) IsValid() bool {
	switch s {
	case SortPriority, SortDueDate, SortAlphabetical, SortCreated:
		return true
	default:
		return false
	}
}

// Next cycles priority -> dueDate -> alphabetical -> created -> priority.
func (s SortCriterion) Next() SortCriterion {
	switch s {
	case SortPriority:
		return SortDueDate
	case SortDueDate:
		return SortAlphabetical
	case SortAlphabetical:
		return SortCreated
	default:
		return SortPriority
	}
}

func (s SortCriterion) Label() string {
	switch s {
	case SortPriority:
		return "By Priority"
	case SortDueDate:
		return "By Due Date"
	case SortAlphabetical:
		return "Alphabetically"
	case SortCreated:
		return "By Creation Date"
	default:
		return string(s)
	}
}

// ParseSortCriterion matches criteria case-insensitively, so "duedate" and
// "due-date" both resolve to SortDueDate.
func ParseSortCriterion(raw string) (SortCriterion, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, "-", "")
	norm = strings.ReplaceAll(norm, "_", "")
	switch norm {
	case "priority":
		return SortPriority, nil
	case "duedate", "due":
		return SortDueDate, nil
	case "alphabetical", "alpha", "title":
		return SortAlphabetical, nil
	case "created", "createdat", "newest":
		return SortCreated, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}
}
