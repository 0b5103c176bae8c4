// Package commands parses the slash commands typed into the palette.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/query"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeFilter Type = "filter"
	TypeSort   Type = "sort"
	TypeToggle Type = "toggle"
	TypeDelete Type = "delete"
)

var aliases = map[string]Type{
	"done":     TypeToggle,
	"complete": TypeToggle,
	"rm":       TypeDelete,
	"del":      TypeDelete,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title    string
	Priority model.Priority
	Due      *time.Time
}

type FilterArgs struct {
	Filter model.Filter
}

type SortArgs struct {
	Sort model.SortCriterion
}

// TargetArgs addresses a task by its 1-based position in the visible list.
type TargetArgs struct {
	Index int
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Filter *FilterArgs
	Sort   *SortArgs
	Target *TargetArgs
}

// Parse reads a command in the local time zone.
func Parse(input string) (Command, error) {
	return ParseIn(input, time.Local)
}

// ParseIn reads a command, resolving due dates in loc.
func ParseIn(input string, loc *time.Location) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args, loc)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeToggle, TypeDelete:
		return parseTarget(input, typ, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string, loc *time.Location) (Command, error) {
	add := AddArgs{Priority: model.PriorityMedium}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "!") && len(lower) > 1:
			p, err := model.ParsePriority(lower[1:])
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority %q", arg[1:])}
			}
			add.Priority = p
		case strings.HasPrefix(lower, "due:"):
			due, err := query.ParseDueDate(arg[len("due:"):], loc)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			add.Due = &due
		default:
			words = append(words, arg)
		}
	}
	add.Title = strings.TrimSpace(strings.Join(words, " "))
	if add.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, active, completed"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires one of priority, duedate, alphabetical, created"}
	}
	s, err := model.ParseSortCriterion(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Sort: s}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", typ)}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number %q", args[0])}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Index: n}}, nil
}
