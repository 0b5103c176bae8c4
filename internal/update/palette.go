package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsWarn: true}
		return m.closePalette()
	}

	ctrl := m.Controller
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			ctrl.AddTaskDue(a.Title, a.Priority, a.Due)
			m.afterMutation()
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			ctrl.SetFilter(f.Filter)
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("filter: %s", f.Filter)}, nil
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			ctrl.SetSort(s.Sort)
			return commands.Result{Message: fmt.Sprintf("sort: %s", s.Sort.Label())}, nil
		},
		Toggle: func(t commands.TargetArgs) (commands.Result, error) {
			task, ok := m.taskAt(t.Index)
			if !ok {
				return commands.Result{}, noSuchTask(t.Index)
			}
			ctrl.ToggleComplete(task.ID)
			m.afterMutation()
			state := "reopened"
			if !task.Completed {
				state = "completed"
			}
			return commands.Result{Message: fmt.Sprintf("%s task: %s", state, task.Title)}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			task, ok := m.taskAt(t.Index)
			if !ok {
				return commands.Result{}, noSuchTask(t.Index)
			}
			ctrl.DeleteTask(task.ID)
			m.afterMutation()
			return commands.Result{Message: fmt.Sprintf("deleted task: %s", task.Title)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsWarn: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	return m.closePalette()
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	m.Mode = ModeList
	return m
}

func noSuchTask(n int) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task at position %d", n)}
}
