package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Controller.VisibleTasks())-1 {
			m.Cursor++
		}
	case "home", "g":
		m.Cursor = 0
	case "end", "G":
		m.Cursor = max(len(m.Controller.VisibleTasks())-1, 0)
	case m.Keys.Toggle, "x", "enter":
		if task, ok := m.selectedTask(); ok {
			m.Controller.ToggleComplete(task.ID)
			m.afterMutation()
		}
	case m.Keys.Delete, "delete":
		if task, ok := m.selectedTask(); ok {
			m.Controller.DeleteTask(task.ID)
			m.afterMutation()
		}
	case m.Keys.Filter:
		f := m.Controller.CycleFilter()
		m.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", f)}
	case "1":
		m.setFilter(model.FilterAll)
	case "2":
		m.setFilter(model.FilterActive)
	case "3":
		m.setFilter(model.FilterCompleted)
	case m.Keys.Sort:
		s := m.Controller.CycleSort()
		m.Status = StatusBar{Text: fmt.Sprintf("sort: %s", s.Label())}
	}
	return m
}

func (m *Model) setFilter(f model.Filter) {
	m.Controller.SetFilter(f)
	m.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", f)}
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.Controller.VisibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}

// taskAt resolves a 1-based position in the visible list.
func (m Model) taskAt(n int) (model.Task, bool) {
	visible := m.Controller.VisibleTasks()
	if n < 1 || n > len(visible) {
		return model.Task{}, false
	}
	return visible[n-1], true
}

func (m *Model) afterMutation() {
	m.clampCursor()
	m.Controller.CheckOverdue()
	_ = m.watchDueDates()
}

func (m *Model) clampCursor() {
	n := len(m.Controller.VisibleTasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
