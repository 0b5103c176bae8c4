package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearSuggestions()
		m.Mode = ModeList
		m.titleInput.Blur()
		return m, nil
	case "up":
		if len(m.Input.Suggestions) > 0 {
			if m.Input.Active > 0 {
				m.Input.Active--
			} else {
				m.Input.Active = 0
			}
		}
		return m, nil
	case "down":
		if len(m.Input.Suggestions) > 0 && m.Input.Active < len(m.Input.Suggestions)-1 {
			m.Input.Active++
		}
		return m, nil
	case "tab":
		m.Input.Priority = m.Input.Priority.Next()
		return m, nil
	case "enter":
		if m.Input.Active >= 0 && m.Input.Active < len(m.Input.Suggestions) {
			m.titleInput.SetValue(m.Input.Suggestions[m.Input.Active])
			m.titleInput.CursorEnd()
			m.clearSuggestions()
			return m, nil
		}
		m.addTask(m.titleInput.Value(), m.Input.Priority)
		return m, nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	m.refreshSuggestions()
	return m, cmd
}

// addTask resets the input only when the controller accepted the task.
func (m *Model) addTask(title string, priority model.Priority) {
	before := m.Controller.Len()
	m.Controller.AddTask(title, priority)
	if m.Controller.Len() == before {
		return
	}
	m.titleInput.SetValue("")
	m.Input.Priority = model.PriorityMedium
	m.clearSuggestions()
	m.afterMutation()
}

func (m *Model) refreshSuggestions() {
	m.Input.Suggestions = m.Controller.SuggestionsFor(m.titleInput.Value())
	m.Input.Active = -1
}

func (m *Model) clearSuggestions() {
	m.Input.Suggestions = nil
	m.Input.Active = -1
}
