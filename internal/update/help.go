package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/tasklist/internal/views"
)

const paletteGuide = `## Commands

- ` + "`add <title> [!high|!medium|!low] [due:YYYY-MM-DD]`" + `
- ` + "`filter all|active|completed`" + `
- ` + "`sort priority|duedate|alphabetical|created`" + `
- ` + "`done <n>`" + ` or ` + "`toggle <n>`" + `
- ` + "`delete <n>`" + `

Task numbers follow the visible list.
`

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", displayKey(kb.Key), kb.Action))
	}
	guide := m.helpViewport
	guide.SetContent(views.RenderMarkdown(paletteGuide))
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		Guide: guide.View(),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeInput:
		return []KeyBinding{
			{Key: "enter", Action: "add task / pick suggestion"},
			{Key: "up/down", Action: "move suggestion"},
			{Key: "tab", Action: "cycle priority"},
			{Key: "esc", Action: "back to list"},
		}
	case ModePalette:
		return []KeyBinding{
			{Key: "enter", Action: "run command"},
			{Key: "esc", Action: "close palette"},
		}
	default:
		return []KeyBinding{
			{Key: m.Keys.Input, Action: "add a task"},
			{Key: "j/k", Action: "move selection"},
			{Key: m.Keys.Toggle, Action: "toggle complete"},
			{Key: m.Keys.Delete, Action: "delete task"},
			{Key: m.Keys.Filter, Action: "cycle filter (1/2/3 pick)"},
			{Key: m.Keys.Sort, Action: "cycle sort"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	global := m.globalBindings()
	local := m.modeBindings()
	out := make([]key.Binding, 0, len(global)+len(local))
	for _, kb := range global {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(displayKey(kb.Key), kb.Action)))
	}
	for _, kb := range local {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(displayKey(kb.Key), kb.Action)))
	}
	return out
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
