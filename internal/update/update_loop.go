package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasklist/internal/scheduler"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return CheckOverdueMsg{} },
		refreshTickCmd(),
	}
	if m.Watcher != nil {
		if err := m.watchDueDates(); err != nil {
			cmds = append(cmds, appErrorCmd(err))
		}
		cmds = append(cmds, waitForDueCmd(m.Watcher.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncStatus()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.Mode == ModeInput {
			return m.handleInputKey(typed)
		}

		switch keyStr {
		case m.Keys.Palette:
			m.Mode = ModePalette
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Input, "a":
			m.Mode = ModeInput
			m.titleInput.Focus()
			return m, textinput.Blink
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleListKey(typed), nil
	case CheckOverdueMsg:
		m.Controller.CheckOverdue()
		return m, nil
	case RefreshTickMsg:
		m.LastRefresh = typed.At
		m.clampCursor()
		return m, refreshTickCmd()
	case TaskDueMsg:
		m.clampCursor()
		m.Status = StatusBar{Text: fmt.Sprintf("now overdue: %s", typed.Event.Title), IsWarn: true}
		if m.Watcher != nil {
			return m, waitForDueCmd(m.Watcher.C())
		}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.Controller.Logger().Error("Background task failed", "err", typed.Err)
			m.Status = StatusBar{Text: typed.Err.Error(), IsWarn: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = fmt.Sprintf("status: %s", m.Status.Text)
	}
	left := strings.Join([]string{m.renderInputPanel(), m.renderTaskList()}, "\n\n")
	right := strings.TrimSpace(strings.Join([]string{m.renderCommandPalette(), m.renderNoticeLog(), m.renderHelpIfVisible()}, "\n\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("tasklist | mode: %s | sort: %s", strings.ToLower(string(m.Mode)), m.Controller.Sort().Label()),
		Tabs:         m.renderFilterTabs(),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusIsWarn: m.Status.IsWarn,
		Message:      m.Controller.MotivationalMessage(),
		Footer:       fmt.Sprintf("keys: %s add | j/k move | space toggle | %s delete | %s filter | %s sort | %s cmd | %s help | %s quit", m.Keys.Input, m.Keys.Delete, m.Keys.Filter, m.Keys.Sort, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

// syncStatus shows the notices raised since the last sync. A warning wins
// over newer non-warning notices so a failed save is never hidden.
func (m *Model) syncStatus() {
	seq := m.Controller.NoticeSeq()
	if seq == m.noticeSeq {
		return
	}
	fresh := m.Controller.NoticesSince(m.noticeSeq)
	m.noticeSeq = seq
	if len(fresh) == 0 {
		return
	}
	shown := fresh[len(fresh)-1]
	for i := len(fresh) - 1; i >= 0; i-- {
		if isWarning(fresh[i]) {
			shown = fresh[i]
			break
		}
	}
	m.Status = StatusBar{Text: shown.String(), IsWarn: isWarning(shown)}
}

func (m Model) watchDueDates() error {
	if m.Watcher == nil {
		return nil
	}
	if err := m.Watcher.Watch(m.Controller.Tasks(), m.Controller.Now()); err != nil {
		m.Controller.Logger().Warn("Due date watch failed", "err", err)
		return fmt.Errorf("watch due dates: %w", err)
	}
	m.Controller.Logger().Debug("Watching due dates", "pending", m.Watcher.Pending())
	return nil
}

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return AppErrorMsg{Err: fmt.Errorf("due date watcher: %w", scheduler.ErrStopped)}
		}
		return TaskDueMsg{Event: ev}
	}
}

func appErrorCmd(err error) tea.Cmd {
	return func() tea.Msg { return AppErrorMsg{Err: err} }
}

func refreshTickCmd() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return RefreshTickMsg{At: t}
	})
}
