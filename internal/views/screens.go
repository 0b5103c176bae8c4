package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const EmptyListText = "No tasks found"

type TaskRowData struct {
	Title     string
	Priority  string
	Label     string
	Due       string
	Overdue   bool
	Completed bool
	Selected  bool
}

type TaskListData struct {
	Rows     []TaskRowData
	SortName string
}

type FilterTabsData struct {
	Current   string
	Total     int
	Active    int
	Completed int
}

type InputPanelData struct {
	InputView   string
	Priority    string
	Suggestions []string
	ActiveIndex int
	Focused     bool
}

type NoticeRowData struct {
	At   string
	Text string
	Warn bool
}

type NoticeLogData struct {
	Rows []NoticeRowData
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
	Guide    string
}

var (
	selectedStyle  = lipgloss.NewStyle().Bold(true)
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks (%s):\n", strings.ToLower(data.SortName)))
	if len(data.Rows) == 0 {
		b.WriteString("  " + EmptyListText)
		return b.String()
	}
	for i, row := range data.Rows {
		b.WriteString(renderTaskRow(i+1, row))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskRow(n int, row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}

	title := row.Title
	switch {
	case row.Completed:
		title = completedStyle.Render(title)
	case row.Selected:
		title = selectedStyle.Render(title)
	}

	line := fmt.Sprintf("%s %d. %s %s %s", cursor, n, check, priorityBadge(row.Priority, row.Label), title)
	if row.Due != "" {
		due := "due " + row.Due
		if row.Overdue && !row.Completed {
			due = overdueStyle.Render(due + " (overdue)")
		}
		line += " " + due
	}
	return line
}

func priorityBadge(priority, label string) string {
	badge := "[" + label + "]"
	if style, ok := priorityStyles[priority]; ok {
		return style.Render(badge)
	}
	return badge
}

func RenderFilterTabs(data FilterTabsData) string {
	tabs := []struct {
		key   string
		label string
	}{
		{"all", fmt.Sprintf("All (%d)", data.Total)},
		{"active", fmt.Sprintf("Active (%d)", data.Active)},
		{"completed", fmt.Sprintf("Completed (%d)", data.Completed)},
	}
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab.key == data.Current {
			parts = append(parts, activeTabStyle.Render(tab.label))
			continue
		}
		parts = append(parts, tabStyle.Render(tab.label))
	}
	return strings.Join(parts, "  ")
}

func RenderInputPanel(data InputPanelData) string {
	var b strings.Builder
	b.WriteString("new task:\n")
	b.WriteString(data.InputView + "\n")
	b.WriteString(fmt.Sprintf("priority: %s", priorityBadge(strings.ToLower(data.Priority), data.Priority)))
	if data.Focused {
		b.WriteString("  [tab]cycle [enter]add [esc]done")
	}
	if len(data.Suggestions) > 0 {
		b.WriteString("\nsuggestions:")
		for i, s := range data.Suggestions {
			cursor := " "
			if i == data.ActiveIndex {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("\n%s %s", cursor, s))
		}
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

// RenderNoticeLog lists recent notices, newest last. An empty log renders
// nothing.
func RenderNoticeLog(data NoticeLogData) string {
	if len(data.Rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("notifications:")
	for _, row := range data.Rows {
		line := fmt.Sprintf("%s %s", row.At, row.Text)
		if row.Warn {
			line = warnStyle.Render("! " + line)
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help (%s mode):\n", strings.ToLower(data.Mode)))
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n\n" + data.HelpView)
	}
	if data.Guide != "" {
		b.WriteString("\n\n" + data.Guide)
	}
	return b.String()
}
