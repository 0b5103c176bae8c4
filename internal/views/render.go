package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	Tabs         string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusIsWarn bool
	Message      string
	Footer       string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	messageStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("14"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	left := panelStyle.Width(58).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := panelStyle.Width(46).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	lines := []string{headerStyle.Render(data.Header)}
	if data.Tabs != "" {
		lines = append(lines, data.Tabs)
	}
	lines = append(lines, row)
	if data.StatusLine != "" {
		if data.StatusIsWarn {
			lines = append(lines, warnStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Message != "" {
		lines = append(lines, messageStyle.Render(data.Message))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
