package app

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Notice is a transient message for the user.
type Notice struct {
	Level Level
	Title string
	Body  string
	At    time.Time
}

func (n Notice) String() string {
	if n.Body == "" {
		return n.Title
	}
	return n.Title + ": " + n.Body
}

type Notifier interface {
	Notify(Notice) error
}

type NoopNotifier struct{}

func (NoopNotifier) Notify(Notice) error { return nil }

// LogNotifier records every notice in the application log.
type LogNotifier struct {
	Logger *log.Logger
}

func (l LogNotifier) Notify(n Notice) error {
	if l.Logger == nil {
		return nil
	}
	switch n.Level {
	case LevelWarning:
		l.Logger.Warn(n.Title, "body", n.Body)
	default:
		l.Logger.Info(n.Title, "level", string(n.Level), "body", n.Body)
	}
	return nil
}

// DesktopNotifier forwards notices to the OS notification daemon.
type DesktopNotifier struct {
	// MinLevel filters out notices below it; info < success < warning.
	MinLevel Level
}

// Notify starts the platform command and returns without waiting for it to
// finish. Only a failure to start is reported.
func (d DesktopNotifier) Notify(n Notice) error {
	if levelRank(n.Level) < levelRank(d.MinLevel) {
		return nil
	}
	cmd := desktopCommand(runtime.GOOS, n)
	if cmd == nil {
		return nil
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func desktopCommand(goos string, n Notice) *exec.Cmd {
	switch goos {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script)
	default:
		return nil
	}
}

// MultiNotifier fans a notice out to every notifier, returning the first error.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(n Notice) error {
	var first error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(n); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func levelRank(l Level) int {
	switch l {
	case LevelWarning:
		return 2
	case LevelSuccess:
		return 1
	default:
		return 0
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
