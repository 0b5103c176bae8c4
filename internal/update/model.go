// Package update holds the Bubble Tea model that drives the task list.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/tasklist/internal/app"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/scheduler"
)

type Mode string

const (
	ModeList    Mode = "List"
	ModeInput   Mode = "Input"
	ModePalette Mode = "Palette"
)

// RefreshInterval is how often overdue badges are re-evaluated.
const RefreshInterval = time.Minute

type StatusBar struct {
	Text   string
	IsWarn bool
}

type GlobalKeyMap struct {
	Input   string
	Filter  string
	Sort    string
	Toggle  string
	Delete  string
	Palette string
	Help    string
	Quit    string
}

type InputState struct {
	Priority    model.Priority
	Suggestions []string
	// Active is the highlighted suggestion, or -1 for none.
	Active int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Controller  *app.Controller
	Watcher     *scheduler.Engine
	Mode        Mode
	Cursor      int
	Input       InputState
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastRefresh time.Time

	titleInput   textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	helpViewport viewport.Model
	noticeSeq    int
}

// AppErrorMsg reports a failure from background work such as the due date
// watcher.
type AppErrorMsg struct {
	Err error
}

// CheckOverdueMsg asks the model to run the one-shot overdue check.
type CheckOverdueMsg struct{}

// RefreshTickMsg re-renders time-dependent state such as overdue badges.
type RefreshTickMsg struct {
	At time.Time
}

// TaskDueMsg reports a task whose due date just passed.
type TaskDueMsg struct {
	Event scheduler.DueEvent
}

func NewModel(ctrl *app.Controller) Model {
	m := Model{
		Controller: ctrl,
		Mode:       ModeList,
		Input: InputState{
			Priority: model.PriorityMedium,
			Active:   -1,
		},
		Keys: GlobalKeyMap{
			Input:   "i",
			Filter:  "f",
			Sort:    "s",
			Toggle:  " ",
			Delete:  "d",
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.initBubbleComponents()
	// notices raised while loading surface on the first render
	m.syncStatus()
	return m
}

// NewModelWithWatcher also keeps engine pointed at the tasks that can still
// become overdue.
func NewModelWithWatcher(ctrl *app.Controller, engine *scheduler.Engine) Model {
	m := NewModel(ctrl)
	m.Watcher = engine
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = "add> "
	m.titleInput.Placeholder = "What needs to be done?"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
	m.helpViewport = viewport.New(44, 14)
}
