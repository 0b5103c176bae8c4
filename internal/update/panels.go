package update

import (
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) renderTaskList() string {
	ctrl := m.Controller
	visible := ctrl.VisibleTasks()
	rows := make([]views.TaskRowData, 0, len(visible))
	for i, task := range visible {
		row := views.TaskRowData{
			Title:     task.Title,
			Priority:  string(task.Priority),
			Label:     task.Priority.Label(),
			Overdue:   ctrl.IsOverdue(task),
			Completed: task.Completed,
			Selected:  m.Mode == ModeList && i == m.Cursor,
		}
		if task.HasDueDate() {
			row.Due = ctrl.FormatDate(*task.DueDate)
		}
		rows = append(rows, row)
	}
	return views.RenderTaskList(views.TaskListData{
		Rows:     rows,
		SortName: ctrl.Sort().Label(),
	})
}

func (m Model) renderFilterTabs() string {
	ctrl := m.Controller
	return views.RenderFilterTabs(views.FilterTabsData{
		Current:   string(ctrl.Filter()),
		Total:     ctrl.Len(),
		Active:    ctrl.ActiveCount(),
		Completed: ctrl.CompletedCount(),
	})
}

func (m Model) renderInputPanel() string {
	return views.RenderInputPanel(views.InputPanelData{
		InputView:   m.titleInput.View(),
		Priority:    m.Input.Priority.Label(),
		Suggestions: m.Input.Suggestions,
		ActiveIndex: m.Input.Active,
		Focused:     m.Mode == ModeInput,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

// noticeLogSize is how many recent notices the log panel shows.
const noticeLogSize = 5

func (m Model) renderNoticeLog() string {
	notices := m.Controller.Notices()
	if len(notices) > noticeLogSize {
		notices = notices[len(notices)-noticeLogSize:]
	}
	rows := make([]views.NoticeRowData, 0, len(notices))
	for _, n := range notices {
		rows = append(rows, views.NoticeRowData{
			At:   n.At.Format("15:04"),
			Text: n.String(),
			Warn: isWarning(n),
		})
	}
	return views.RenderNoticeLog(views.NoticeLogData{Rows: rows})
}
