// Package motivation turns completion statistics into short status messages.
package motivation

import (
	"fmt"
	"math"

	"github.com/sandeepkv93/tasklist/internal/model"
)

const (
	ReadyMessage       = "Ready to plan your day? Add your first task to get started."
	CelebrationMessage = "Amazing job! You've completed all your tasks. Time to celebrate!"
	NearlyDoneMessage  = "You're making incredible progress! Just a few more tasks to go."
	HalfwayMessage     = "Halfway there! Keep up the great momentum."
	ProgressMessage    = "You're making good progress. Stay focused!"
	GreatStartMessage  = "Great start! Keep tackling those tasks one by one."
)

func Message(tasks []model.Task) string {
	total := len(tasks)
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return ForCounts(completed, total)
}

// ForCounts picks the message for completed out of total tasks.
func ForCounts(completed, total int) string {
	if total == 0 {
		return ReadyMessage
	}
	if completed == total {
		return CelebrationMessage
	}

	percentage := int(math.Round(float64(completed) / float64(total) * 100))
	switch {
	case percentage >= 75:
		return NearlyDoneMessage
	case percentage >= 50:
		return HalfwayMessage
	case percentage >= 25:
		return ProgressMessage
	case completed > 0:
		return GreatStartMessage
	default:
		remaining := total - completed
		return fmt.Sprintf("You have %s to complete. You can do this!", plural(remaining, "task"))
	}
}

// OverdueNotice describes how many tasks are overdue, or returns "" for none.
func OverdueNotice(count int) string {
	if count <= 0 {
		return ""
	}
	return fmt.Sprintf("You have %s", plural(count, "overdue task"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
