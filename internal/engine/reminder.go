package engine

import (
	"fmt"
	"time"

	"task-planner/internal/model"
)

// UpcomingWindow is how close a deadline must be to count as upcoming.
const UpcomingWindow = time.Hour

// ReminderKind classifies a deadline relative to the current time.
type ReminderKind int

const (
	Upcoming ReminderKind = iota + 1
	Missed
)

func (k ReminderKind) String() string {
	switch k {
	case Upcoming:
		return "upcoming"
	case Missed:
		return "missed"
	default:
		return "unknown"
	}
}

// Reminder is a deadline notice ready to hand to a delivery channel.
type Reminder struct {
	Kind    ReminderKind
	Task    model.Task
	Message string
}

// CheckReminders reports tasks whose deadline is within the next hour
// (inclusive) as upcoming and tasks whose deadline has passed as missed.
// Output follows input order.
func CheckReminders(tasks []model.Task, now time.Time) []Reminder {
	var reminders []Reminder
	for _, task := range tasks {
		left := task.Deadline().Sub(now)
		switch {
		case left < 0:
			reminders = append(reminders, Reminder{
				Kind:    Missed,
				Task:    task,
				Message: fmt.Sprintf("Missed Deadline: Task '%s' has missed its deadline!", task.Name()),
			})
		case left <= UpcomingWindow:
			reminders = append(reminders, Reminder{
				Kind:    Upcoming,
				Task:    task,
				Message: fmt.Sprintf("Reminder: Task '%s' deadline is approaching!", task.Name()),
			})
		}
	}
	return reminders
}
