package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"task-planner/internal/engine"
	"task-planner/internal/model"
	"task-planner/internal/repository"
)

// ReminderService evaluates deadlines for a user and keeps track of which
// notices were already pushed.
type ReminderService struct {
	taskRepo     *repository.TaskRepository
	deliveryRepo *repository.ReminderRepository
}

func NewReminderService(taskRepo *repository.TaskRepository, deliveryRepo *repository.ReminderRepository) *ReminderService {
	return &ReminderService{taskRepo: taskRepo, deliveryRepo: deliveryRepo}
}

// Check returns every current reminder for the user, delivered or not.
func (s *ReminderService) Check(ctx context.Context, user model.User, now time.Time) ([]engine.Reminder, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return engine.CheckReminders(tasks, now), nil
}

// Undelivered returns the reminders not yet pushed to the user.
func (s *ReminderService) Undelivered(ctx context.Context, user model.User, now time.Time) ([]engine.Reminder, error) {
	reminders, err := s.Check(ctx, user, now)
	if err != nil || len(reminders) == 0 {
		return nil, err
	}

	ids := make([]uint, 0, len(reminders))
	for _, r := range reminders {
		ids = append(ids, r.Task.ID())
	}
	delivered, err := s.deliveryRepo.Delivered(ctx, ids)
	if err != nil {
		return nil, err
	}

	pending := reminders[:0]
	for _, r := range reminders {
		if !delivered[repository.DeliveryKey(r.Task.ID(), r.Kind.String())] {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// MarkDelivered records the reminders as pushed.
func (s *ReminderService) MarkDelivered(ctx context.Context, reminders []engine.Reminder, at time.Time) error {
	for _, r := range reminders {
		if err := s.deliveryRepo.MarkDelivered(ctx, r.Task.ID(), r.Kind.String(), at); err != nil {
			return err
		}
	}
	return nil
}

// DailySummary builds the morning agenda: what is due today, what was
// missed, and a suggested plan over the tasks still ahead.
func (s *ReminderService) DailySummary(ctx context.Context, user model.User, now time.Time, capacity int) (string, error) {
	tasks, err := s.taskRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}

	year, month, day := now.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	dueToday := engine.SortByTime(engine.FindByDeadlineRange(tasks, dayStart, dayEnd), model.Task.Deadline)

	var open []model.Task
	var missed []model.Task
	for _, r := range engine.CheckReminders(tasks, now) {
		if r.Kind == engine.Missed {
			missed = append(missed, r.Task)
		}
	}
	for _, task := range tasks {
		if !task.Deadline().Before(now) {
			open = append(open, task)
		}
	}
	plan, err := engine.Schedule(open, capacity)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily agenda</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("Mon, 02 Jan 2006")))

	builder.WriteString("🔥 <b>Due today</b>\n")
	if len(dueToday) == 0 {
		builder.WriteString("— nothing due today\n")
	} else {
		for _, task := range dueToday {
			builder.WriteString(formatTask(task, now))
		}
	}

	if len(missed) > 0 {
		builder.WriteString("\n⚠️ <b>Missed</b>\n")
		for _, task := range missed {
			builder.WriteString(formatTask(task, now))
		}
	}

	builder.WriteString(fmt.Sprintf("\n🧮 <b>Suggested plan</b> (%d of %d h, priority %d)\n", plan.Hours(), capacity, plan.BestPriority))
	if len(plan.Selected) == 0 {
		builder.WriteString("— no open task fits\n")
	} else {
		for _, task := range plan.Selected {
			builder.WriteString(formatTask(task, now))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatTask(task model.Task, now time.Time) string {
	var sb strings.Builder

	deadline := task.Deadline().In(now.Location())
	icon := "🟢"
	switch left := deadline.Sub(now); {
	case left < 0:
		icon = "⚠️"
	case left <= engine.UpcomingWindow:
		icon = "⏳"
	}

	sb.WriteString(fmt.Sprintf("%s %s <i>(%s, P%d)</i>", icon, html.EscapeString(task.Name()), task.Type(), task.Priority()))
	sb.WriteString(fmt.Sprintf("\n   🕘 %s–%s · ⏰ %s",
		task.Start().In(now.Location()).Format("15:04"),
		task.End().In(now.Location()).Format("15:04"),
		deadline.Format("2006-01-02 15:04")))
	sb.WriteByte('\n')
	return sb.String()
}
