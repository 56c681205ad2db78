package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"task-planner/internal/engine"
	"task-planner/internal/model"
)

const helpText = "ℹ️ <b>Commands</b>\n" +
	"• /newtask — add a task step by step\n" +
	"• /add name | type | priority | start | end | deadline — add in one line\n" +
	"• /tasks [priority|start_time|end_time|task_type] — list tasks\n" +
	"• /delete &lt;id&gt; — delete a task (edit = delete and add again)\n" +
	"• /plan [hours] — best set of tasks for the time budget\n" +
	"• /capacity &lt;hours&gt; — default budget for /plan (0 resets)\n" +
	"• /reminders — upcoming and missed deadlines\n" +
	"• /agenda — today's agenda\n" +
	"• /find &lt;name&gt; — find a task by name\n" +
	"• /due &lt;from&gt; | &lt;to&gt; — tasks with a deadline in the range\n" +
	"• /priority &lt;1-5&gt; — tasks with that priority\n" +
	"• /busy [minutes] — busiest time slot\n" +
	"• /timeline [field] — chart data for your tasks\n" +
	"• /cancel — abort the current entry"

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("👋 Hi, %s!\n<b>I schedule your tasks and watch their deadlines.</b>\n\n%s", escape(name), helpText)
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleAdd(ctx context.Context, msg *tgbotapi.Message) error {
	input, err := parseTaskLine(msg.CommandArguments(), b.now())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("%s\nExample: <code>/add Research | Academic | 3 | 09:00 | 10:00 | 2024-11-23 12:00</code>", escape(err.Error())))
	}
	return b.finishTaskCreation(ctx, msg.From, input, msg.Chat.ID)
}

func (b *Bot) handleListTasks(ctx context.Context, msg *tgbotapi.Message) error {
	field, err := engine.ParseSortField(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Sort by one of: priority, start_time, end_time, task_type.")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	log.Printf("[info] list tasks for user=%d by=%s", user.ID, field)
	tasks, err := b.planningSvc.Sorted(ctx, user, field)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
	}
	if len(tasks) == 0 {
		return b.sendText(msg.Chat.ID, "No tasks yet. Add one with /newtask.")
	}
	return b.sendWithReplyMarkup(msg.Chat.ID, formatTaskList("📋 <b>Tasks</b> by "+string(field), tasks, b.now()), deleteKeyboard(tasks))
}

func (b *Bot) handleDelete(ctx context.Context, msg *tgbotapi.Message) error {
	taskID, err := parseTaskID(msg.CommandArguments(), "")
	if err != nil {
		return b.sendText(msg.Chat.ID, "Give the task ID: /delete 12")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	return b.deleteTask(ctx, msg.Chat.ID, user, taskID)
}

func (b *Bot) deleteTask(ctx context.Context, chatID int64, user *model.User, taskID uint) error {
	task, err := b.taskSvc.GetTask(ctx, user, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b.sendText(chatID, "Task not found.")
		}
		return b.sendText(chatID, fmt.Sprintf("Error: %s", escape(err.Error())))
	}
	if err := b.taskSvc.DeleteTask(ctx, user, taskID); err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not delete the task: %s", escape(err.Error())))
	}
	log.Printf("[info] task deleted id=%d user=%d", taskID, user.ID)
	return b.sendText(chatID, fmt.Sprintf("🗑 Task \"%s\" deleted.", escape(task.Name())))
}

func (b *Bot) handlePlan(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	args := ""
	if msg.IsCommand() {
		args = msg.CommandArguments()
	}
	hours, err := parseHours(args, user.Capacity(b.config.PlanHours))
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Invalid budget: %s. Example: /plan 6", err))
	}

	result, err := b.planningSvc.Plan(ctx, user, hours)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build a plan: %s", escape(err.Error())))
	}
	log.Printf("[info] plan user=%d hours=%d best=%d selected=%d", user.ID, hours, result.BestPriority, len(result.Selected))
	return b.sendText(msg.Chat.ID, formatPlan(result, b.now()))
}

func (b *Bot) handleCapacity(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Current planning budget: %d h. Change it with /capacity 6", user.Capacity(b.config.PlanHours)))
	}
	hours, err := parseHours(args, 0)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Invalid budget: %s. Example: /capacity 6", err))
	}
	if err := b.userRepo.SetPlanHours(ctx, user, hours); err != nil {
		return err
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("Planning budget set to %d h.", user.Capacity(b.config.PlanHours)))
}

func (b *Bot) handleReminders(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	now := b.now()
	reminders, err := b.reminderSvc.Check(ctx, *user, now)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not check reminders: %s", escape(err.Error())))
	}
	if len(reminders) == 0 {
		return b.sendText(msg.Chat.ID, "No upcoming or missed deadlines.")
	}
	lines := make([]string, 0, len(reminders))
	for _, r := range reminders {
		lines = append(lines, formatReminder(r, now.Location()))
	}
	return b.sendText(msg.Chat.ID, strings.Join(lines, "\n"))
}

func (b *Bot) handleAgenda(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text, err := b.reminderSvc.DailySummary(ctx, *user, b.now(), user.Capacity(b.config.PlanHours))
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the agenda: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleFind(ctx context.Context, msg *tgbotapi.Message) error {
	name := strings.TrimSpace(msg.CommandArguments())
	if name == "" {
		return b.sendText(msg.Chat.ID, "Give a name: /find Research")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	task, ok, err := b.planningSvc.FindByName(ctx, user, name)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Search failed: %s", escape(err.Error())))
	}
	if !ok {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("No task named \"%s\".", escape(name)))
	}
	return b.sendText(msg.Chat.ID, formatTaskLine(task, b.now()))
}

func (b *Bot) handleDue(ctx context.Context, msg *tgbotapi.Message) error {
	from, to, err := parseRange(msg.CommandArguments(), b.now())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Use /due 2024-11-23 | 2024-11-24 or /due 2024-11-23 09:00 | 2024-11-23 18:00")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	tasks, err := b.planningSvc.DueBetween(ctx, user, from, to)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Search failed: %s", escape(err.Error())))
	}
	if len(tasks) == 0 {
		return b.sendText(msg.Chat.ID, "No deadlines in that range.")
	}
	title := fmt.Sprintf("⏰ <b>Due</b> %s – %s", from.Format(dateTimeLayout), to.Format(dateTimeLayout))
	return b.sendText(msg.Chat.ID, formatTaskList(title, tasks, b.now()))
}

func (b *Bot) handlePriority(ctx context.Context, msg *tgbotapi.Message) error {
	level, err := parsePriority(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Priority must be a number from 1 to 5: /priority 5")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	tasks, err := b.planningSvc.WithPriority(ctx, user, level)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Search failed: %s", escape(err.Error())))
	}
	if len(tasks) == 0 {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("No tasks with priority %d.", level))
	}
	return b.sendText(msg.Chat.ID, formatTaskList(fmt.Sprintf("⭐️ <b>Priority %d</b>", level), tasks, b.now()))
}

func (b *Bot) handleBusy(ctx context.Context, msg *tgbotapi.Message) error {
	interval := b.config.DensityInterval
	if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
		d, err := parseMinutes(args)
		if err != nil {
			return b.sendText(msg.Chat.ID, fmt.Sprintf("Invalid slot size: %s. Example: /busy 30", err))
		}
		interval = d
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	density, err := b.planningSvc.BusySlots(ctx, user, interval)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not analyze slots: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, formatDensity(density, b.now().Location()))
}

func (b *Bot) handleTimeline(ctx context.Context, msg *tgbotapi.Message) error {
	field, err := engine.ParseSortField(msg.CommandArguments())
	if err != nil {
		return b.sendText(msg.Chat.ID, "Sort by one of: priority, start_time, end_time, task_type.")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	tl, err := b.planningSvc.Timeline(ctx, user, field)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the timeline: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, formatTimeline(tl, b.now().Location()))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("[warn] callback ack: %v", err)
	}

	data := cb.Data
	chatID := cb.Message.Chat.ID
	switch {
	case strings.HasPrefix(data, cbDeletePrefix):
		taskID, err := parseTaskID(data, cbDeletePrefix)
		if err != nil {
			return nil
		}
		user, err := b.ensureUser(ctx, cb.From)
		if err != nil {
			return err
		}
		task, err := b.taskSvc.GetTask(ctx, user, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return b.sendText(chatID, "Task not found.")
			}
			return err
		}
		text := fmt.Sprintf("Delete task \"%s\" (#%d)?", escape(task.Name()), task.ID())
		return b.sendWithReplyMarkup(chatID, text, confirmDeleteKeyboard(task.ID()))
	case strings.HasPrefix(data, cbConfirmPrefix):
		taskID, err := parseTaskID(data, cbConfirmPrefix)
		if err != nil {
			return nil
		}
		user, err := b.ensureUser(ctx, cb.From)
		if err != nil {
			return err
		}
		return b.deleteTask(ctx, chatID, user, taskID)
	case strings.HasPrefix(data, cbCancelPrefix):
		return b.sendText(chatID, "Kept.")
	default:
		return nil
	}
}
