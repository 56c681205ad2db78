package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-planner/internal/model"
)

const (
	btnCancelDialog    = "⏪ Cancel"
	menuLabelNewTask   = "➕ New task"
	menuLabelTasks     = "📋 Tasks"
	menuLabelPlan      = "🧮 Plan"
	menuLabelReminders = "🔔 Reminders"
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNewTask),
			tgbotapi.NewKeyboardButton(menuLabelTasks),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelPlan),
			tgbotapi.NewKeyboardButton(menuLabelReminders),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func typeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	row := make([]tgbotapi.KeyboardButton, 0, len(model.TaskTypes))
	for _, tt := range model.TaskTypes {
		row = append(row, tgbotapi.NewKeyboardButton(tt.String()))
	}
	kb := tgbotapi.NewReplyKeyboard(
		row,
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func priorityKeyboard() tgbotapi.ReplyKeyboardMarkup {
	row := make([]tgbotapi.KeyboardButton, 0, model.MaxPriority)
	for p := model.MinPriority; p <= model.MaxPriority; p++ {
		row = append(row, tgbotapi.NewKeyboardButton(strconv.Itoa(p)))
	}
	kb := tgbotapi.NewReplyKeyboard(
		row,
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// deleteKeyboard offers one delete button per task.
func deleteKeyboard(tasks []model.Task) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tasks))
	for _, task := range tasks {
		label := "🗑 #" + strconv.FormatUint(uint64(task.ID()), 10) + " " + shortName(task.Name(), 24)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbDeletePrefix+strconv.FormatUint(uint64(task.ID()), 10)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmDeleteKeyboard(taskID uint) tgbotapi.InlineKeyboardMarkup {
	id := strconv.FormatUint(uint64(taskID), 10)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Delete", cbConfirmPrefix+id),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Keep", cbCancelPrefix+id),
		),
	)
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "cancel"
}
