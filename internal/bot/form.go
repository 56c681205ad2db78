package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-planner/internal/model"
	"task-planner/internal/service"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageName
	stageType
	stagePriority
	stageStart
	stageEnd
	stageDeadline
)

type conversationState struct {
	stage conversationStage
	input service.TaskInput
}

func (b *Bot) startNewTaskConversation(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	log.Printf("[info] start new task conversation user=%d", msg.From.ID)
	b.setConversation(msg.From.ID, &conversationState{stage: stageName})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 New task.\n<b>Step 1/6:</b> what is it called?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageName:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "The name cannot be empty.", cancelKeyboard())
		}
		state.input.Name = text
		state.stage = stageType
		return b.sendWithReplyMarkup(msg.Chat.ID, "🏷 <b>Step 2/6:</b> pick a type.", typeKeyboard())
	case stageType:
		taskType, err := model.ParseTaskType(text)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Pick one of the offered types.", typeKeyboard())
		}
		state.input.Type = taskType
		state.stage = stagePriority
		return b.sendWithReplyMarkup(msg.Chat.ID, "⭐️ <b>Step 3/6:</b> priority from 1 (low) to 5 (high)?", priorityKeyboard())
	case stagePriority:
		priority, err := parsePriority(text)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Priority must be a number from 1 to 5.", priorityKeyboard())
		}
		state.input.Priority = priority
		state.stage = stageStart
		return b.sendWithReplyMarkup(msg.Chat.ID, "🕘 <b>Step 4/6:</b> start time, <code>HH:MM</code> for today or <code>2024-11-23 09:00</code>.", cancelKeyboard())
	case stageStart:
		start, _, err := parseWhen(text, b.now())
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Cannot read that time. Use <code>HH:MM</code> or <code>2024-11-23 09:00</code>.", cancelKeyboard())
		}
		state.input.Start = start
		state.stage = stageEnd
		return b.sendWithReplyMarkup(msg.Chat.ID, "🕔 <b>Step 5/6:</b> end time? <code>HH:MM</code> is taken on the start day.", cancelKeyboard())
	case stageEnd:
		end, _, err := parseWhen(text, state.input.Start)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Cannot read that time. Use <code>HH:MM</code> or <code>2024-11-23 11:00</code>.", cancelKeyboard())
		}
		if !end.After(state.input.Start) {
			return b.sendWithReplyMarkup(msg.Chat.ID, "The end must be after the start. Try again.", cancelKeyboard())
		}
		state.input.End = end
		state.stage = stageDeadline
		return b.sendWithReplyMarkup(msg.Chat.ID, "⏰ <b>Step 6/6:</b> deadline? e.g. <code>2024-11-23 12:00</code>.", cancelKeyboard())
	case stageDeadline:
		deadline, _, err := parseWhen(text, state.input.Start)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "Cannot read that deadline. Use <code>2024-11-23 12:00</code>.", cancelKeyboard())
		}
		if !deadline.After(state.input.Start) {
			return b.sendWithReplyMarkup(msg.Chat.ID, "The deadline must be after the start. Try again.", cancelKeyboard())
		}
		state.input.Deadline = deadline
		err = b.finishTaskCreation(ctx, msg.From, state.input, msg.Chat.ID)
		b.clearConversation(msg.From.ID)
		return err
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Entry reset. Start again with /newtask.")
	}
}

func (b *Bot) finishTaskCreation(ctx context.Context, from *tgbotapi.User, input service.TaskInput, chatID int64) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	task, err := b.taskSvc.CreateTask(ctx, user, input)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return b.sendText(chatID, fmt.Sprintf("Task not saved: %s", escape(verr.Error())))
		}
		return b.sendText(chatID, fmt.Sprintf("Could not save the task: %s", escape(err.Error())))
	}

	log.Printf("[info] task created id=%d user=%d priority=%d", task.ID(), user.ID, task.Priority())
	return b.sendText(chatID, formatTaskCreated(task, b.now().Location()))
}
