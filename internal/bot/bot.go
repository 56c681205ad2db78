package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-planner/internal/config"
	"task-planner/internal/engine"
	"task-planner/internal/model"
	"task-planner/internal/repository"
	"task-planner/internal/service"
)

const (
	cbDeletePrefix  = "delete:"
	cbConfirmPrefix = "confirm:"
	cbCancelPrefix  = "cancel:"
)

// Bot aggregates Telegram API with services.
type Bot struct {
	api           *tgbotapi.BotAPI
	userRepo      *repository.UserRepository
	taskSvc       *service.TaskService
	planningSvc   *service.PlanningService
	reminderSvc   *service.ReminderService
	config        *config.Config
	conversations map[int64]*conversationState
	mu            sync.Mutex
	now           func() time.Time
}

func New(token string, userRepo *repository.UserRepository, taskSvc *service.TaskService, planningSvc *service.PlanningService, reminderSvc *service.ReminderService, cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Bot{
		api:           api,
		userRepo:      userRepo,
		taskSvc:       taskSvc,
		planningSvc:   planningSvc,
		reminderSvc:   reminderSvc,
		config:        cfg,
		conversations: make(map[int64]*conversationState),
		now:           func() time.Time { return time.Now().In(loc) },
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		b.handleUpdate(ctx, update)
	}

	return ctx.Err()
}

// handleUpdate routes one update. A panicking handler is logged and the
// update dropped.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[warn] update %d: panic: %v", update.UpdateID, r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			log.Printf("[warn] handle callback: %v", err)
		}
	case update.Message != nil:
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			return
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			log.Printf("[warn] handle message: %v", err)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Task entry cancelled.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "I did not understand that. Send /newtask to add a task or /help for the command list.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.sendText(msg.Chat.ID, helpText)
	case "newtask":
		return b.startNewTaskConversation(ctx, msg)
	case "add":
		return b.handleAdd(ctx, msg)
	case "tasks":
		return b.handleListTasks(ctx, msg)
	case "delete":
		return b.handleDelete(ctx, msg)
	case "plan":
		return b.handlePlan(ctx, msg)
	case "capacity":
		return b.handleCapacity(ctx, msg)
	case "reminders":
		return b.handleReminders(ctx, msg)
	case "agenda":
		return b.handleAgenda(ctx, msg)
	case "find":
		return b.handleFind(ctx, msg)
	case "due":
		return b.handleDue(ctx, msg)
	case "priority":
		return b.handlePriority(ctx, msg)
	case "busy":
		return b.handleBusy(ctx, msg)
	case "timeline":
		return b.handleTimeline(ctx, msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Task entry cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelNewTask):
		return true, b.startNewTaskConversation(ctx, msg)
	case strings.ToLower(menuLabelTasks):
		return true, b.handleListTasks(ctx, msg)
	case strings.ToLower(menuLabelPlan):
		return true, b.handlePlan(ctx, msg)
	case strings.ToLower(menuLabelReminders):
		return true, b.handleReminders(ctx, msg)
	default:
		return false, nil
	}
}

// SendReminders pushes every reminder not yet delivered to each known user.
func (b *Bot) SendReminders(ctx context.Context) error {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := b.now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		pending, err := b.reminderSvc.Undelivered(ctx, user, now)
		if err != nil {
			log.Printf("[warn] reminders for user %d: %v", user.TelegramID, err)
			continue
		}
		for _, r := range pending {
			if err := b.sendText(user.TelegramID, formatReminder(r, now.Location())); err != nil {
				log.Printf("[warn] send reminder to %d: %v", user.TelegramID, err)
				continue
			}
			if err := b.reminderSvc.MarkDelivered(ctx, []engine.Reminder{r}, now); err != nil {
				log.Printf("[warn] mark reminder for task %d: %v", r.Task.ID(), err)
			}
		}
	}
	return nil
}

// SendAgenda sends the daily agenda to every known user.
func (b *Bot) SendAgenda(ctx context.Context) error {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := b.now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		text, err := b.reminderSvc.DailySummary(ctx, user, now, user.Capacity(b.config.PlanHours))
		if err != nil {
			log.Printf("[warn] build agenda for user %d: %v", user.TelegramID, err)
			continue
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			log.Printf("[warn] send agenda to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.userRepo.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.UserName)
}

func (b *Bot) sendText(chatID int64, text string) error {
	return b.sendWithReplyMarkup(chatID, text, mainMenuKeyboard())
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}
