package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"task-planner/internal/bot"
	"task-planner/internal/config"
	"task-planner/internal/repository"
	"task-planner/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (or set "+config.EnvConfigPath+")")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	deliveryRepo := repository.NewReminderRepository(db)

	taskSvc := service.NewTaskService(taskRepo)
	planningSvc := service.NewPlanningService(taskSvc)
	reminderSvc := service.NewReminderService(taskRepo, deliveryRepo)

	telegramBot, err := bot.New(cfg.TelegramToken, userRepo, taskSvc, planningSvc, reminderSvc, &cfg)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(cfg.Location)
	reminderID, err := scheduler.ScheduleInterval(cfg.ReminderInterval, runJob("reminders", telegramBot.SendReminders))
	if err != nil {
		log.Fatalf("schedule reminders: %v", err)
	}
	if cfg.AgendaTime != "" {
		if _, err := scheduler.ScheduleDaily(cfg.AgendaTime, runJob("agenda", telegramBot.SendAgenda)); err != nil {
			log.Fatalf("schedule agenda: %v", err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.Printf("[info] reminders every %s, first check at %s", cfg.ReminderInterval, scheduler.Next(reminderID).Format(time.RFC3339))

	log.Println("Task planner bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}

func runJob(name string, job func(context.Context) error) func() {
	return func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := job(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[warn] %s: %v", name, err)
		}
	}
}
