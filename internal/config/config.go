package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"task-planner/internal/engine"
)

// EnvConfigPath names the config file when no --config flag is given.
const EnvConfigPath = "PLANNER_CONFIG"

// Config keeps runtime settings for the planner bot.
type Config struct {
	TelegramToken string `yaml:"telegram_token"`
	DatabaseURL   string `yaml:"database_url"`
	// ReminderInterval is how often deadlines are checked and pushed.
	ReminderInterval time.Duration `yaml:"reminder_interval"`
	// PlanHours is the default scheduling capacity in whole hours.
	PlanHours int `yaml:"plan_hours"`
	// DensityInterval is the bucket width for busy-slot analysis.
	DensityInterval time.Duration `yaml:"density_interval"`
	// AgendaTime is the HH:MM at which the daily agenda goes out. Empty
	// disables it.
	AgendaTime string `yaml:"agenda_time"`
	Timezone   string `yaml:"timezone"`

	Location *time.Location `yaml:"-"`
}

// Load reads the optional YAML file at path, then applies environment
// variables on top and fills defaults.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	if cfg.PlanHours > engine.MaxCapacityHours {
		return cfg, fmt.Errorf("plan hours %d: at most %d allowed", cfg.PlanHours, engine.MaxCapacityHours)
	}
	if cfg.DensityInterval > engine.MaxDensityInterval {
		return cfg, fmt.Errorf("density interval %s: at most %s allowed", cfg.DensityInterval, engine.MaxDensityInterval)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.TelegramToken == "" {
		return cfg, errors.New("TELEGRAM_TOKEN is required")
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := env("TELEGRAM_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := env("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := env("AGENDA_TIME"); v != "" {
		cfg.AgendaTime = v
	}
	if v := env("TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := env("REMINDER_INTERVAL"); v != "" {
		d, err := parsePositiveDuration(v)
		if err != nil {
			return fmt.Errorf("REMINDER_INTERVAL: %w", err)
		}
		cfg.ReminderInterval = d
	}
	if v := env("DENSITY_INTERVAL"); v != "" {
		d, err := parsePositiveDuration(v)
		if err != nil {
			return fmt.Errorf("DENSITY_INTERVAL: %w", err)
		}
		cfg.DensityInterval = d
	}
	if v := env("PLAN_CAPACITY_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours < 0 {
			return fmt.Errorf("PLAN_CAPACITY_HOURS: want a non-negative integer, got %q", v)
		}
		cfg.PlanHours = hours
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "task_planner.db"
	}
	if cfg.ReminderInterval <= 0 {
		cfg.ReminderInterval = time.Minute
	}
	if cfg.PlanHours <= 0 {
		cfg.PlanHours = 8
	}
	if cfg.DensityInterval <= 0 {
		cfg.DensityInterval = 30 * time.Minute
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func parsePositiveDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}
	return d, nil
}
