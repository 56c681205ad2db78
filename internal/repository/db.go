package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-planner/internal/model"
)

const defaultDSN = "task_planner.db"

// NewDB opens a SQLite database and migrates the user, task and reminder
// delivery tables.
func NewDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = defaultDSN
	}

	memory := isMemoryDSN(dsn)
	if !memory {
		if err := ensureDirForSQLite(dsn); err != nil {
			return nil, err
		}
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "[db] ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if memory {
		// Every pooled connection to :memory: would see its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&model.User{}, &model.TaskRecord{}, &model.ReminderDelivery{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// ensureDirForSQLite creates the parent directory of a file DSN.
func ensureDirForSQLite(dsn string) error {
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
