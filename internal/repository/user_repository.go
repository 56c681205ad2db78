package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-planner/internal/engine"
	"task-planner/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertFromTelegram finds or creates a user based on TelegramID and refreshes the profile.
func (r *UserRepository) UpsertFromTelegram(ctx context.Context, telegramID int64, firstName, username string) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("telegram_id = ?", telegramID).First(&user).Error
	switch {
	case err == nil:
		if user.FirstName == firstName && user.Username == username {
			return &user, nil
		}
		updates := map[string]interface{}{
			"first_name": firstName,
			"username":   username,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{
			TelegramID: telegramID,
			FirstName:  firstName,
			Username:   username,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// SetPlanHours stores the user's planning capacity. Zero restores the default.
func (r *UserRepository) SetPlanHours(ctx context.Context, user *model.User, hours int) error {
	if hours < 0 || hours > engine.MaxCapacityHours {
		return fmt.Errorf("set plan hours: %w: %d not in [0, %d]", engine.ErrInvalidCapacity, hours, engine.MaxCapacityHours)
	}
	if err := r.db.WithContext(ctx).Model(user).Update("plan_hours", hours).Error; err != nil {
		return fmt.Errorf("set plan hours: %w", err)
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
