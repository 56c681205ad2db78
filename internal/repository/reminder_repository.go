package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-planner/internal/model"
)

// ReminderRepository remembers which reminders were already delivered.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Delivered returns the set of (task, kind) pairs already delivered among
// taskIDs, keyed by DeliveryKey.
func (r *ReminderRepository) Delivered(ctx context.Context, taskIDs []uint) (map[string]bool, error) {
	delivered := make(map[string]bool)
	if len(taskIDs) == 0 {
		return delivered, nil
	}
	var rows []model.ReminderDelivery
	if err := r.db.WithContext(ctx).Where("task_id IN ?", taskIDs).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list reminder deliveries: %w", err)
	}
	for _, row := range rows {
		delivered[DeliveryKey(row.TaskID, row.Kind)] = true
	}
	return delivered, nil
}

// MarkDelivered records a delivery. Recording the same pair twice is a no-op.
func (r *ReminderRepository) MarkDelivered(ctx context.Context, taskID uint, kind string, at time.Time) error {
	row := model.ReminderDelivery{TaskID: taskID, Kind: kind, DeliveredAt: at}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("mark reminder delivered: %w", err)
	}
	return nil
}

// DeliveryKey identifies one reminder kind of one task.
func DeliveryKey(taskID uint, kind string) string {
	return fmt.Sprintf("%d:%s", taskID, kind)
}
