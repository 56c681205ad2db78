package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-planner/internal/model"
)

// TaskRepository stores tasks per user. It hands out model.Task values in
// insertion order; the engine never sees rows.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create stores the task and returns it with its new ID.
func (r *TaskRepository) Create(ctx context.Context, userID uint, task model.Task) (model.Task, error) {
	record := model.NewTaskRecord(userID, task)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task.WithID(record.ID), nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	var records []model.TaskRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(records))
	for _, record := range records {
		task, err := record.Task()
		if err != nil {
			return nil, fmt.Errorf("load task %d: %w", record.ID, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (model.Task, error) {
	var record model.TaskRecord
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&record).Error; err != nil {
		return model.Task{}, err
	}
	return record.Task()
}

// Delete removes a task and its reminder history. Deleting a missing task
// returns gorm.ErrRecordNotFound.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.TaskRecord{})
		if res.Error != nil {
			return fmt.Errorf("delete task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.ReminderDelivery{}).Error; err != nil {
			return fmt.Errorf("delete reminder deliveries: %w", err)
		}
		return nil
	})
}
