package model

import "time"

// TaskRecord is the stored form of a Task.
type TaskRecord struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Name      string `gorm:"index"`
	Type      string
	Priority  int
	StartTime time.Time
	EndTime   time.Time
	Deadline  time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table called tasks.
func (TaskRecord) TableName() string {
	return "tasks"
}

// NewTaskRecord prepares a task for storage under the given user.
func NewTaskRecord(userID uint, t Task) TaskRecord {
	return TaskRecord{
		ID:        t.ID(),
		UserID:    userID,
		Name:      t.Name(),
		Type:      string(t.Type()),
		Priority:  t.Priority(),
		StartTime: t.Start(),
		EndTime:   t.End(),
		Deadline:  t.Deadline(),
	}
}

// Task rebuilds the domain value from the stored row.
func (r TaskRecord) Task() (Task, error) {
	taskType, err := ParseTaskType(r.Type)
	if err != nil {
		return Task{}, err
	}
	t, err := NewTask(r.Name, taskType, r.Priority, r.StartTime, r.EndTime, r.Deadline)
	if err != nil {
		return Task{}, err
	}
	return t.WithID(r.ID), nil
}

// ReminderDelivery records that a reminder of some kind was already pushed
// for a task, so periodic sweeps send it once.
type ReminderDelivery struct {
	ID          uint   `gorm:"primaryKey"`
	TaskID      uint   `gorm:"uniqueIndex:idx_delivery_task_kind"`
	Kind        string `gorm:"uniqueIndex:idx_delivery_task_kind"`
	DeliveredAt time.Time
}
