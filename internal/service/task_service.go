package service

import (
	"context"
	"time"

	"task-planner/internal/model"
	"task-planner/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Name     string
	Type     model.TaskType
	Priority int
	Start    time.Time
	End      time.Time
	Deadline time.Time
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTask validates the input and stores the task. Validation failures
// come back as *model.ValidationError.
func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (model.Task, error) {
	task, err := model.NewTask(input.Name, input.Type, input.Priority, input.Start, input.End, input.Deadline)
	if err != nil {
		return model.Task{}, err
	}
	return s.taskRepo.Create(ctx, user.ID, task)
}

// ListTasks returns the user's tasks in the order they were added.
func (s *TaskService) ListTasks(ctx context.Context, user *model.User) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, user.ID)
}

func (s *TaskService) GetTask(ctx context.Context, user *model.User, taskID uint) (model.Task, error) {
	return s.taskRepo.FindByID(ctx, user.ID, taskID)
}

// DeleteTask removes a task. Editing a task is delete and recreate.
func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, taskID uint) error {
	return s.taskRepo.Delete(ctx, user.ID, taskID)
}
