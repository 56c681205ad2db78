package service

import (
	"context"
	"time"

	"task-planner/internal/engine"
	"task-planner/internal/model"
)

// PlanResult is a schedule together with the overlaps inside it.
type PlanResult struct {
	engine.Plan
	Conflicts []engine.Conflict
}

// PlanningService runs the engine over a user's current tasks. Each call
// loads a fresh snapshot.
type PlanningService struct {
	tasks *TaskService
}

func NewPlanningService(tasks *TaskService) *PlanningService {
	return &PlanningService{tasks: tasks}
}

// Plan selects the highest-priority set of tasks fitting in hours.
func (s *PlanningService) Plan(ctx context.Context, user *model.User, hours int) (PlanResult, error) {
	tasks, err := s.tasks.ListTasks(ctx, user)
	if err != nil {
		return PlanResult{}, err
	}
	plan, err := engine.Schedule(tasks, hours)
	if err != nil {
		return PlanResult{}, err
	}
	return PlanResult{Plan: plan, Conflicts: engine.Conflicts(plan.Selected)}, nil
}

func (s *PlanningService) Sorted(ctx context.Context, user *model.User, field engine.SortField) ([]model.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, user)
	if err != nil {
		return nil, err
	}
	return engine.SortTasks(tasks, field)
}

// FindByName reports whether a task with that name exists, ignoring case.
func (s *PlanningService) FindByName(ctx context.Context, user *model.User, name string) (model.Task, bool, error) {
	tasks, err := s.tasks.ListTasks(ctx, user)
	if err != nil {
		return model.Task{}, false, err
	}
	task, ok := engine.FindByName(tasks, name)
	return task, ok, nil
}

func (s *PlanningService) DueBetween(ctx context.Context, user *model.User, from, to time.Time) ([]model.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, user)
	if err != nil {
		return nil, err
	}
	return engine.FindByDeadlineRange(tasks, from, to), nil
}

func (s *PlanningService) WithPriority(ctx context.Context, user *model.User, level int) ([]model.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, user)
	if err != nil {
		return nil, err
	}
	return engine.FindByPriority(tasks, level), nil
}

func (s *PlanningService) BusySlots(ctx context.Context, user *model.User, interval time.Duration) (engine.Density, error) {
	tasks, err := s.tasks.ListTasks(ctx, user)
	if err != nil {
		return engine.Density{}, err
	}
	return engine.AnalyzeBusySlots(tasks, interval)
}

// Timeline returns chart bars in the given order.
func (s *PlanningService) Timeline(ctx context.Context, user *model.User, field engine.SortField) (engine.Timeline, error) {
	tasks, err := s.Sorted(ctx, user, field)
	if err != nil {
		return engine.Timeline{}, err
	}
	return engine.BuildTimeline(tasks), nil
}
