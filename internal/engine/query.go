package engine

import (
	"strings"
	"time"

	"task-planner/internal/model"
)

// FindByName returns the first task whose name equals name, ignoring case.
func FindByName(tasks []model.Task, name string) (model.Task, bool) {
	name = strings.TrimSpace(name)
	for _, task := range tasks {
		if strings.EqualFold(task.Name(), name) {
			return task, true
		}
	}
	return model.Task{}, false
}

// FindByDeadlineRange returns the tasks with lo <= deadline <= hi.
func FindByDeadlineRange(tasks []model.Task, lo, hi time.Time) []model.Task {
	return filter(tasks, func(t model.Task) bool {
		return !t.Deadline().Before(lo) && !t.Deadline().After(hi)
	})
}

// FindByPriority returns the tasks with exactly the given priority.
func FindByPriority(tasks []model.Task, level int) []model.Task {
	return filter(tasks, func(t model.Task) bool {
		return t.Priority() == level
	})
}

func filter(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	result := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if keep(task) {
			result = append(result, task)
		}
	}
	return result
}
