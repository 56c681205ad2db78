package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-planner/internal/model"
)

var day1 = time.Date(2024, 11, 23, 0, 0, 0, 0, time.UTC)

// at returns day1 plus the given hours and minutes.
func at(hour, minute int) time.Time {
	return day1.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newTask(t *testing.T, name string, priority int, start, end, deadline time.Time) model.Task {
	t.Helper()
	task, err := model.NewTask(name, model.TypePersonal, priority, start, end, deadline)
	require.NoError(t, err)
	return task
}

func names(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Name())
	}
	return out
}
