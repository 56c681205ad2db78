package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/model"
)

func TestFindByName(t *testing.T) {
	tasks := []model.Task{
		newTask(t, "Research", 3, at(9, 0), at(10, 0), at(12, 0)),
		newTask(t, "research", 5, at(11, 0), at(12, 0), at(13, 0)),
	}

	found, ok := FindByName(tasks, "RESEARCH")
	require.True(t, ok)
	assert.Equal(t, 3, found.Priority(), "first match wins")

	_, ok = FindByName(tasks, "Development")
	assert.False(t, ok)

	_, ok = FindByName(nil, "Research")
	assert.False(t, ok)
}

func TestFindByDeadlineRange(t *testing.T) {
	tasks := []model.Task{
		newTask(t, "before", 1, at(8, 0), at(9, 0), at(9, 59)),
		newTask(t, "on-lo", 1, at(8, 0), at(9, 0), at(10, 0)),
		newTask(t, "inside", 1, at(8, 0), at(9, 0), at(11, 0)),
		newTask(t, "on-hi", 1, at(8, 0), at(9, 0), at(12, 0)),
		newTask(t, "after", 1, at(8, 0), at(9, 0), at(12, 1)),
	}

	found := FindByDeadlineRange(tasks, at(10, 0), at(12, 0))

	assert.Equal(t, []string{"on-lo", "inside", "on-hi"}, names(found))
	assert.Empty(t, FindByDeadlineRange(tasks, at(13, 0), at(14, 0)))
}

func TestFindByPriority(t *testing.T) {
	tasks := sampleTasks(t)

	assert.Equal(t, []string{"Task B", "Task D"}, names(FindByPriority(tasks, 5)))
	assert.Equal(t, []string{"Task A", "Task E"}, names(FindByPriority(tasks, 3)))
	assert.Empty(t, FindByPriority(tasks, 1))
}
