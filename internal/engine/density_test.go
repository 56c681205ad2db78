package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/model"
)

func TestAnalyzeBusySlots_SingleTaskSpansThreeBuckets(t *testing.T) {
	tasks := []model.Task{newTask(t, "Task A", 3, at(9, 0), at(10, 30), at(12, 0))}

	density, err := AnalyzeBusySlots(tasks, 30*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 1, density.Count(at(9, 0)))
	assert.Equal(t, 1, density.Count(at(9, 30)))
	assert.Equal(t, 1, density.Count(at(10, 0)))
	assert.Equal(t, 0, density.Count(at(10, 30)))
	assert.Equal(t, 0, density.Count(at(8, 30)))
	assert.Len(t, density.Slots, 3)
}

func TestAnalyzeBusySlots_Peak(t *testing.T) {
	density, err := AnalyzeBusySlots(sampleTasks(t), 30*time.Minute)

	require.NoError(t, err)
	// Task A and Task B overlap 10:30-11:00; B and C never do, C and D overlap
	// 14:30-15:30, D and E overlap 16:00-17:00. 10:30 is the earliest 2.
	assert.Equal(t, at(10, 30), density.Peak.Start)
	assert.Equal(t, 2, density.Peak.Count)
	assert.Equal(t, 1, density.Count(at(9, 15)), "inside the 9:00 bucket")
}

func TestAnalyzeBusySlots_UnalignedStart(t *testing.T) {
	tasks := []model.Task{newTask(t, "odd", 1, at(9, 10), at(10, 20), at(12, 0))}

	density, err := AnalyzeBusySlots(tasks, 30*time.Minute)

	require.NoError(t, err)
	// Steps at 9:10, 9:40 and 10:10 floor to 9:00, 9:30 and 10:00.
	assert.Equal(t, []Slot{
		{Start: at(9, 0), Count: 1},
		{Start: at(9, 30), Count: 1},
		{Start: at(10, 0), Count: 1},
	}, density.Slots)
}

func TestAnalyzeBusySlots_Empty(t *testing.T) {
	density, err := AnalyzeBusySlots(nil, time.Hour)

	require.NoError(t, err)
	assert.Equal(t, Slot{}, density.Peak)
	assert.Empty(t, density.Slots)
}

func TestAnalyzeBusySlots_InvalidInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Minute, 25 * time.Hour} {
		_, err := AnalyzeBusySlots(sampleTasks(t), interval)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	}
}

func TestAnalyzeBusySlots_WholeDayInterval(t *testing.T) {
	tasks := []model.Task{newTask(t, "long", 1, at(9, 0), at(34, 0), at(40, 0))}

	density, err := AnalyzeBusySlots(tasks, MaxDensityInterval)

	require.NoError(t, err)
	assert.Equal(t, []Slot{
		{Start: at(0, 0), Count: 1},
		{Start: at(24, 0), Count: 1},
	}, density.Slots)
}

func TestAnalyzeBusySlots_TooManySteps(t *testing.T) {
	start := at(9, 0)
	decades := newTask(t, "decades", 1, start, start.AddDate(30, 0, 0), start.AddDate(31, 0, 0))

	_, err := AnalyzeBusySlots([]model.Task{decades}, time.Minute)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	density, err := AnalyzeBusySlots([]model.Task{decades}, MaxDensityInterval)
	require.NoError(t, err)
	assert.Greater(t, len(density.Slots), 10_000)
}
