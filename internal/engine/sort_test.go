package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/model"
)

func sampleTasks(t *testing.T) []model.Task {
	return []model.Task{
		newTask(t, "Task A", 3, at(9, 0), at(11, 0), at(12, 0)),
		newTask(t, "Task B", 5, at(10, 30), at(13, 0), at(15, 0)),
		newTask(t, "Task C", 2, at(13, 0), at(15, 30), at(16, 0)),
		newTask(t, "Task D", 5, at(14, 30), at(17, 0), at(18, 0)),
		newTask(t, "Task E", 3, at(16, 0), at(18, 0), at(19, 0)),
	}
}

func TestSortBy_Priority(t *testing.T) {
	tasks := sampleTasks(t)

	sorted := SortBy(tasks, model.Task.Priority)

	assert.Equal(t, []string{"Task C", "Task A", "Task E", "Task B", "Task D"}, names(sorted))
}

func TestSortBy_StableForEqualKeys(t *testing.T) {
	tasks := []model.Task{
		newTask(t, "first", 1, at(9, 0), at(10, 0), at(11, 0)),
		newTask(t, "second", 1, at(8, 0), at(9, 0), at(11, 0)),
		newTask(t, "third", 1, at(7, 0), at(8, 0), at(11, 0)),
		newTask(t, "fourth", 1, at(6, 0), at(7, 0), at(11, 0)),
	}

	sorted := SortBy(tasks, model.Task.Priority)

	assert.Equal(t, []string{"first", "second", "third", "fourth"}, names(sorted))
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks(t)
	before := names(tasks)

	_ = SortByTime(tasks, model.Task.Deadline)
	_ = SortBy(tasks, func(task model.Task) int { return -task.Priority() })

	assert.Equal(t, before, names(tasks))
}

func TestSortBy_EmptyAndSorted(t *testing.T) {
	assert.Empty(t, SortBy(nil, model.Task.Priority))

	tasks := sampleTasks(t)
	byStart := SortByTime(tasks, model.Task.Start)
	assert.Equal(t, names(byStart), names(SortByTime(byStart, model.Task.Start)))
}

func TestSortBy_OrderedPermutation(t *testing.T) {
	tasks := sampleTasks(t)
	tasks = append(tasks, sampleTasks(t)...)

	sorted := SortByTime(tasks, model.Task.End)

	require.Len(t, sorted, len(tasks))
	for i := 1; i < len(sorted); i++ {
		assert.False(t, sorted[i].End().Before(sorted[i-1].End()), "position %d out of order", i)
	}
	assert.ElementsMatch(t, names(tasks), names(sorted))
}

func TestSortTasks(t *testing.T) {
	tests := []struct {
		name  string
		field SortField
		want  []string
	}{
		{
			name:  "priority high to low",
			field: SortByPriority,
			want:  []string{"Task B", "Task D", "Task A", "Task E", "Task C"},
		},
		{
			name:  "start time",
			field: SortByStartTime,
			want:  []string{"Task A", "Task B", "Task C", "Task D", "Task E"},
		},
		{
			name:  "end time",
			field: SortByEndTime,
			want:  []string{"Task A", "Task B", "Task C", "Task D", "Task E"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted, err := SortTasks(sampleTasks(t), tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(sorted))
		})
	}
}

func TestSortTasks_TaskType(t *testing.T) {
	personal := newTask(t, "walk", 1, at(9, 0), at(10, 0), at(11, 0))
	academic, err := model.NewTask("essay", model.TypeAcademic, 1, at(9, 0), at(10, 0), at(11, 0))
	require.NoError(t, err)

	sorted, err := SortTasks([]model.Task{personal, academic}, SortByTaskType)

	require.NoError(t, err)
	assert.Equal(t, []string{"essay", "walk"}, names(sorted))
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input   string
		want    SortField
		wantErr bool
	}{
		{input: "", want: SortByPriority},
		{input: "priority", want: SortByPriority},
		{input: "Start-Time", want: SortByStartTime},
		{input: "end_time", want: SortByEndTime},
		{input: "task_type", want: SortByTaskType},
		{input: "name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortField(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownSortField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
