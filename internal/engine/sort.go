package engine

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"task-planner/internal/model"
)

// SortField names an ordering offered to users.
type SortField string

const (
	SortByPriority  SortField = "priority"
	SortByStartTime SortField = "start_time"
	SortByEndTime   SortField = "end_time"
	SortByTaskType  SortField = "task_type"
)

// ParseSortField accepts the field names with either "_" or "-" separators.
func ParseSortField(s string) (SortField, error) {
	field := SortField(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch field {
	case SortByPriority, SortByStartTime, SortByEndTime, SortByTaskType:
		return field, nil
	case "":
		return SortByPriority, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownSortField, s)
}

// SortTasks orders tasks by field. Priority sorts from high to low, the
// other fields ascend.
func SortTasks(tasks []model.Task, field SortField) ([]model.Task, error) {
	switch field {
	case SortByPriority:
		return SortBy(tasks, func(t model.Task) int { return -t.Priority() }), nil
	case SortByStartTime:
		return SortByTime(tasks, model.Task.Start), nil
	case SortByEndTime:
		return SortByTime(tasks, model.Task.End), nil
	case SortByTaskType:
		return SortBy(tasks, func(t model.Task) string { return string(t.Type()) }), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownSortField, field)
}

// SortBy returns a copy of tasks ordered by ascending key. Tasks with equal
// keys keep their input order.
func SortBy[K cmp.Ordered](tasks []model.Task, key func(model.Task) K) []model.Task {
	return SortFunc(tasks, func(a, b model.Task) int {
		return cmp.Compare(key(a), key(b))
	})
}

// SortByTime is SortBy for time-valued keys.
func SortByTime(tasks []model.Task, key func(model.Task) time.Time) []model.Task {
	return SortFunc(tasks, func(a, b model.Task) int {
		return key(a).Compare(key(b))
	})
}

// SortFunc returns a copy of tasks stably ordered by compare, using a
// top-down merge sort.
func SortFunc(tasks []model.Task, compare func(a, b model.Task) int) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	if len(sorted) < 2 {
		return sorted
	}
	mergeSort(sorted, make([]model.Task, len(sorted)), compare)
	return sorted
}

// mergeSort sorts s in place. buf must be as long as s.
func mergeSort(s, buf []model.Task, compare func(a, b model.Task) int) {
	if len(s) < 2 {
		return
	}
	mid := len(s) / 2
	mergeSort(s[:mid], buf[:mid], compare)
	mergeSort(s[mid:], buf[mid:], compare)

	copy(buf, s)
	left, right := buf[:mid], buf[mid:]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		// Take from the right only when strictly smaller; ties go left.
		if compare(right[j], left[i]) < 0 {
			s[k] = right[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}
		k++
	}
	k += copy(s[k:], left[i:])
	copy(s[k:], right[j:])
}
