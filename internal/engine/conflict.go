package engine

import "task-planner/internal/model"

// Conflict is a pair of tasks whose time ranges overlap. First starts no
// later than Second.
type Conflict struct {
	First  model.Task
	Second model.Task
}

// Conflicts lists every overlapping pair. Touching ranges (one ends when the
// next starts) do not conflict.
func Conflicts(tasks []model.Task) []Conflict {
	ordered := SortByTime(tasks, model.Task.Start)

	var conflicts []Conflict
	for i, first := range ordered {
		for _, second := range ordered[i+1:] {
			if !second.Start().Before(first.End()) {
				break
			}
			conflicts = append(conflicts, Conflict{First: first, Second: second})
		}
	}
	return conflicts
}
