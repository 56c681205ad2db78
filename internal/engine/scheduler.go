package engine

import (
	"fmt"
	"time"

	"task-planner/internal/model"
)

// MaxCapacityHours bounds the budget Schedule accepts: one year of hours.
const MaxCapacityHours = 366 * 24

// Plan is the outcome of Schedule.
type Plan struct {
	// Capacity is the budget in whole hours the plan was built for.
	Capacity int
	// BestPriority is the largest priority sum reachable within Capacity.
	BestPriority int
	// Selected holds one subset reaching BestPriority, ordered by end time.
	// Tasks in it may overlap in time; see Conflicts.
	Selected []model.Task
}

// Hours is the budget the selected tasks consume.
func (p Plan) Hours() int {
	total := 0
	for _, task := range p.Selected {
		total += WeightHours(task)
	}
	return total
}

// WeightHours is the budget a task consumes: its duration rounded to the
// nearest hour, halves rounding up. Tasks shorter than half an hour still
// cost one hour.
//
// Halves round away from zero, so 2h30m costs 3. Banker's rounding, as
// Python's round() does, would charge 2.
func WeightHours(task model.Task) int {
	hours := int(task.Duration().Round(time.Hour) / time.Hour)
	if hours < 1 {
		return 1
	}
	return hours
}

// Schedule picks the subset of tasks with the highest total priority whose
// rounded durations fit in maxHours. Each task is used at most once.
// maxHours must be within [0, MaxCapacityHours].
func Schedule(tasks []model.Task, maxHours int) (Plan, error) {
	if maxHours < 0 || maxHours > MaxCapacityHours {
		return Plan{}, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidCapacity, maxHours, MaxCapacityHours)
	}

	ordered := SortByTime(tasks, model.Task.End)

	// best[c] is the top priority sum within c hours over the tasks seen so
	// far. took[i][c] marks that task i raised best[c] when it was seen.
	best := make([]int, maxHours+1)
	took := make([][]bool, len(ordered))
	for i, task := range ordered {
		took[i] = make([]bool, maxHours+1)
		weight := WeightHours(task)
		for c := maxHours; c >= weight; c-- {
			if v := best[c-weight] + task.Priority(); v > best[c] {
				best[c] = v
				took[i][c] = true
			}
		}
	}

	var picked []model.Task
	c := maxHours
	for i := len(ordered) - 1; i >= 0; i-- {
		if took[i][c] {
			picked = append(picked, ordered[i])
			c -= WeightHours(ordered[i])
		}
	}
	selected := make([]model.Task, 0, len(picked))
	for i := len(picked) - 1; i >= 0; i-- {
		selected = append(selected, picked[i])
	}

	return Plan{
		Capacity:     maxHours,
		BestPriority: best[maxHours],
		Selected:     selected,
	}, nil
}
