package engine

import (
	"time"

	"task-planner/internal/model"
)

// Timeline is the data needed to draw a Gantt chart of tasks.
type Timeline struct {
	Bars []model.Bar
	// From and To bound every bar. Both are zero for an empty timeline.
	From time.Time
	To   time.Time
}

// BuildTimeline emits one bar per task, in input order.
func BuildTimeline(tasks []model.Task) Timeline {
	var tl Timeline
	for i, task := range tasks {
		tl.Bars = append(tl.Bars, task.Bar())
		if i == 0 || task.Start().Before(tl.From) {
			tl.From = task.Start()
		}
		if i == 0 || task.End().After(tl.To) {
			tl.To = task.End()
		}
	}
	return tl
}
