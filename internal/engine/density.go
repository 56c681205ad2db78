package engine

import (
	"fmt"
	"sort"
	"time"

	"task-planner/internal/model"
)

// Slot is one histogram bucket of a density analysis.
type Slot struct {
	Start time.Time
	Count int
}

// Density counts, per interval-aligned bucket, how many task steps land in
// it. A task spanning several buckets counts once in each.
type Density struct {
	Interval time.Duration
	// Peak is the busiest slot; ties go to the earliest one. It is the zero
	// Slot when there were no tasks.
	Peak Slot
	// Slots lists every touched bucket in chronological order.
	Slots []Slot
}

// Count returns the count of the bucket containing at, zero if untouched.
func (d Density) Count(at time.Time) int {
	if d.Interval <= 0 {
		return 0
	}
	bucket := bucketStart(at, d.Interval)
	i := sort.Search(len(d.Slots), func(i int) bool {
		return !d.Slots[i].Start.Before(bucket)
	})
	if i < len(d.Slots) && d.Slots[i].Start.Equal(bucket) {
		return d.Slots[i].Count
	}
	return 0
}

// Limits on AnalyzeBusySlots input.
const (
	// MaxDensityInterval is the widest bucket. Buckets are aligned to the
	// day, so a wider one could not be laid out.
	MaxDensityInterval = 24 * time.Hour
	// MaxDensitySteps caps the steps walked over all tasks together.
	MaxDensitySteps = 100_000
)

// AnalyzeBusySlots walks every task from start to end in interval steps and
// counts each step in the bucket it falls into. The interval must be in
// (0, MaxDensityInterval] and the walk must take at most MaxDensitySteps
// steps, otherwise ErrInvalidInterval is returned.
func AnalyzeBusySlots(tasks []model.Task, interval time.Duration) (Density, error) {
	if interval <= 0 || interval > MaxDensityInterval {
		return Density{}, fmt.Errorf("%w: %s not in (0, %s]", ErrInvalidInterval, interval, MaxDensityInterval)
	}
	var steps int64
	for _, task := range tasks {
		d := task.Duration()
		steps += int64(d / interval)
		if d%interval != 0 {
			steps++
		}
		if steps > MaxDensitySteps {
			return Density{}, fmt.Errorf("%w: %s is too fine for these tasks, more than %d steps", ErrInvalidInterval, interval, MaxDensitySteps)
		}
	}

	counts := make(map[int64]*Slot)
	for _, task := range tasks {
		for step := task.Start(); step.Before(task.End()); step = step.Add(interval) {
			bucket := bucketStart(step, interval)
			slot, ok := counts[bucket.UnixNano()]
			if !ok {
				slot = &Slot{Start: bucket}
				counts[bucket.UnixNano()] = slot
			}
			slot.Count++
		}
	}

	d := Density{Interval: interval, Slots: make([]Slot, 0, len(counts))}
	for _, slot := range counts {
		d.Slots = append(d.Slots, *slot)
	}
	sort.Slice(d.Slots, func(i, j int) bool {
		return d.Slots[i].Start.Before(d.Slots[j].Start)
	})
	for _, slot := range d.Slots {
		if slot.Count > d.Peak.Count {
			d.Peak = slot
		}
	}
	return d, nil
}

// bucketStart floors t to an interval boundary counted from local midnight,
// so 30 minute buckets start at :00 and :30 on the wall clock. Buckets
// restart at every midnight: with an interval that does not divide a day the
// last bucket of each day is short.
func bucketStart(t time.Time, interval time.Duration) time.Time {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return midnight.Add(t.Sub(midnight).Truncate(interval))
}
